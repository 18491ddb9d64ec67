package handlers

import (
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/http/middleware"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var roleSchema = validation.Schema{Fields: []validation.Field{
	{Name: "role", Kind: validation.String, Required: true, Enum: []string{domain.RoleMember, domain.RoleLeader, domain.RoleAdmin}},
}}

// UserHandler is the admin-only account management surface.
type UserHandler struct {
	Users repositories.UserRepo
}

func (h UserHandler) List(c *gin.Context) {
	users, err := h.Users.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	out := make([]map[string]any, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	RespondOK(c, out, "")
}

// UpdateRole changes another account's role. Admins cannot demote
// themselves, so the system always keeps at least the acting admin.
func (h UserHandler) UpdateRole(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		RespondDomainError(c, domain.AuthError{})
		return
	}
	if actor.UserID == id {
		RespondDomainError(c, domain.ForbiddenError{Msg: "não é possível alterar o próprio papel"})
		return
	}

	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := roleSchema.Validate(input, false)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	role, _ := valid["role"].(string)

	if err := h.Users.UpdateRole(c.Request.Context(), id, role); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"id": id, "role": role}, "papel atualizado com sucesso")
}
