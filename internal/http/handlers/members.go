package handlers

import (
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/domain"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/services"
	"igreja_backend/internal/validation"
)

var memberTypes = []string{"membro", "lider", "pastor"}
var memberStatuses = []string{"ativo", "inativo"}

var memberCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 120},
	{Name: "email", Kind: validation.Email},
	{Name: "phone", Kind: validation.String, MaxLen: 20},
	{Name: "address", Kind: validation.String, MaxLen: 255},
	{Name: "birthDate", Kind: validation.Date},
	{Name: "joinDate", Kind: validation.Date, Required: true},
	{Name: "membershipType", Kind: validation.String, Required: true, Enum: memberTypes},
	{Name: "status", Kind: validation.String, Enum: memberStatuses},
	{Name: "photoUrl", Kind: validation.String, MaxLen: 255},
}}

var memberUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, MinLen: 2, MaxLen: 120},
	{Name: "email", Kind: validation.Email},
	{Name: "phone", Kind: validation.String, MaxLen: 20},
	{Name: "address", Kind: validation.String, MaxLen: 255},
	{Name: "birthDate", Kind: validation.Date},
	{Name: "joinDate", Kind: validation.Date},
	{Name: "membershipType", Kind: validation.String, Enum: memberTypes},
	{Name: "status", Kind: validation.String, Enum: memberStatuses},
	{Name: "photoUrl", Kind: validation.String, MaxLen: 255},
}}

type MemberHandler struct {
	Crud
	Members repositories.MemberRepo
	Stats   services.StatsService
}

func NewMemberHandler(repo repositories.MemberRepo, c *cache.Cache, stats services.StatsService) MemberHandler {
	return MemberHandler{
		Crud: Crud{
			Repo:    repo.Repository,
			Cache:   c,
			Create:  memberCreateSchema,
			Update:  memberUpdateSchema,
			Filters: repositories.MemberFilters,
			Msg: Messages{
				Created: "membro cadastrado com sucesso",
				Updated: "membro atualizado com sucesso",
				Deleted: "membro removido com sucesso",
			},
		},
		Members: repo,
		Stats:   stats,
	}
}

// CreateRecord rejects duplicate emails before touching the store so the
// client gets a field-level message instead of a bare conflict.
func (h MemberHandler) CreateRecord(c *gin.Context) {
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := h.Create.Validate(input, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if email, _ := valid["email"].(string); email != "" {
		exists, err := h.Members.EmailExists(c.Request.Context(), email, 0)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if exists {
			RespondDomainError(c, domain.ConflictError{Msg: "email já cadastrado"})
			return
		}
	}

	record, err := h.Repo.Insert(c.Request.Context(), h.Repo.Entity.ToStorage(valid))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondCreated(c, h.Repo.Entity.ToPublic(record), h.Msg.Created)
}

func (h MemberHandler) MemberStats(c *gin.Context) {
	stats, err := h.Stats.MemberStats(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, stats, "")
}
