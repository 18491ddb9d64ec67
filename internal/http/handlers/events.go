package handlers

import (
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/domain"
	"igreja_backend/internal/http/middleware"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var eventCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "title", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 150},
	{Name: "description", Kind: validation.String, MaxLen: 2000},
	{Name: "date", Kind: validation.Date, Required: true},
	{Name: "time", Kind: validation.Clock, Required: true},
	{Name: "location", Kind: validation.String, Required: true, MaxLen: 255},
	{Name: "imageUrl", Kind: validation.String, MaxLen: 255},
}}

var eventUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "title", Kind: validation.String, MinLen: 2, MaxLen: 150},
	{Name: "description", Kind: validation.String, MaxLen: 2000},
	{Name: "date", Kind: validation.Date},
	{Name: "time", Kind: validation.Clock},
	{Name: "location", Kind: validation.String, MaxLen: 255},
	{Name: "imageUrl", Kind: validation.String, MaxLen: 255},
}}

// EventHandler adds ownership on top of the shared pipeline: the creator is
// recorded on insert and only the creator or an admin may change or remove
// the event.
type EventHandler struct {
	Crud
	Events repositories.EventRepo
}

func NewEventHandler(repo repositories.EventRepo, c *cache.Cache) EventHandler {
	return EventHandler{
		Crud: Crud{
			Repo:    repo.Repository,
			Cache:   c,
			Create:  eventCreateSchema,
			Update:  eventUpdateSchema,
			Filters: repositories.EventFilters,
			Msg: Messages{
				Created: "evento criado com sucesso",
				Updated: "evento atualizado com sucesso",
				Deleted: "evento removido com sucesso",
			},
		},
		Events: repo,
	}
}

func (h EventHandler) CreateRecord(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondDomainError(c, domain.AuthError{})
		return
	}
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := h.Create.Validate(input, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	record, err := h.Events.InsertOwned(c.Request.Context(), h.Repo.Entity.ToStorage(valid), user.UserID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondCreated(c, h.Repo.Entity.ToPublic(record), h.Msg.Created)
}

func (h EventHandler) UpdateRecord(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if !h.authorizeOwner(c, id) {
		return
	}
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := h.Update.Validate(input, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	patch := h.Repo.Entity.ToStorage(valid)
	if len(patch) == 0 {
		RespondDomainError(c, domain.NewValidationError("body", "nenhum campo para atualizar"))
		return
	}

	record, err := h.Repo.Update(c.Request.Context(), id, patch)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondOK(c, h.Repo.Entity.ToPublic(record), h.Msg.Updated)
}

func (h EventHandler) DeleteRecord(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if !h.authorizeOwner(c, id) {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondOK(c, nil, h.Msg.Deleted)
}

// authorizeOwner resolves the event's creator and lets the request through
// only for the creator or an admin. The lookup doubles as the existence
// check, so a missing event still comes back as 404.
func (h EventHandler) authorizeOwner(c *gin.Context, id int64) bool {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		RespondDomainError(c, domain.AuthError{})
		return false
	}
	creator, err := h.Events.CreatorID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if user.Role != domain.RoleAdmin && creator != user.UserID {
		RespondDomainError(c, domain.ForbiddenError{Msg: "apenas o criador do evento ou um administrador pode alterá-lo"})
		return false
	}
	return true
}
