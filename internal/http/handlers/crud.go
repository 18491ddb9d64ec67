package handlers

import (
	"github.com/gin-gonic/gin"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/domain"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

// Messages holds the success copy of one resource, since grammatical gender
// changes per entity ("membro criado", "doação criada").
type Messages struct {
	Created string
	Updated string
	Deleted string
}

// Crud implements the shared list/get/create/update/delete pipeline:
// sanitize and validate the payload, translate public field names to storage
// columns, hit the store, invalidate the resource's cache keys and translate
// the row back before responding.
type Crud struct {
	Repo    repositories.Repository
	Cache   *cache.Cache
	Create  validation.Schema
	Update  validation.Schema
	Filters []validation.QueryFilter
	Msg     Messages
}

func (h Crud) List(c *gin.Context) {
	spec, err := validation.ParsePageSpec(c.Request.URL.Query())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	filters, err := validation.ParseFilters(c.Request.URL.Query(), h.Filters)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	page, err := h.Repo.List(c.Request.Context(), filters, spec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, h.publicPage(page), "")
}

func (h Crud) Get(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	record, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, h.Repo.Entity.ToPublic(record), "")
}

func (h Crud) CreateRecord(c *gin.Context) {
	input, ok := BindObject(c)
	if !ok {
		return
	}
	valid, err := h.Create.Validate(input, true)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	record, err := h.Repo.Insert(c.Request.Context(), h.Repo.Entity.ToStorage(valid))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondCreated(c, h.Repo.Entity.ToPublic(record), h.Msg.Created)
}

func (h Crud) UpdateRecord(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
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

func (h Crud) DeleteRecord(c *gin.Context) {
	id, ok := IDParam(c)
	if !ok {
		return
	}
	if err := h.Repo.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	h.Cache.InvalidateEntity(c.Request.Context(), h.Repo.Entity.Name)
	RespondOK(c, nil, h.Msg.Deleted)
}

func (h Crud) publicPage(page domain.PagedResult[map[string]any]) domain.PagedResult[map[string]any] {
	out := make([]map[string]any, 0, len(page.Data))
	for _, record := range page.Data {
		out = append(out, h.Repo.Entity.ToPublic(record))
	}
	page.Data = out
	return page
}
