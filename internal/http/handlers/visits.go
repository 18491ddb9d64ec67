package handlers

import (
	"igreja_backend/internal/cache"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var visitStatuses = []string{"agendada", "realizada", "cancelada"}

var visitCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "memberId", Kind: validation.Int, Required: true, Positive: true},
	{Name: "pastorId", Kind: validation.Int, Positive: true},
	{Name: "date", Kind: validation.Date, Required: true},
	{Name: "reason", Kind: validation.String, Required: true, MaxLen: 500},
	{Name: "notes", Kind: validation.String, MaxLen: 2000},
	{Name: "status", Kind: validation.String, Enum: visitStatuses},
}}

var visitUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "memberId", Kind: validation.Int, Positive: true},
	{Name: "pastorId", Kind: validation.Int, Positive: true},
	{Name: "date", Kind: validation.Date},
	{Name: "reason", Kind: validation.String, MaxLen: 500},
	{Name: "notes", Kind: validation.String, MaxLen: 2000},
	{Name: "status", Kind: validation.String, Enum: visitStatuses},
}}

func NewVisitHandler(repo repositories.Repository, c *cache.Cache) Crud {
	return Crud{
		Repo:    repo,
		Cache:   c,
		Create:  visitCreateSchema,
		Update:  visitUpdateSchema,
		Filters: repositories.VisitFilters,
		Msg: Messages{
			Created: "visita agendada com sucesso",
			Updated: "visita atualizada com sucesso",
			Deleted: "visita removida com sucesso",
		},
	}
}
