package handlers

import (
	"igreja_backend/internal/cache"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var ministryCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 120},
	{Name: "description", Kind: validation.String, MaxLen: 2000},
	{Name: "leaderId", Kind: validation.Int, Positive: true},
}}

var ministryUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, MinLen: 2, MaxLen: 120},
	{Name: "description", Kind: validation.String, MaxLen: 2000},
	{Name: "leaderId", Kind: validation.Int, Positive: true},
}}

func NewMinistryHandler(repo repositories.Repository, c *cache.Cache) Crud {
	return Crud{
		Repo:   repo,
		Cache:  c,
		Create: ministryCreateSchema,
		Update: ministryUpdateSchema,
		Msg: Messages{
			Created: "ministério criado com sucesso",
			Updated: "ministério atualizado com sucesso",
			Deleted: "ministério removido com sucesso",
		},
	}
}
