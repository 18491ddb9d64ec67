package handlers

import (
	"igreja_backend/internal/cache"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var visitorCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 120},
	{Name: "phone", Kind: validation.String, MaxLen: 20},
	{Name: "email", Kind: validation.Email},
	{Name: "visitDate", Kind: validation.Date, Required: true},
	{Name: "referralSource", Kind: validation.String, MaxLen: 120},
}}

var visitorUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "name", Kind: validation.String, MinLen: 2, MaxLen: 120},
	{Name: "phone", Kind: validation.String, MaxLen: 20},
	{Name: "email", Kind: validation.Email},
	{Name: "visitDate", Kind: validation.Date},
	{Name: "referralSource", Kind: validation.String, MaxLen: 120},
}}

func NewVisitorHandler(repo repositories.Repository, c *cache.Cache) Crud {
	return Crud{
		Repo:    repo,
		Cache:   c,
		Create:  visitorCreateSchema,
		Update:  visitorUpdateSchema,
		Filters: repositories.VisitorFilters,
		Msg: Messages{
			Created: "visitante cadastrado com sucesso",
			Updated: "visitante atualizado com sucesso",
			Deleted: "visitante removido com sucesso",
		},
	}
}
