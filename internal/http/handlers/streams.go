package handlers

import (
	"igreja_backend/internal/cache"
	"igreja_backend/internal/repositories"
	"igreja_backend/internal/validation"
)

var streamPlatforms = []string{"youtube", "facebook", "instagram"}

var streamCreateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "title", Kind: validation.String, Required: true, MinLen: 2, MaxLen: 150},
	{Name: "url", Kind: validation.String, Required: true, MaxLen: 255},
	{Name: "date", Kind: validation.Date, Required: true},
	{Name: "platform", Kind: validation.String, Required: true, Enum: streamPlatforms},
	{Name: "isLive", Kind: validation.Bool},
}}

var streamUpdateSchema = validation.Schema{Fields: []validation.Field{
	{Name: "title", Kind: validation.String, MinLen: 2, MaxLen: 150},
	{Name: "url", Kind: validation.String, MaxLen: 255},
	{Name: "date", Kind: validation.Date},
	{Name: "platform", Kind: validation.String, Enum: streamPlatforms},
	{Name: "isLive", Kind: validation.Bool},
}}

func NewStreamHandler(repo repositories.Repository, c *cache.Cache) Crud {
	return Crud{
		Repo:    repo,
		Cache:   c,
		Create:  streamCreateSchema,
		Update:  streamUpdateSchema,
		Filters: repositories.StreamFilters,
		Msg: Messages{
			Created: "transmissão cadastrada com sucesso",
			Updated: "transmissão atualizada com sucesso",
			Deleted: "transmissão removida com sucesso",
		},
	}
}
