package repositories

import (
	"database/sql"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/mapping"
	"igreja_backend/internal/validation"
)

// Filter specs for the remaining entities.
var (
	VisitFilters = []validation.QueryFilter{
		{Param: "status", Column: "status", Kind: domain.PredicateEquals, Value: validation.String},
		{Param: "pastor_id", Column: "pastor_id", Kind: domain.PredicateEquals, Value: validation.Int},
	}

	VisitorFilters = []validation.QueryFilter{
		{Param: "start_date", Column: "data_visita", Kind: domain.PredicateGTE, Value: validation.Date},
		{Param: "end_date", Column: "data_visita", Kind: domain.PredicateLTE, Value: validation.Date},
	}

	StreamFilters = []validation.QueryFilter{
		{Param: "plataforma", Column: "plataforma", Kind: domain.PredicateEquals, Value: validation.String},
		{Param: "ao_vivo", Column: "ao_vivo", Kind: domain.PredicateEquals, Value: validation.Bool},
	}
)

func NewMinistryRepo(db *sql.DB) Repository {
	return Repository{DB: db, Entity: mapping.Ministries}
}

func NewVisitRepo(db *sql.DB) Repository {
	return Repository{DB: db, Entity: mapping.Visits}
}

func NewVisitorRepo(db *sql.DB) Repository {
	return Repository{DB: db, Entity: mapping.Visitors}
}

func NewStreamRepo(db *sql.DB) Repository {
	return Repository{DB: db, Entity: mapping.Streams}
}
