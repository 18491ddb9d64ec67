package repositories

import (
	"context"
	"database/sql"
	"errors"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/mapping"
	"igreja_backend/internal/validation"
)

// EventFilters lists the query parameters the events listing recognizes.
var EventFilters = []validation.QueryFilter{
	{Param: "start_date", Column: "data", Kind: domain.PredicateGTE, Value: validation.Date},
	{Param: "end_date", Column: "data", Kind: domain.PredicateLTE, Value: validation.Date},
}

type EventRepo struct {
	Repository
}

func NewEventRepo(db *sql.DB) EventRepo {
	return EventRepo{Repository{DB: db, Entity: mapping.Events}}
}

// CreatorID supports the only-creator-or-admin rule on event updates.
func (r EventRepo) CreatorID(ctx context.Context, id int64) (int64, error) {
	var creator sql.NullInt64
	err := r.DB.QueryRowContext(ctx, "SELECT criado_por FROM eventos WHERE id = $1", id).Scan(&creator)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, domain.NotFoundError{Resource: "events"}
		}
		return 0, r.upstream("buscar events", err)
	}
	return creator.Int64, nil
}

// InsertOwned writes the event with criado_por taken from the authenticated
// identity, never from input.
func (r EventRepo) InsertOwned(ctx context.Context, record map[string]any, creatorID int64) (map[string]any, error) {
	record["criado_por"] = creatorID
	return r.Insert(ctx, record)
}
