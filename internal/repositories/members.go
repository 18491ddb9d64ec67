package repositories

import (
	"context"
	"database/sql"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/mapping"
	"igreja_backend/internal/validation"
)

// MemberFilters lists the query parameters the members listing recognizes.
var MemberFilters = []validation.QueryFilter{
	{Param: "tipo", Column: "tipo_membro", Kind: domain.PredicateEquals, Value: validation.String},
	{Param: "status", Column: "status", Kind: domain.PredicateEquals, Value: validation.String},
}

type MemberRepo struct {
	Repository
}

func NewMemberRepo(db *sql.DB) MemberRepo {
	return MemberRepo{Repository{DB: db, Entity: mapping.Members}}
}

// EmailExists checks for a duplicate registration, optionally ignoring the
// record being updated.
func (r MemberRepo) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM membros WHERE email = $1 AND id <> $2", email, excludeID).Scan(&count)
	if err != nil {
		return false, r.upstream("verificar email", err)
	}
	return count > 0, nil
}

// MemberStats is the aggregate behind GET /api/members/stats.
type MemberStats struct {
	Total    int            `json:"total"`
	Active   int            `json:"active"`
	Inactive int            `json:"inactive"`
	ByType   map[string]int `json:"byType"`
}

// Stats computes the member aggregate straight from the store; the cache
// layer sits above this call.
func (r MemberRepo) Stats(ctx context.Context) (MemberStats, error) {
	stats := MemberStats{ByType: map[string]int{}}

	err := r.DB.QueryRowContext(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'ativo'),
               COUNT(*) FILTER (WHERE status = 'inativo')
        FROM membros`).Scan(&stats.Total, &stats.Active, &stats.Inactive)
	if err != nil {
		return stats, r.upstream("calcular estatísticas de membros", err)
	}

	rows, err := r.DB.QueryContext(ctx, "SELECT tipo_membro, COUNT(*) FROM membros GROUP BY tipo_membro")
	if err != nil {
		return stats, r.upstream("calcular estatísticas de membros", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tipo string
		var count int
		if err := rows.Scan(&tipo, &count); err != nil {
			return stats, r.upstream("calcular estatísticas de membros", err)
		}
		stats.ByType[tipo] = count
	}
	if err := rows.Err(); err != nil {
		return stats, r.upstream("calcular estatísticas de membros", err)
	}
	return stats, nil
}
