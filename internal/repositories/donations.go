package repositories

import (
	"context"
	"database/sql"
	"errors"

	"igreja_backend/internal/domain"
	"igreja_backend/internal/mapping"
	"igreja_backend/internal/validation"
)

// DonationFilters lists the query parameters the donations listing
// recognizes. Range bounds share the column with gte/lte predicates.
var DonationFilters = []validation.QueryFilter{
	{Param: "tipo", Column: "tipo", Kind: domain.PredicateEquals, Value: validation.String},
	{Param: "membro_id", Column: "membro_id", Kind: domain.PredicateEquals, Value: validation.Int},
	{Param: "start_date", Column: "data", Kind: domain.PredicateGTE, Value: validation.Date},
	{Param: "end_date", Column: "data", Kind: domain.PredicateLTE, Value: validation.Date},
	{Param: "min_amount", Column: "valor", Kind: domain.PredicateGTE, Value: validation.Float},
	{Param: "max_amount", Column: "valor", Kind: domain.PredicateLTE, Value: validation.Float},
}

type DonationRepo struct {
	Repository
}

func NewDonationRepo(db *sql.DB) DonationRepo {
	return DonationRepo{Repository{DB: db, Entity: mapping.Donations}}
}

// GetWithMember loads one donation with its member nested under "membro".
// A donation without a member keeps the relation nil.
func (r DonationRepo) GetWithMember(ctx context.Context, id int64) (map[string]any, error) {
	donation, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	donation["membro"] = nil
	if memberID, ok := donation["membro_id"].(int64); ok && memberID > 0 {
		member, err := NewMemberRepo(r.DB).GetByID(ctx, memberID)
		if err != nil && !domain.IsNotFound(err) {
			return nil, err
		}
		if err == nil {
			donation["membro"] = member
		}
	}
	return donation, nil
}

// DonationStats is the aggregate behind GET /api/donations/stats.
type DonationStats struct {
	Total      float64            `json:"total"`
	Count      int                `json:"count"`
	ByType     map[string]float64 `json:"byType"`
	MonthTotal float64            `json:"monthTotal"`
}

func (r DonationRepo) Stats(ctx context.Context) (DonationStats, error) {
	stats := DonationStats{ByType: map[string]float64{}}

	err := r.DB.QueryRowContext(ctx, `
        SELECT COALESCE(SUM(valor), 0),
               COUNT(*),
               COALESCE(SUM(valor) FILTER (WHERE date_trunc('month', data) = date_trunc('month', CURRENT_DATE)), 0)
        FROM doacoes`).Scan(&stats.Total, &stats.Count, &stats.MonthTotal)
	if err != nil {
		return stats, r.upstream("calcular estatísticas de doações", err)
	}

	rows, err := r.DB.QueryContext(ctx, "SELECT tipo, COALESCE(SUM(valor), 0) FROM doacoes GROUP BY tipo")
	if err != nil {
		return stats, r.upstream("calcular estatísticas de doações", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var tipo string
		var total float64
		if err := rows.Scan(&tipo, &total); err != nil {
			return stats, r.upstream("calcular estatísticas de doações", err)
		}
		stats.ByType[tipo] = total
	}
	if err := rows.Err(); err != nil {
		return stats, r.upstream("calcular estatísticas de doações", err)
	}
	return stats, nil
}

// DonationInfo is the slow-changing summary (cached with the longer TTL).
type DonationInfo struct {
	ByMethod     map[string]float64 `json:"byMethod"`
	FirstDate    string             `json:"firstDate"`
	LastDate     string             `json:"lastDate"`
	AverageValue float64            `json:"averageValue"`
}

func (r DonationRepo) Info(ctx context.Context) (DonationInfo, error) {
	info := DonationInfo{ByMethod: map[string]float64{}}

	var first, last sql.NullString
	var avg sql.NullFloat64
	err := r.DB.QueryRowContext(ctx, `
        SELECT MIN(data)::text, MAX(data)::text, AVG(valor)
        FROM doacoes`).Scan(&first, &last, &avg)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return info, r.upstream("calcular resumo de doações", err)
	}
	info.FirstDate = first.String
	info.LastDate = last.String
	info.AverageValue = avg.Float64

	rows, err := r.DB.QueryContext(ctx, "SELECT metodo_pagamento, COALESCE(SUM(valor), 0) FROM doacoes GROUP BY metodo_pagamento")
	if err != nil {
		return info, r.upstream("calcular resumo de doações", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var metodo string
		var total float64
		if err := rows.Scan(&metodo, &total); err != nil {
			return info, r.upstream("calcular resumo de doações", err)
		}
		info.ByMethod[metodo] = total
	}
	if err := rows.Err(); err != nil {
		return info, r.upstream("calcular resumo de doações", err)
	}
	return info, nil
}
