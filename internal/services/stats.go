package services

import (
	"context"
	"database/sql"

	"igreja_backend/internal/cache"
	"igreja_backend/internal/domain"
	"igreja_backend/internal/repositories"
)

// StatsService serves the aggregate endpoints through the cache facade:
// cache hit returns the stored value verbatim; a miss computes from the store
// and caches with the fixed TTL.
type StatsService struct {
	DB        *sql.DB
	Cache     *cache.Cache
	Members   repositories.MemberRepo
	Donations repositories.DonationRepo
}

func NewStatsService(db *sql.DB, c *cache.Cache) StatsService {
	return StatsService{
		DB:        db,
		Cache:     c,
		Members:   repositories.NewMemberRepo(db),
		Donations: repositories.NewDonationRepo(db),
	}
}

func (s StatsService) MemberStats(ctx context.Context) (repositories.MemberStats, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyMemberStats, cache.StatsTTL, func() (repositories.MemberStats, error) {
		return s.Members.Stats(ctx)
	})
}

func (s StatsService) DonationStats(ctx context.Context) (repositories.DonationStats, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyDonationStats, cache.StatsTTL, func() (repositories.DonationStats, error) {
		return s.Donations.Stats(ctx)
	})
}

func (s StatsService) DonationInfo(ctx context.Context) (repositories.DonationInfo, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyDonationInfo, cache.DonationInfoTTL, func() (repositories.DonationInfo, error) {
		return s.Donations.Info(ctx)
	})
}

// DashboardStats is the shared aggregate behind GET /api/dashboard/stats.
type DashboardStats struct {
	TotalMembers   int     `json:"totalMembers"`
	ActiveMembers  int     `json:"activeMembers"`
	MonthDonations float64 `json:"monthDonations"`
	UpcomingEvents int     `json:"upcomingEvents"`
	MonthVisitors  int     `json:"monthVisitors"`
}

func (s StatsService) Dashboard(ctx context.Context) (DashboardStats, error) {
	return cache.Remember(ctx, s.Cache, cache.KeyDashboardStats, cache.StatsTTL, func() (DashboardStats, error) {
		return s.computeDashboard(ctx)
	})
}

func (s StatsService) computeDashboard(ctx context.Context) (DashboardStats, error) {
	var stats DashboardStats

	err := s.DB.QueryRowContext(ctx, `
        SELECT
            (SELECT COUNT(*) FROM membros),
            (SELECT COUNT(*) FROM membros WHERE status = 'ativo'),
            (SELECT COALESCE(SUM(valor), 0) FROM doacoes
              WHERE date_trunc('month', data) = date_trunc('month', CURRENT_DATE)),
            (SELECT COUNT(*) FROM eventos WHERE data >= CURRENT_DATE),
            (SELECT COUNT(*) FROM visitantes
              WHERE date_trunc('month', data_visita) = date_trunc('month', CURRENT_DATE))`).
		Scan(&stats.TotalMembers, &stats.ActiveMembers, &stats.MonthDonations,
			&stats.UpcomingEvents, &stats.MonthVisitors)
	if err != nil {
		return stats, domain.UpstreamError{Msg: "erro ao calcular estatísticas do painel", Err: err}
	}
	return stats, nil
}
