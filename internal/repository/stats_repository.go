package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/volunteerhub/internal/domain"
)

// StatsRepository computes platform-wide aggregate counts.
type StatsRepository interface {
	Compute(ctx context.Context) (domain.Stats, error)
}

type statsRepository struct {
	pool *pgxpool.Pool
}

// NewStatsRepository instantiates repository.
func NewStatsRepository(pool *pgxpool.Pool) StatsRepository {
	return &statsRepository{pool: pool}
}

func (r *statsRepository) Compute(ctx context.Context) (domain.Stats, error) {
	const query = `
        SELECT
            (SELECT COUNT(*) FROM users WHERE role='volunteer'),
            (SELECT COUNT(*) FROM projects),
            (SELECT COUNT(*) FROM applications),
            (SELECT COUNT(DISTINCT state) FROM projects)`

	var stats domain.Stats
	if err := r.pool.QueryRow(ctx, query).Scan(
		&stats.Volunteers,
		&stats.Projects,
		&stats.Applications,
		&stats.States,
	); err != nil {
		return domain.Stats{}, err
	}
	return stats, nil
}
