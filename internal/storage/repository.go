package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Atharvakhamkar/Leeds-Hackathon-2026/internal/contracts"
)

type Repository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func (r *Repository) InsertAssessment(ctx context.Context, a contracts.Assessment) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO risk_assessments
            (id, run_id, assessed_at, order_id, destination, weather, news_count, base_risk, final_risk, cargo_value, exposure, tier)
        VALUES
            ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::numeric, $11::numeric, $12)
        ON CONFLICT (id) DO NOTHING
    `, a.ID, a.RunID, a.Timestamp, a.OrderID, a.Destination, a.Weather, a.NewsCount, a.BaseRisk, a.FinalRisk,
		a.CargoValue.StringFixed(2), a.Exposure.StringFixed(2), string(a.Tier))
	if err != nil {
		return fmt.Errorf("insert risk assessment: %w", err)
	}
	return nil
}

// ListAssessments returns the newest assessments, optionally filtered by tier.
func (r *Repository) ListAssessments(ctx context.Context, tier string, limit int) ([]contracts.Assessment, error) {
	limit = normalizeLimit(limit)

	rows, err := r.pool.Query(ctx, `
        SELECT id::text, run_id::text, assessed_at, order_id, destination, weather, news_count,
               base_risk, final_risk, cargo_value::text, exposure::text, tier
        FROM risk_assessments
        WHERE ($1 = '' OR tier = $1)
        ORDER BY assessed_at DESC
        LIMIT $2
    `, tier, limit)
	if err != nil {
		return nil, fmt.Errorf("query risk assessments: %w", err)
	}
	defer rows.Close()

	results := make([]contracts.Assessment, 0, limit)
	for rows.Next() {
		var (
			a               contracts.Assessment
			cargo, exposure string
			tierValue       string
		)
		if err := rows.Scan(
			&a.ID,
			&a.RunID,
			&a.Timestamp,
			&a.OrderID,
			&a.Destination,
			&a.Weather,
			&a.NewsCount,
			&a.BaseRisk,
			&a.FinalRisk,
			&cargo,
			&exposure,
			&tierValue,
		); err != nil {
			return nil, fmt.Errorf("scan risk assessment: %w", err)
		}
		if a.CargoValue, err = parseMoney(cargo); err != nil {
			return nil, err
		}
		if a.Exposure, err = parseMoney(exposure); err != nil {
			return nil, err
		}
		a.Tier = contracts.Tier(tierValue)
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate risk assessments: %w", err)
	}

	return results, nil
}
