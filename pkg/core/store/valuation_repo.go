package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pmf_fund_simulator/pkg/models"
)

// ValuationRepo handles the append-only mark history for investments.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS valuation_updates (
//   id TEXT PRIMARY KEY,
//   seq BIGSERIAL,
//   investment_id TEXT NOT NULL REFERENCES investments(id) ON DELETE CASCADE,
//   as_of TIMESTAMPTZ NOT NULL,
//   valuation DOUBLE PRECISION NOT NULL,
//   note TEXT
// );
type ValuationRepo struct{}

// NewValuationRepo creates a new repository instance.
func NewValuationRepo() *ValuationRepo {
	return &ValuationRepo{}
}

// Append records a new ValuationUpdate for an investment.
func (r *ValuationRepo) Append(ctx context.Context, v *models.ValuationUpdate) (*models.ValuationUpdate, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	v.ID = uuid.NewString()
	query := `
		INSERT INTO valuation_updates (id, investment_id, as_of, valuation, note)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := pool.Exec(ctx, query, v.ID, v.InvestmentID, v.AsOf, v.Valuation, v.Note)
	if err != nil {
		return nil, fmt.Errorf("failed to append valuation update: %w", err)
	}
	return v, nil
}

// ListByInvestment returns the mark history for an investment, ordered by
// as_of ascending with insertion order breaking ties. The id is a
// non-orderable UUID, so ties are broken on the seq column instead.
func (r *ValuationRepo) ListByInvestment(ctx context.Context, investmentID string) ([]models.ValuationUpdate, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, investment_id, as_of, valuation, note
		FROM valuation_updates WHERE investment_id = $1
		ORDER BY as_of ASC, seq ASC
	`
	rows, err := pool.Query(ctx, query, investmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list valuation updates: %w", err)
	}
	defer rows.Close()

	var out []models.ValuationUpdate
	for rows.Next() {
		var v models.ValuationUpdate
		if err := rows.Scan(&v.ID, &v.InvestmentID, &v.AsOf, &v.Valuation, &v.Note); err != nil {
			return nil, fmt.Errorf("failed to scan valuation update row: %w", err)
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
