package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"pmf_fund_simulator/pkg/models"
)

// InvestmentRepo handles storage of tracked (real, non-simulated)
// portfolio companies. Unlike FundRepo, these fields are queried and
// filtered by the host, so they're normalized columns rather than a
// JSONB blob.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS investments (
//   id TEXT PRIMARY KEY,
//   fund_id TEXT NOT NULL REFERENCES funds(id) ON DELETE CASCADE,
//   company_name TEXT NOT NULL,
//   stage TEXT NOT NULL,
//   check_size DOUBLE PRECISION NOT NULL,
//   invested_at TIMESTAMPTZ NOT NULL,
//   current_valuation DOUBLE PRECISION,
//   realized_proceeds DOUBLE PRECISION,
//   status TEXT NOT NULL
// );
type InvestmentRepo struct{}

// NewInvestmentRepo creates a new repository instance.
func NewInvestmentRepo() *InvestmentRepo {
	return &InvestmentRepo{}
}

// Create persists a new Investment under a Fund.
func (r *InvestmentRepo) Create(ctx context.Context, inv *models.Investment) (*models.Investment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	inv.ID = uuid.NewString()
	if inv.Status == "" {
		inv.Status = models.StatusActive
	}

	query := `
		INSERT INTO investments (
			id, fund_id, company_name, stage, check_size, invested_at,
			current_valuation, realized_proceeds, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := pool.Exec(ctx, query,
		inv.ID, inv.FundID, inv.CompanyName, inv.Stage, inv.CheckSize, inv.InvestedAt,
		inv.CurrentValuation, inv.RealizedProceeds, inv.Status,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create investment: %w", err)
	}
	return inv, nil
}

// ListByFund returns every Investment tracked against a fund.
func (r *InvestmentRepo) ListByFund(ctx context.Context, fundID string) ([]models.Investment, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `
		SELECT id, fund_id, company_name, stage, check_size, invested_at,
			current_valuation, realized_proceeds, status
		FROM investments WHERE fund_id = $1 ORDER BY invested_at ASC
	`
	rows, err := pool.Query(ctx, query, fundID)
	if err != nil {
		return nil, fmt.Errorf("failed to list investments: %w", err)
	}
	defer rows.Close()

	var out []models.Investment
	for rows.Next() {
		var inv models.Investment
		if err := rows.Scan(
			&inv.ID, &inv.FundID, &inv.CompanyName, &inv.Stage, &inv.CheckSize, &inv.InvestedAt,
			&inv.CurrentValuation, &inv.RealizedProceeds, &inv.Status,
		); err != nil {
			return nil, fmt.Errorf("failed to scan investment row: %w", err)
		}
		out = append(out, inv)
	}
	return out, rows.Err()
}

// Update overwrites an Investment's mutable fields.
func (r *InvestmentRepo) Update(ctx context.Context, inv *models.Investment) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	if inv.Status != models.StatusActive && inv.RealizedProceeds == nil {
		return fmt.Errorf("realized_proceeds must be set when status is %s", inv.Status)
	}

	query := `
		UPDATE investments SET
			company_name = $2, stage = $3, check_size = $4, invested_at = $5,
			current_valuation = $6, realized_proceeds = $7, status = $8
		WHERE id = $1
	`
	tag, err := pool.Exec(ctx, query,
		inv.ID, inv.CompanyName, inv.Stage, inv.CheckSize, inv.InvestedAt,
		inv.CurrentValuation, inv.RealizedProceeds, inv.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to update investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no investment found for id %s", inv.ID)
	}
	return nil
}

// Delete removes an Investment by ID.
func (r *InvestmentRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx, `DELETE FROM investments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete investment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no investment found for id %s", id)
	}
	return nil
}

// Summary computes the PortfolioSummary for a fund's tracked investments.
func (r *InvestmentRepo) Summary(ctx context.Context, fundID string) (models.PortfolioSummary, error) {
	invs, err := r.ListByFund(ctx, fundID)
	if err != nil {
		return models.PortfolioSummary{}, err
	}
	return Summarize(invs), nil
}

// Summarize computes a PortfolioSummary over an already-loaded Investment
// slice; split out from Summary so handlers and tests can exercise the
// arithmetic without a live pool.
func Summarize(invs []models.Investment) models.PortfolioSummary {
	var s models.PortfolioSummary
	for _, inv := range invs {
		s.TotalInvested += inv.CheckSize
		if inv.CurrentValuation != nil {
			s.TotalCurrentValue += *inv.CurrentValuation
		}
		if inv.RealizedProceeds != nil {
			s.TotalRealized += *inv.RealizedProceeds
		}
	}
	if s.TotalInvested > 0 {
		s.Moic = (s.TotalCurrentValue + s.TotalRealized) / s.TotalInvested
	}
	return s
}
