package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"pmf_fund_simulator/pkg/models"
)

// FundRepo handles storage of saved Fund configurations. FundParams is
// engine-owned and schema-fluid, so it is stored as a single JSONB blob
// rather than normalized columns.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS funds (
//   id TEXT PRIMARY KEY,
//   name TEXT NOT NULL,
//   params_json JSONB NOT NULL,
//   created_at TIMESTAMPTZ NOT NULL,
//   updated_at TIMESTAMPTZ NOT NULL
// );
type FundRepo struct{}

// NewFundRepo creates a new repository instance.
func NewFundRepo() *FundRepo {
	return &FundRepo{}
}

// Create persists a new Fund and returns it with its generated ID and
// timestamps populated.
func (r *FundRepo) Create(ctx context.Context, name string, params models.FundParams) (*models.Fund, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal params: %w", err)
	}

	fund := &models.Fund{
		ID:        uuid.NewString(),
		Name:      name,
		Params:    params,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	query := `
		INSERT INTO funds (id, name, params_json, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = pool.Exec(ctx, query, fund.ID, fund.Name, paramsJSON, fund.CreatedAt, fund.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create fund: %w", err)
	}
	return fund, nil
}

// Get retrieves a Fund by ID.
func (r *FundRepo) Get(ctx context.Context, id string) (*models.Fund, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT id, name, params_json, created_at, updated_at FROM funds WHERE id = $1`

	var fund models.Fund
	var paramsJSON []byte
	err := pool.QueryRow(ctx, query, id).Scan(&fund.ID, &fund.Name, &paramsJSON, &fund.CreatedAt, &fund.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, fmt.Errorf("no fund found for id %s", id)
		}
		return nil, fmt.Errorf("failed to load fund: %w", err)
	}
	if err := json.Unmarshal(paramsJSON, &fund.Params); err != nil {
		return nil, fmt.Errorf("failed to unmarshal params: %w", err)
	}
	return &fund, nil
}

// List returns every saved Fund ordered by most recently updated.
func (r *FundRepo) List(ctx context.Context) ([]models.Fund, error) {
	pool := GetPool()
	if pool == nil {
		return nil, fmt.Errorf("database pool not initialized")
	}

	query := `SELECT id, name, params_json, created_at, updated_at FROM funds ORDER BY updated_at DESC`
	rows, err := pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list funds: %w", err)
	}
	defer rows.Close()

	var funds []models.Fund
	for rows.Next() {
		var fund models.Fund
		var paramsJSON []byte
		if err := rows.Scan(&fund.ID, &fund.Name, &paramsJSON, &fund.CreatedAt, &fund.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fund row: %w", err)
		}
		if err := json.Unmarshal(paramsJSON, &fund.Params); err != nil {
			return nil, fmt.Errorf("failed to unmarshal params: %w", err)
		}
		funds = append(funds, fund)
	}
	return funds, rows.Err()
}

// Update overwrites a Fund's name and params, bumping UpdatedAt.
func (r *FundRepo) Update(ctx context.Context, id string, name string, params models.FundParams) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	paramsJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to marshal params: %w", err)
	}

	query := `UPDATE funds SET name = $2, params_json = $3, updated_at = $4 WHERE id = $1`
	tag, err := pool.Exec(ctx, query, id, name, paramsJSON, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update fund: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no fund found for id %s", id)
	}
	return nil
}

// Delete removes a Fund and cascades to its investments (enforced by the
// foreign key's ON DELETE CASCADE).
func (r *FundRepo) Delete(ctx context.Context, id string) error {
	pool := GetPool()
	if pool == nil {
		return fmt.Errorf("database pool not initialized")
	}

	tag, err := pool.Exec(ctx, `DELETE FROM funds WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fund: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no fund found for id %s", id)
	}
	return nil
}
