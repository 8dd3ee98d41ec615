package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"pmf_fund_simulator/pkg/models"
)

// ResultCache memoizes completed Monte Carlo runs by a hash of their
// inputs. It is a pure performance layer: a cache hit and a cache miss
// for the same inputs must yield byte-identical MonteCarloResults, since
// the cache never recomputes anything the engine wouldn't have produced
// itself. Supports a DB (primary) + local file (fallback) vault for
// engine-owned, schema-fluid blobs.
//
// Schema assumption:
// CREATE TABLE IF NOT EXISTS cached_runs (
//   params_hash TEXT PRIMARY KEY,
//   results_json JSONB NOT NULL,
//   computed_at TIMESTAMPTZ NOT NULL
// );
type ResultCache struct {
	fileDir string
}

// NewResultCache creates a result cache. If dir is empty it defaults to
// .cache/montecarlo. The file vault is always written by Put, even when a
// DB pool is live.
func NewResultCache(dir string) *ResultCache {
	if dir == "" {
		dir = filepath.Join(".cache", "montecarlo")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Printf("[WARNING] result cache dir unavailable: %v\n", err)
	}
	return &ResultCache{fileDir: dir}
}

// RunKey computes the cache key for a given set of inputs. Canonical JSON
// of params plus N and seed, sha-256'd — the same key algorithm a host in
// another language would need to reproduce to share a cache.
func RunKey(params models.FundParams, numSimulations int, seed int64) (string, error) {
	payload := struct {
		Params         models.FundParams `json:"params"`
		NumSimulations int               `json:"num_simulations"`
		Seed           int64             `json:"seed"`
	}{params, numSimulations, seed}

	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key payload: %w", err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}

// Get looks up a cached MonteCarloResults by key. Tries Postgres first
// (if configured), then the file vault.
func (c *ResultCache) Get(ctx context.Context, key string) (*models.MonteCarloResults, error) {
	if pool := GetPool(); pool != nil {
		var data []byte
		err := pool.QueryRow(ctx, `SELECT results_json FROM cached_runs WHERE params_hash = $1`, key).Scan(&data)
		if err == nil {
			var res models.MonteCarloResults
			if err := json.Unmarshal(data, &res); err != nil {
				return nil, fmt.Errorf("failed to unmarshal cached result: %w", err)
			}
			return &res, nil
		}
	}

	path := filepath.Join(c.fileDir, key+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil // cache miss is not an error
	}
	var res models.MonteCarloResults
	if err := json.Unmarshal(data, &res); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached file result: %w", err)
	}
	return &res, nil
}

// Put stores a MonteCarloResults under key, writing to Postgres when
// available and always writing the file fallback.
func (c *ResultCache) Put(ctx context.Context, key string, res models.MonteCarloResults) error {
	data, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("failed to marshal result for caching: %w", err)
	}

	if pool := GetPool(); pool != nil {
		query := `
			INSERT INTO cached_runs (params_hash, results_json, computed_at)
			VALUES ($1, $2, $3)
			ON CONFLICT (params_hash) DO UPDATE SET
				results_json = EXCLUDED.results_json,
				computed_at = EXCLUDED.computed_at
		`
		if _, err := pool.Exec(ctx, query, key, data, time.Now()); err != nil {
			return fmt.Errorf("failed to cache result in db: %w", err)
		}
	}

	path := filepath.Join(c.fileDir, key+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to cache result to file: %w", err)
	}
	return nil
}
