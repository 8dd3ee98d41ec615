// Package simulate exposes the Monte Carlo engine over HTTP.
package simulate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"pmf_fund_simulator/pkg/core/store"
	"pmf_fund_simulator/pkg/engine"
	"pmf_fund_simulator/pkg/models"
)

// Handler holds dependencies for the simulation endpoints.
type Handler struct {
	cache *store.ResultCache
}

// NewHandler creates a new simulate handler backed by cache. cache may be
// nil, in which case every request runs the engine and nothing is cached.
func NewHandler(cache *store.ResultCache) *Handler {
	return &Handler{cache: cache}
}

// Request is the body of POST /api/simulate.
type Request struct {
	Params         models.FundParams `json:"params"`
	NumSimulations int               `json:"num_simulations"`
	Seed           *int64            `json:"seed"`
}

func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

// HandleRun serves POST /api/simulate: validates the request, serves a
// cached result if one exists for the exact (params, N, seed) triple,
// otherwise runs the engine and caches the result.
func (h *Handler) HandleRun(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if req.NumSimulations <= 0 {
		req.NumSimulations = 5000
	}

	ctx := r.Context()
	results, err := h.runCached(ctx, req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidParams) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, fmt.Sprintf("simulation failed: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

func (h *Handler) runCached(ctx context.Context, req Request) (*models.MonteCarloResults, error) {
	seed := seedOrZero(req.Seed)
	key, err := store.RunKey(req.Params, req.NumSimulations, seed)
	if err == nil && h.cache != nil && req.Seed != nil {
		// Only cache deterministic requests (an explicit seed); a
		// caller-less seed should always run fresh.
		if cached, err := h.cache.Get(ctx, key); err == nil && cached != nil {
			return cached, nil
		}
	}

	results, err := engine.RunMonteCarlo(req.Params, req.NumSimulations, req.Seed)
	if err != nil {
		return nil, err
	}

	if h.cache != nil && req.Seed != nil {
		if err := h.cache.Put(ctx, key, results); err != nil {
			fmt.Printf("[SIMULATE] warning: failed to cache result: %v\n", err)
		}
	}
	return &results, nil
}

func seedOrZero(seed *int64) int64 {
	if seed == nil {
		return 0
	}
	return *seed
}

// HandleDefaults serves GET /api/simulate/defaults.
func HandleDefaults(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(models.DefaultFundParams())
}
