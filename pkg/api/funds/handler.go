// Package funds implements CRUD endpoints for saved Fund configurations.
package funds

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pmf_fund_simulator/pkg/core/store"
	"pmf_fund_simulator/pkg/models"
)

// Handler holds dependencies for fund endpoints.
type Handler struct {
	repo        *store.FundRepo
	investments *store.InvestmentRepo
}

// NewHandler creates a new funds handler.
func NewHandler(repo *store.FundRepo, investments *store.InvestmentRepo) *Handler {
	return &Handler{repo: repo, investments: investments}
}

func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

type createRequest struct {
	Name   string            `json:"name"`
	Params models.FundParams `json:"params"`
}

// HandleCreate serves POST /api/funds.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	fund, err := h.repo.Create(r.Context(), req.Name, req.Params)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, fund)
}

// HandleList serves GET /api/funds.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	list, err := h.repo.List(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleGet serves GET /api/funds/{id}.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")
	fund, err := h.repo.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, fund)
}

// HandleUpdate serves PUT /api/funds/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")
	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	if err := h.repo.Update(r.Context(), id, req.Name, req.Params); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /api/funds/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")
	if err := h.repo.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleSummary serves GET /api/funds/{id}/summary.
func (h *Handler) HandleSummary(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")
	summary, err := h.investments.Summary(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
