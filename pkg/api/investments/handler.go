// Package investments implements CRUD endpoints for tracked portfolio
// companies and their valuation history.
package investments

import (
	"encoding/json"
	"fmt"
	"net/http"

	"pmf_fund_simulator/pkg/core/store"
	"pmf_fund_simulator/pkg/models"
)

// Handler holds dependencies for investment and valuation endpoints.
type Handler struct {
	investments *store.InvestmentRepo
	valuations  *store.ValuationRepo
}

// NewHandler creates a new investments handler.
func NewHandler(investments *store.InvestmentRepo, valuations *store.ValuationRepo) *Handler {
	return &Handler{investments: investments, valuations: valuations}
}

func corsHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// HandleCreate serves POST /api/funds/{id}/investments.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	fundID := r.PathValue("id")

	var inv models.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	inv.FundID = fundID

	created, err := h.investments.Create(r.Context(), &inv)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleList serves GET /api/funds/{id}/investments.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	fundID := r.PathValue("id")
	list, err := h.investments.ListByFund(r.Context(), fundID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

// HandleUpdate serves PUT /api/investments/{id}.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")

	var inv models.Investment
	if err := json.NewDecoder(r.Body).Decode(&inv); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	inv.ID = id

	if err := h.investments.Update(r.Context(), &inv); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete serves DELETE /api/investments/{id}.
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	id := r.PathValue("id")
	if err := h.investments.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleAddValuation serves POST /api/investments/{id}/valuations.
func (h *Handler) HandleAddValuation(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	investmentID := r.PathValue("id")

	var v models.ValuationUpdate
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}
	v.InvestmentID = investmentID

	created, err := h.valuations.Append(r.Context(), &v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HandleListValuations serves GET /api/investments/{id}/valuations.
func (h *Handler) HandleListValuations(w http.ResponseWriter, r *http.Request) {
	corsHeaders(w)
	investmentID := r.PathValue("id")
	list, err := h.valuations.ListByInvestment(r.Context(), investmentID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, list)
}
