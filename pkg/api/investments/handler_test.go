package investments

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"pmf_fund_simulator/pkg/core/store"
	"pmf_fund_simulator/pkg/models"
)

// TestInvestmentHandler_CreateListAddValuation exercises the tracked
// portfolio HTTP surface against a live Postgres instance. Skipped when
// DATABASE_URL is unset.
func TestInvestmentHandler_CreateListAddValuation(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping store-backed handler test")
	}

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer store.Close()

	fundRepo := store.NewFundRepo()
	fund, err := fundRepo.Create(ctx, "api-test-portfolio-fund", models.DefaultFundParams())
	if err != nil {
		t.Fatalf("create fund: %v", err)
	}
	defer fundRepo.Delete(ctx, fund.ID)

	investmentRepo := store.NewInvestmentRepo()
	valuationRepo := store.NewValuationRepo()
	h := NewHandler(investmentRepo, valuationRepo)

	inv := models.Investment{
		CompanyName: "Beta Co",
		Stage:       models.StageDiscovery,
		CheckSize:   100_000,
		InvestedAt:  time.Now(),
		Status:      models.StatusActive,
	}
	body, _ := json.Marshal(inv)
	createReq := httptest.NewRequest(http.MethodPost, "/api/funds/"+fund.ID+"/investments", bytes.NewReader(body))
	createReq.SetPathValue("id", fund.ID)
	createW := httptest.NewRecorder()
	h.HandleCreate(createW, createReq)

	if createW.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", createW.Code, createW.Body.String())
	}
	var created models.Investment
	if err := json.Unmarshal(createW.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	defer investmentRepo.Delete(ctx, created.ID)

	listReq := httptest.NewRequest(http.MethodGet, "/api/funds/"+fund.ID+"/investments", nil)
	listReq.SetPathValue("id", fund.ID)
	listW := httptest.NewRecorder()
	h.HandleList(listW, listReq)

	if listW.Code != http.StatusOK {
		t.Fatalf("list status = %d, body = %s", listW.Code, listW.Body.String())
	}

	valBody, _ := json.Marshal(models.ValuationUpdate{AsOf: time.Now(), Valuation: 150_000})
	valReq := httptest.NewRequest(http.MethodPost, "/api/investments/"+created.ID+"/valuations", bytes.NewReader(valBody))
	valReq.SetPathValue("id", created.ID)
	valW := httptest.NewRecorder()
	h.HandleAddValuation(valW, valReq)

	if valW.Code != http.StatusCreated {
		t.Fatalf("add valuation status = %d, body = %s", valW.Code, valW.Body.String())
	}
}

func TestInvestmentHandler_UpdateMalformedBody(t *testing.T) {
	h := NewHandler(nil, nil)
	req := httptest.NewRequest(http.MethodPut, "/api/investments/abc", bytes.NewReader([]byte("not json")))
	req.SetPathValue("id", "abc")
	w := httptest.NewRecorder()

	h.HandleUpdate(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
