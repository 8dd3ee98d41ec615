package store

import (
	"context"
	"os"
	"testing"

	"pmf_fund_simulator/pkg/models"
)

// TestFundRepo_CRUD exercises a full Fund round-trip against a live
// Postgres instance. It is skipped when DATABASE_URL is unset, since no
// database is available in most local or CI environments running just
// the engine tests.
func TestFundRepo_CRUD(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping store integration test")
	}

	ctx := context.Background()
	if err := InitDB(ctx); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer Close()

	repo := NewFundRepo()
	params := models.DefaultFundParams()

	fund, err := repo.Create(ctx, "integration-test-fund", params)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	defer repo.Delete(ctx, fund.ID)

	got, err := repo.Get(ctx, fund.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "integration-test-fund" {
		t.Errorf("Name = %q, want integration-test-fund", got.Name)
	}
	if got.Params.FundSize != params.FundSize {
		t.Errorf("FundSize = %v, want %v", got.Params.FundSize, params.FundSize)
	}

	params.FundSize = 50_000_000
	if err := repo.Update(ctx, fund.ID, "renamed-fund", params); err != nil {
		t.Fatalf("Update: %v", err)
	}
	updated, err := repo.Get(ctx, fund.ID)
	if err != nil {
		t.Fatalf("Get after update: %v", err)
	}
	if updated.Name != "renamed-fund" || updated.Params.FundSize != 50_000_000 {
		t.Errorf("update did not persist: %+v", updated)
	}

	if err := repo.Delete(ctx, fund.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get(ctx, fund.ID); err == nil {
		t.Errorf("expected error getting deleted fund")
	}
}

// TestInvestmentRepo_CRUDAndSummary exercises Investment CRUD and the
// PortfolioSummary it feeds, same DATABASE_URL gating as above.
func TestInvestmentRepo_CRUDAndSummary(t *testing.T) {
	if os.Getenv("DATABASE_URL") == "" {
		t.Skip("DATABASE_URL not set, skipping store integration test")
	}

	ctx := context.Background()
	if err := InitDB(ctx); err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer Close()

	fundRepo := NewFundRepo()
	fund, err := fundRepo.Create(ctx, "integration-test-portfolio", models.DefaultFundParams())
	if err != nil {
		t.Fatalf("Create fund: %v", err)
	}
	defer fundRepo.Delete(ctx, fund.ID)

	invRepo := NewInvestmentRepo()
	inv := &models.Investment{
		FundID:           fund.ID,
		CompanyName:      "Acme Co",
		Stage:            models.StageConviction,
		CheckSize:        400_000,
		CurrentValuation: floatPtr(900_000),
		Status:           models.StatusActive,
	}
	created, err := invRepo.Create(ctx, inv)
	if err != nil {
		t.Fatalf("Create investment: %v", err)
	}
	defer invRepo.Delete(ctx, created.ID)

	list, err := invRepo.ListByFund(ctx, fund.ID)
	if err != nil {
		t.Fatalf("ListByFund: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 investment, got %d", len(list))
	}

	summary, err := invRepo.Summary(ctx, fund.ID)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalInvested != 400_000 {
		t.Errorf("TotalInvested = %v, want 400000", summary.TotalInvested)
	}

	created.Status = models.StatusExited
	created.RealizedProceeds = floatPtr(1_000_000)
	if err := invRepo.Update(ctx, created); err != nil {
		t.Fatalf("Update: %v", err)
	}
}
