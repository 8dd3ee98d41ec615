package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"pmf_fund_simulator/pkg/api/funds"
	"pmf_fund_simulator/pkg/api/investments"
	"pmf_fund_simulator/pkg/api/simulate"
	"pmf_fund_simulator/pkg/core/store"
)

func main() {
	godotenv.Load()

	ctx := context.Background()
	if err := store.InitDB(ctx); err != nil {
		fmt.Printf("[WARNING] database not configured: %v\n", err)
		fmt.Println("  Fund/portfolio endpoints will fail until DATABASE_URL is set; /api/simulate still works.")
	} else {
		defer store.Close()
	}

	fundRepo := store.NewFundRepo()
	investmentRepo := store.NewInvestmentRepo()
	valuationRepo := store.NewValuationRepo()
	resultCache := store.NewResultCache("")

	simHandler := simulate.NewHandler(resultCache)
	fundHandler := funds.NewHandler(fundRepo, investmentRepo)
	investmentHandler := investments.NewHandler(investmentRepo, valuationRepo)

	mux := http.NewServeMux()

	// Simulation
	mux.HandleFunc("POST /api/simulate", simHandler.HandleRun)
	mux.HandleFunc("GET /api/simulate/defaults", simulate.HandleDefaults)

	// Fund CRUD
	mux.HandleFunc("POST /api/funds", fundHandler.HandleCreate)
	mux.HandleFunc("GET /api/funds", fundHandler.HandleList)
	mux.HandleFunc("GET /api/funds/{id}", fundHandler.HandleGet)
	mux.HandleFunc("PUT /api/funds/{id}", fundHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/funds/{id}", fundHandler.HandleDelete)
	mux.HandleFunc("GET /api/funds/{id}/summary", fundHandler.HandleSummary)

	// Investment CRUD
	mux.HandleFunc("POST /api/funds/{id}/investments", investmentHandler.HandleCreate)
	mux.HandleFunc("GET /api/funds/{id}/investments", investmentHandler.HandleList)
	mux.HandleFunc("PUT /api/investments/{id}", investmentHandler.HandleUpdate)
	mux.HandleFunc("DELETE /api/investments/{id}", investmentHandler.HandleDelete)

	// Valuation history
	mux.HandleFunc("POST /api/investments/{id}/valuations", investmentHandler.HandleAddValuation)
	mux.HandleFunc("GET /api/investments/{id}/valuations", investmentHandler.HandleListValuations)

	// Static UI
	mux.Handle("/", http.FileServer(http.Dir("web/static")))

	fmt.Println("PMF fund simulator starting on :8080")
	fmt.Println("  - POST /api/simulate")
	fmt.Println("  - GET  /api/simulate/defaults")
	fmt.Println("  - GET  /api/funds            POST /api/funds")
	fmt.Println("  - GET  /api/funds/{id}       PUT /api/funds/{id}      DELETE /api/funds/{id}")
	fmt.Println("  - GET  /api/funds/{id}/summary")
	fmt.Println("  - GET  /api/funds/{id}/investments   POST /api/funds/{id}/investments")
	fmt.Println("  - PUT  /api/investments/{id}          DELETE /api/investments/{id}")
	fmt.Println("  - GET  /api/investments/{id}/valuations   POST /api/investments/{id}/valuations")

	if err := http.ListenAndServe(":8080", mux); err != nil {
		fmt.Printf("[FATAL] server failed to start: %v\n", err)
		os.Exit(1)
	}
}
