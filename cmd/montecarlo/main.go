package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io/ioutil"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"

	"pmf_fund_simulator/pkg/core/store"
	"pmf_fund_simulator/pkg/engine"
	"pmf_fund_simulator/pkg/models"
)

func main() {
	paramsPath := flag.String("params", "", "YAML file of fund params (defaults to the built-in defaults if omitted)")
	n := flag.Int("n", 5000, "number of simulation runs")
	seedFlag := flag.Int64("seed", 0, "PRNG seed (0 and -seed unset both mean \"random\")")
	seedSet := flag.Bool("seeded", false, "treat -seed as explicitly set, even if it is 0")
	format := flag.String("format", "table", "output format: table or json")
	saveName := flag.String("save", "", "if set, saves the run's params as a Fund under this name (requires DATABASE_URL); results are not stored")
	flag.Parse()

	params := models.DefaultFundParams()
	if *paramsPath != "" {
		data, err := ioutil.ReadFile(*paramsPath)
		if err != nil {
			fmt.Printf("[FATAL] failed to read params file: %v\n", err)
			os.Exit(1)
		}
		if err := yaml.Unmarshal(data, &params); err != nil {
			fmt.Printf("[FATAL] failed to parse params file: %v\n", err)
			os.Exit(1)
		}
	}

	var seed *int64
	if *seedSet || *seedFlag != 0 {
		seed = seedFlag
	}

	results, err := engine.RunMonteCarlo(params, *n, seed)
	if err != nil {
		fmt.Printf("[FATAL] simulation failed: %v\n", err)
		os.Exit(1)
	}

	if *saveName != "" {
		godotenv.Load()
		ctx := context.Background()
		if err := store.InitDB(ctx); err != nil {
			fmt.Printf("[WARNING] could not save run: %v\n", err)
		} else {
			defer store.Close()
			fundRepo := store.NewFundRepo()
			fund, err := fundRepo.Create(ctx, *saveName, params)
			if err != nil {
				fmt.Printf("[WARNING] failed to save fund: %v\n", err)
			} else {
				fmt.Printf("[MONTECARLO] saved fund %q as %s\n", fund.Name, fund.ID)
			}
		}
	}

	switch *format {
	case "json":
		printJSON(results)
	default:
		printTable(results)
	}
}

func printJSON(results models.MonteCarloResults) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(results); err != nil {
		fmt.Printf("[FATAL] failed to encode results: %v\n", err)
		os.Exit(1)
	}
}

func printTable(results models.MonteCarloResults) {
	fmt.Printf("Monte Carlo fund simulation: %d runs\n\n", results.NumSimulations)
	printSummaryRow("Gross TVPI", results.GrossTvpi)
	printSummaryRow("Net TVPI", results.NetTvpi)
	printSummaryRow("Net DPI", results.DpiNet)
	printSummaryRow("Net IRR", results.IrrNet)
	fmt.Println()
	fmt.Printf("P(return fund):   %.1f%%\n", results.ProbReturnFund*100)
	fmt.Printf("P(>= 2x net):     %.1f%%\n", results.Prob2x*100)
	fmt.Printf("P(>= 3x net):     %.1f%%\n", results.Prob3x*100)
}

func printSummaryRow(label string, s models.SimulationSummary) {
	fmt.Printf("%-12s mean=%.3f  p10=%.3f  p25=%.3f  p50=%.3f  p75=%.3f  p90=%.3f  min=%.3f  max=%.3f\n",
		label, s.Mean, s.P10, s.P25, s.P50, s.P75, s.P90, s.Min, s.Max)
}
