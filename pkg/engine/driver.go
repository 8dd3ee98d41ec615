package engine

import (
	"time"

	"pmf_fund_simulator/pkg/models"
)

// RunMonteCarlo runs numSimulations independent realizations sharing one
// PRNG stream seeded from seed, then aggregates them into
// MonteCarloResults. If seed is nil, the stream is seeded from
// wall-clock milliseconds — callers that need reproducibility must
// always pass an explicit seed.
//
// Runs execute sequentially against a single owned PRNG; this is
// mandatory for reproducibility and must not be parallelized without
// documenting a different, per-shard reproducibility contract.
func RunMonteCarlo(params models.FundParams, numSimulations int, seed *int64) (models.MonteCarloResults, error) {
	if err := ValidateParams(params); err != nil {
		return models.MonteCarloResults{}, err
	}
	if numSimulations <= 0 {
		numSimulations = 1
	}

	s := int64(time.Now().UnixMilli())
	if seed != nil {
		s = *seed
	}
	rng := NewPRNG(s)

	runs := make([]models.SimulationResult, numSimulations)
	for i := 0; i < numSimulations; i++ {
		r, err := SimulateOnce(params, rng)
		if err != nil {
			return models.MonteCarloResults{}, err
		}
		runs[i] = r
	}

	return aggregate(params, numSimulations, runs), nil
}

// aggregate turns a vector of per-run results into the summary and
// threshold-probability view returned alongside the raw runs.
func aggregate(params models.FundParams, numSimulations int, runs []models.SimulationResult) models.MonteCarloResults {
	grossTvpi := make([]float64, len(runs))
	netTvpi := make([]float64, len(runs))
	dpiNet := make([]float64, len(runs))
	irrNet := make([]float64, len(runs))
	for i, r := range runs {
		grossTvpi[i] = r.GrossTvpi
		netTvpi[i] = r.NetTvpi
		dpiNet[i] = r.DpiNet
		irrNet[i] = r.IrrNet
	}

	return models.MonteCarloResults{
		Runs:           runs,
		GrossTvpi:      summarize(grossTvpi),
		NetTvpi:        summarize(netTvpi),
		DpiNet:         summarize(dpiNet),
		IrrNet:         summarize(irrNet),
		ProbReturnFund: thresholdProbability(runs, 1.0),
		Prob2x:         thresholdProbability(runs, 2.0),
		Prob3x:         thresholdProbability(runs, 3.0),
		Params:         params,
		NumSimulations: numSimulations,
	}
}
