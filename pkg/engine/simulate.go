package engine

import (
	"math"
	"sort"

	"pmf_fund_simulator/pkg/models"
)

// company tracks per-company state through the discovery -> conviction ->
// follow-on pipeline of a single simulation run.
type company struct {
	index      int
	outcome    float64
	signal     float64
	conviction bool
	followOn   bool
}

// SimulateOnce runs one fund realization: fees, reserves, graduation by
// noisy signal, follow-on selection, cash-flow construction, and metric
// computation. rng is advanced in place. The number of draws depends on
// params and on the sampler branches taken (see the draw-count contract
// in sampler.go), so identical params and PRNG state always produce
// identical results and draw sequences.
func SimulateOnce(params models.FundParams, rng *PRNG) (models.SimulationResult, error) {
	if err := ValidateParams(params); err != nil {
		return models.SimulationResult{}, err
	}

	// 1. Fees.
	totalFees := 0.0
	for year := 1; year <= params.FundLife; year++ {
		totalFees += feeForYear(params, year)
	}
	investableCapital := params.FundSize - totalFees

	// 2. Reserves. investableCapital net of reserve is computed and
	// discarded: checks are never scaled to fit it, and no warning is
	// emitted when the checks exceed it.
	followOnReserve := params.FundSize * params.FollowOnReservePercent
	_ = investableCapital - followOnReserve

	// 3. Cohort sizes.
	numDiscovery := params.MaxDiscoveryChecks
	numConviction := int(roundHalfAwayFromZero(float64(numDiscovery) * params.GraduationRate))
	if numConviction > numDiscovery {
		numConviction = numDiscovery
	}

	// 4. Outcome generation.
	companies := make([]*company, numDiscovery)
	for i := 0; i < numDiscovery; i++ {
		outcome := SampleDiscoveryOnly(rng)
		signal := math.Log(outcome+0.1) + rng.Gaussian(0, 1.0)
		companies[i] = &company{index: i, outcome: outcome, signal: signal}
	}

	// 5. Conviction selection: rank by signal descending, ties by index
	// ascending — a stable sort on (-signal, index).
	ranked := append([]*company(nil), companies...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].signal > ranked[b].signal
	})
	for i := 0; i < numConviction && i < len(ranked); i++ {
		ranked[i].conviction = true
	}

	// 6. Conviction re-draw: replace the outcome for every conviction
	// company with a fresh draw from the better mixture.
	for _, c := range companies {
		if c.conviction {
			c.outcome = SampleConviction(rng)
		}
	}

	// 7. Follow-on selection and sizing.
	avgFollowOnCheck := 0.5 * params.ConvictionCheckSize
	followOnCapByReserve := 0
	if avgFollowOnCheck > 0 {
		followOnCapByReserve = int(math.Floor(followOnReserve / avgFollowOnCheck))
	}
	followOnCapByShare := int(roundHalfAwayFromZero(0.4 * float64(numConviction)))
	numFollowOn := followOnCapByReserve
	if followOnCapByShare < numFollowOn {
		numFollowOn = followOnCapByShare
	}
	if numFollowOn < 0 {
		numFollowOn = 0
	}

	convictionCompanies := make([]*company, 0, numConviction)
	for _, c := range companies {
		if c.conviction {
			convictionCompanies = append(convictionCompanies, c)
		}
	}
	sort.SliceStable(convictionCompanies, func(a, b int) bool {
		return convictionCompanies[a].outcome > convictionCompanies[b].outcome
	})
	for i := 0; i < numFollowOn && i < len(convictionCompanies); i++ {
		convictionCompanies[i].followOn = true
	}

	followOnCheckSize := 0.0
	if numFollowOn > 0 {
		followOnCheckSize = followOnReserve / float64(numFollowOn)
	}

	// 8. Cash flows.
	cf := make([]float64, params.FundLife+1)
	cf[1] -= float64(numDiscovery) * params.DiscoveryCheckSize
	cf[1] -= float64(numConviction) * params.ConvictionCheckSize
	if numFollowOn > 0 {
		setIfInRange(cf, 2, -0.5*followOnReserve)
		setIfInRange(cf, 3, -0.5*followOnReserve)
	}

	totalDistGross := 0.0
	for _, c := range companies {
		exitYear := rng.RandInt(4, int64(params.FundLife))

		var dist float64
		if c.conviction {
			invested := params.DiscoveryCheckSize + params.ConvictionCheckSize
			dist = invested * c.outcome
			if c.followOn {
				dist += followOnCheckSize * math.Max(c.outcome/3, 0)
			}
		} else {
			dist = params.DiscoveryCheckSize * c.outcome
		}

		addIfInRange(cf, int(exitYear), dist)
		totalDistGross += dist
	}

	// 9. Metrics.
	totalCalled := 0.0
	for _, v := range cf {
		if v < 0 {
			totalCalled += -v
		}
	}

	grossTvpi := safeDiv(totalDistGross, totalCalled)
	dpiGross := grossTvpi

	profit := totalDistGross - totalCalled
	carryPaid := math.Max(profit, 0) * params.Carry

	totalDistNet := totalDistGross - carryPaid
	netTvpi := safeDiv(totalDistNet, totalCalled)
	dpiNet := netTvpi

	netCF := append([]float64(nil), cf...)
	netCF[len(netCF)-1] -= carryPaid
	irrNet := 0.0
	if totalCalled > 0 {
		if r, ok := IRR(netCF); ok {
			irrNet = r
		}
	}

	return models.SimulationResult{
		TotalCalled:        totalCalled,
		TotalDistGross:     totalDistGross,
		TotalDistNet:       totalDistNet,
		GrossTvpi:          grossTvpi,
		NetTvpi:            netTvpi,
		DpiGross:           dpiGross,
		DpiNet:             dpiNet,
		IrrNet:             irrNet,
		CarryPaid:          carryPaid,
		DiscoveryOnlyCount: numDiscovery - numConviction,
		ConvictionCount:    numConviction,
		FollowOnCount:      numFollowOn,
	}, nil
}

// feeForYear returns the management fee charged in a given 1-indexed
// fund year: full rate through MgmtFeeFullYears, then stepped down.
func feeForYear(params models.FundParams, year int) float64 {
	if year <= params.MgmtFeeFullYears {
		return params.MgmtFeeRate * params.FundSize
	}
	return params.MgmtFeeStepdown * params.MgmtFeeRate * params.FundSize
}

// roundHalfAwayFromZero rounds half away from zero rather than Go's
// default round-half-to-even, matching the rounding convention cohort
// sizes must use: equivalent to floor(x+0.5) for non-negative x.
func roundHalfAwayFromZero(x float64) float64 {
	if x >= 0 {
		return math.Floor(x + 0.5)
	}
	return -math.Floor(-x + 0.5)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func setIfInRange(cf []float64, year int, v float64) {
	if year >= 0 && year < len(cf) {
		cf[year] = v
	}
}

func addIfInRange(cf []float64, year int, v float64) {
	if year >= 0 && year < len(cf) {
		cf[year] += v
	}
}
