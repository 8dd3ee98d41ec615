package engine

import (
	"testing"

	"pmf_fund_simulator/pkg/models"
)

func TestRunMonteCarlo_Deterministic(t *testing.T) {
	params := models.DefaultFundParams()
	seed := int64(42)

	a, err := RunMonteCarlo(params, 1000, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := RunMonteCarlo(params, 1000, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.NetTvpi.P50 != b.NetTvpi.P50 {
		t.Fatalf("P50 diverged across identical runs: %v vs %v", a.NetTvpi.P50, b.NetTvpi.P50)
	}
	if a.ProbReturnFund != b.ProbReturnFund {
		t.Fatalf("probReturnFund diverged across identical runs: %v vs %v", a.ProbReturnFund, b.ProbReturnFund)
	}
	for i := range a.Runs {
		if a.Runs[i] != b.Runs[i] {
			t.Fatalf("run %d diverged across identical seeds", i)
		}
	}
}

func TestRunMonteCarlo_SingleRunValidSummary(t *testing.T) {
	params := models.DefaultFundParams()
	seed := int64(1)
	res, err := RunMonteCarlo(params, 1, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s := res.NetTvpi
	if s.Mean != s.P10 || s.P10 != s.P50 || s.P50 != s.P90 || s.Min != s.Max {
		t.Fatalf("expected all summary fields equal for a single run, got %+v", s)
	}
}

func TestRunMonteCarlo_ThresholdMonotonic(t *testing.T) {
	params := models.DefaultFundParams()
	seed := int64(7)
	res, err := RunMonteCarlo(params, 2000, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !(res.ProbReturnFund >= res.Prob2x && res.Prob2x >= res.Prob3x) {
		t.Fatalf("threshold probabilities not monotonic: %v >= %v >= %v",
			res.ProbReturnFund, res.Prob2x, res.Prob3x)
	}
}

func TestRunMonteCarlo_CarryZeroMeansTvpiEqualAcrossRuns(t *testing.T) {
	// E2E-5
	params := models.DefaultFundParams()
	params.Carry = 0
	seed := int64(7)
	res, err := RunMonteCarlo(params, 500, &seed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range res.Runs {
		if r.NetTvpi != r.GrossTvpi {
			t.Fatalf("run %d: netTvpi %v != grossTvpi %v with zero carry", i, r.NetTvpi, r.GrossTvpi)
		}
	}
}

func TestRunMonteCarlo_InvalidParamsRejected(t *testing.T) {
	params := models.DefaultFundParams()
	params.Carry = 2.0
	if _, err := RunMonteCarlo(params, 100, nil); err == nil {
		t.Fatal("expected an error for carry outside [0,1]")
	}
}

func TestRunMonteCarlo_NoExplicitSeedStillRuns(t *testing.T) {
	params := models.DefaultFundParams()
	if _, err := RunMonteCarlo(params, 10, nil); err != nil {
		t.Fatalf("unexpected error with nil seed: %v", err)
	}
}
