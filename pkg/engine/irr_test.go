package engine

import (
	"math"
	"testing"
)

func TestIRR_Smoke(t *testing.T) {
	// E2E-1: [-100, 0, 0, 0, 0, 161.051] -> 10% annual compounding.
	cf := []float64{-100, 0, 0, 0, 0, 161.051}
	r, ok := IRR(cf)
	if !ok {
		t.Fatal("expected IRR to converge")
	}
	if math.Abs(r-0.10) > 1e-6 {
		t.Fatalf("got %v, want 0.10 +/- 1e-6", r)
	}
}

func TestIRR_SignChange(t *testing.T) {
	// E2E-2: [-100, 50, 50, 50] -> ~0.2337
	cf := []float64{-100, 50, 50, 50}
	r, ok := IRR(cf)
	if !ok {
		t.Fatal("expected IRR to converge")
	}
	if math.Abs(r-0.2337) > 1e-4 {
		t.Fatalf("got %v, want 0.2337 +/- 1e-4", r)
	}
}

func TestIRR_Degenerate(t *testing.T) {
	// E2E-3: multiple sign changes. Solver must return a finite value
	// within [-0.99, 10] without crashing; convergence isn't guaranteed.
	cf := []float64{-100, -50, 200}
	r, ok := IRR(cf)
	if ok {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			t.Fatalf("IRR returned non-finite value: %v", r)
		}
		if r < -0.99 || r > 10 {
			t.Fatalf("IRR out of clamp range: %v", r)
		}
	}
}

func TestIRR_NoSignChangeFails(t *testing.T) {
	cf := []float64{-100, -50, -25}
	_, ok := IRR(cf)
	if ok {
		t.Fatal("expected IRR to fail to converge on an all-negative series")
	}
}

func TestIRR_ClampsExtremeRates(t *testing.T) {
	// A cash flow series with a huge implied return should still clamp
	// into [-0.99, 10] rather than diverge.
	cf := []float64{-1, 1_000_000}
	r, ok := IRR(cf)
	if ok && (r < -0.99 || r > 10) {
		t.Fatalf("IRR escaped clamp range: %v", r)
	}
}
