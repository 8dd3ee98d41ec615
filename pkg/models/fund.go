// Package models defines the record types shared between the simulation
// engine, the portfolio store, and the HTTP API.
package models

import "time"

// FundParams are the inputs to a Monte Carlo fund simulation. All fields
// are non-negative unless noted; fractions are expressed in [0,1].
type FundParams struct {
	FundSize float64 `json:"fund_size" yaml:"fund_size"`
	FundLife int     `json:"fund_life" yaml:"fund_life"` // years, >= 1

	MgmtFeeRate      float64 `json:"mgmt_fee_rate" yaml:"mgmt_fee_rate"`           // annual, of FundSize
	MgmtFeeFullYears int     `json:"mgmt_fee_full_years" yaml:"mgmt_fee_full_years"` // 0 <= x <= FundLife
	MgmtFeeStepdown  float64 `json:"mgmt_fee_stepdown" yaml:"mgmt_fee_stepdown"`   // fraction applied after full years

	Carry float64 `json:"carry" yaml:"carry"` // fraction of profit, 0-1

	DiscoveryCheckSize float64 `json:"discovery_check_size" yaml:"discovery_check_size"`
	MaxDiscoveryChecks int     `json:"max_discovery_checks" yaml:"max_discovery_checks"`

	ConvictionCheckSize float64 `json:"conviction_check_size" yaml:"conviction_check_size"`
	ConvictionCheckMin  float64 `json:"conviction_check_min" yaml:"conviction_check_min"` // informational; UI bound only
	ConvictionCheckMax  float64 `json:"conviction_check_max" yaml:"conviction_check_max"` // informational; UI bound only

	GraduationRate         float64 `json:"graduation_rate" yaml:"graduation_rate"` // fraction, 0-1
	FollowOnReservePercent float64 `json:"follow_on_reserve_percent" yaml:"follow_on_reserve_percent"`
}

// DefaultFundParams returns the host's starting parameters.
func DefaultFundParams() FundParams {
	return FundParams{
		FundSize:               25_000_000,
		FundLife:               10,
		MgmtFeeRate:            0.02,
		MgmtFeeFullYears:       4,
		MgmtFeeStepdown:        0.7,
		Carry:                  0.20,
		DiscoveryCheckSize:     100_000,
		MaxDiscoveryChecks:     75,
		ConvictionCheckSize:    400_000,
		ConvictionCheckMin:     300_000,
		ConvictionCheckMax:     600_000,
		GraduationRate:         0.25,
		FollowOnReservePercent: 0.20,
	}
}

// SimulationResult is the per-run output of a single fund realization.
type SimulationResult struct {
	TotalCalled    float64 `json:"total_called"`
	TotalDistGross float64 `json:"total_dist_gross"`
	TotalDistNet   float64 `json:"total_dist_net"`

	GrossTvpi float64 `json:"gross_tvpi"`
	NetTvpi   float64 `json:"net_tvpi"`
	DpiGross  float64 `json:"dpi_gross"`
	DpiNet    float64 `json:"dpi_net"`

	IrrNet    float64 `json:"irr_net"`
	CarryPaid float64 `json:"carry_paid"`

	DiscoveryOnlyCount int `json:"discovery_only_count"`
	ConvictionCount    int `json:"conviction_count"`
	FollowOnCount      int `json:"follow_on_count"`
}

// SimulationSummary is the mean, five percentiles, min and max of one
// metric across runs.
type SimulationSummary struct {
	Mean float64 `json:"mean"`
	P10  float64 `json:"p10"`
	P25  float64 `json:"p25"`
	P50  float64 `json:"p50"`
	P75  float64 `json:"p75"`
	P90  float64 `json:"p90"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// MonteCarloResults aggregates N simulation runs into summaries and
// threshold probabilities, echoing the inputs that produced it.
type MonteCarloResults struct {
	Runs []SimulationResult `json:"runs"`

	GrossTvpi SimulationSummary `json:"gross_tvpi"`
	NetTvpi   SimulationSummary `json:"net_tvpi"`
	DpiNet    SimulationSummary `json:"dpi_net"`
	IrrNet    SimulationSummary `json:"irr_net"`

	ProbReturnFund float64 `json:"prob_return_fund"` // share of runs with NetTvpi >= 1.0
	Prob2x         float64 `json:"prob_2x"`          // >= 2.0
	Prob3x         float64 `json:"prob_3x"`          // >= 3.0

	Params         FundParams `json:"params"`
	NumSimulations int        `json:"num_simulations"`
}

// Fund is a saved, named fund configuration a user can re-run.
type Fund struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Params    FundParams `json:"params"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// InvestmentStage distinguishes a tracked investment's check stage.
type InvestmentStage string

const (
	StageDiscovery InvestmentStage = "discovery"
	StageConviction InvestmentStage = "conviction"
)

// InvestmentStatus is the lifecycle state of a tracked investment.
type InvestmentStatus string

const (
	StatusActive     InvestmentStatus = "active"
	StatusExited     InvestmentStatus = "exited"
	StatusWrittenOff InvestmentStatus = "written_off"
)

// Investment is a real portfolio company tracked against a Fund, distinct
// from the engine's simulated companies.
type Investment struct {
	ID               string           `json:"id"`
	FundID           string           `json:"fund_id"`
	CompanyName      string           `json:"company_name"`
	Stage            InvestmentStage  `json:"stage"`
	CheckSize        float64          `json:"check_size"`
	InvestedAt       time.Time        `json:"invested_at"`
	CurrentValuation *float64         `json:"current_valuation,omitempty"`
	RealizedProceeds *float64         `json:"realized_proceeds,omitempty"`
	Status           InvestmentStatus `json:"status"`
}

// ValuationUpdate is one append-only mark against an Investment.
type ValuationUpdate struct {
	ID           string    `json:"id"`
	InvestmentID string    `json:"investment_id"`
	AsOf         time.Time `json:"as_of"`
	Valuation    float64   `json:"valuation"`
	Note         string    `json:"note,omitempty"`
}

// PortfolioSummary is derived across a fund's tracked investments; it is
// never stored, only computed on read.
type PortfolioSummary struct {
	TotalInvested     float64 `json:"total_invested"`
	TotalCurrentValue float64 `json:"total_current_value"`
	TotalRealized     float64 `json:"total_realized"`
	Moic              float64 `json:"moic"`
}
