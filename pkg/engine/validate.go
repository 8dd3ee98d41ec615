package engine

import (
	"errors"
	"fmt"

	"pmf_fund_simulator/pkg/models"
)

// ErrInvalidParams is returned (wrapped with a reason) when FundParams
// fail entry validation. No sampling occurs for an invalid params set.
var ErrInvalidParams = errors.New("invalid fund params")

// ValidateParams rejects parameter sets the engine's contract refuses to
// simulate: negative fund size, non-positive fund life, or a fraction
// outside [0,1] where the model requires one.
func ValidateParams(p models.FundParams) error {
	switch {
	case p.FundSize < 0:
		return fmt.Errorf("%w: fund_size must be non-negative, got %v", ErrInvalidParams, p.FundSize)
	case p.FundLife <= 0:
		return fmt.Errorf("%w: fund_life must be >= 1, got %v", ErrInvalidParams, p.FundLife)
	case !fraction01(p.MgmtFeeRate):
		return fmt.Errorf("%w: mgmt_fee_rate must be in [0,1], got %v", ErrInvalidParams, p.MgmtFeeRate)
	case !fraction01(p.MgmtFeeStepdown):
		return fmt.Errorf("%w: mgmt_fee_stepdown must be in [0,1], got %v", ErrInvalidParams, p.MgmtFeeStepdown)
	case !fraction01(p.Carry):
		return fmt.Errorf("%w: carry must be in [0,1], got %v", ErrInvalidParams, p.Carry)
	case !fraction01(p.GraduationRate):
		return fmt.Errorf("%w: graduation_rate must be in [0,1], got %v", ErrInvalidParams, p.GraduationRate)
	case !fraction01(p.FollowOnReservePercent):
		return fmt.Errorf("%w: follow_on_reserve_percent must be in [0,1], got %v", ErrInvalidParams, p.FollowOnReservePercent)
	case p.MgmtFeeFullYears < 0 || p.MgmtFeeFullYears > p.FundLife:
		return fmt.Errorf("%w: mgmt_fee_full_years must be in [0, fund_life], got %v", ErrInvalidParams, p.MgmtFeeFullYears)
	case p.DiscoveryCheckSize < 0:
		return fmt.Errorf("%w: discovery_check_size must be non-negative, got %v", ErrInvalidParams, p.DiscoveryCheckSize)
	case p.ConvictionCheckSize < 0:
		return fmt.Errorf("%w: conviction_check_size must be non-negative, got %v", ErrInvalidParams, p.ConvictionCheckSize)
	case p.MaxDiscoveryChecks < 0:
		return fmt.Errorf("%w: max_discovery_checks must be non-negative, got %v", ErrInvalidParams, p.MaxDiscoveryChecks)
	}
	return nil
}

func fraction01(x float64) bool {
	return x >= 0 && x <= 1
}
