package breakeven

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxPriceRequest asks for the most expensive purchase a levy budget allows
type MaxPriceRequest struct {
	Budget    decimal.Decimal  `json:"budget"`
	Region    domain.Region    `json:"region"`
	BuyerType domain.BuyerType `json:"buyerType"`
}

// MaxPriceResult is the largest whole-pound price whose levy fits the budget
type MaxPriceResult struct {
	Request MaxPriceRequest `json:"request"`

	MaxPrice      decimal.Decimal `json:"maxPrice"`
	Levy          decimal.Decimal `json:"levy"`          // Levy at MaxPrice
	NextLevy      decimal.Decimal `json:"nextLevy"`      // Levy one pound above MaxPrice
	ReliefApplied bool            `json:"reliefApplied"` // Relief schedule used at MaxPrice
	CliffLimited  bool            `json:"cliffLimited"`  // MaxPrice sits at the relief cap
	Adjustments   int             `json:"adjustments"`   // Whole-pound corrections after the analytic solve
}

// Headroom is the unspent part of the budget at MaxPrice.
func (r *MaxPriceResult) Headroom() decimal.Decimal {
	return r.Request.Budget.Sub(r.Levy)
}

// MultiProfileResult holds max prices for every buyer type in a region
type MultiProfileResult struct {
	Budget          decimal.Decimal  `json:"budget"`
	Region          domain.Region    `json:"region"`
	Results         []MaxPriceResult `json:"results"`
	Highest         *MaxPriceResult  `json:"highest,omitempty"`
	Lowest          *MaxPriceResult  `json:"lowest,omitempty"`
	Recommendations []string         `json:"recommendations"`
}

// SolverOptions configures the solver
type SolverOptions struct {
	MaxAdjustments int // Whole-pound steps allowed when verifying the analytic answer
}

// DefaultSolverOptions returns default solver configuration
func DefaultSolverOptions() SolverOptions {
	return SolverOptions{
		MaxAdjustments: 8,
	}
}

// Validate checks the request before solving
func (r *MaxPriceRequest) Validate() error {
	if r.Budget.IsNegative() {
		return &BreakEvenError{
			Operation: "validate_request",
			Message:   "budget cannot be negative",
		}
	}
	if _, err := domain.ParseRegion(string(r.Region)); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "invalid region", Cause: err}
	}
	if _, err := domain.ParseBuyerType(string(r.BuyerType)); err != nil {
		return &BreakEvenError{Operation: "validate_request", Message: "invalid buyer type", Cause: err}
	}
	return nil
}

// BreakEvenError represents errors from the max-price solver
type BreakEvenError struct {
	Operation string
	Message   string
	Cause     error
}

func (e *BreakEvenError) Error() string {
	if e.Cause != nil {
		return e.Operation + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.Operation + ": " + e.Message
}

func (e *BreakEvenError) Unwrap() error {
	return e.Cause
}
