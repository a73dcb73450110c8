package server

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse is the body of every non-2xx reply.
type ErrorResponse struct {
	Status    int    `json:"status"`
	Message   string `json:"message"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"requestId"`
}

// CompareRequest prices one amount under a base profile and alternatives.
// Profiles use the "region:buyer-type" shorthand.
type CompareRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	Base         string          `json:"base"`
	Alternatives []string        `json:"alternatives"`
}

// MaxPriceRequest asks for the highest price a levy budget covers. An empty
// buyer type solves every buyer type in the region.
type MaxPriceRequest struct {
	Budget    decimal.Decimal  `json:"budget"`
	Region    domain.Region    `json:"region"`
	BuyerType domain.BuyerType `json:"buyerType,omitempty"`
}

// ScheduleView is a rate schedule with display labels.
type ScheduleView struct {
	Name  string     `json:"name"`
	Bands []BandView `json:"bands"`
}

// BandView is one band of a ScheduleView.
type BandView struct {
	Label string           `json:"label"`
	Lower decimal.Decimal  `json:"lower"`
	Upper *decimal.Decimal `json:"upper,omitempty"`
	Rate  decimal.Decimal  `json:"rate"`
}

// SchedulesResponse lists the loaded tables.
type SchedulesResponse struct {
	TaxYear   string         `json:"taxYear"`
	Schedules []ScheduleView `json:"schedules"`
}
