// Package tuimsg defines messages scenes send to the root model.
package tuimsg

import (
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// LevySubmittedMsg asks the root model to price a levy form
type LevySubmittedMsg struct {
	Request domain.LevyRequest
}

// MaintenanceSubmittedMsg asks the root model to run a maintenance form
type MaintenanceSubmittedMsg struct {
	Request domain.MaintenanceRequest
}

