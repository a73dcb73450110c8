package tui

import (
	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneHome Scene = iota
	SceneLevy
	SceneMaintenance
	SceneBatch
	SceneHelp
)

// Message types for the Bubble Tea update cycle

// NavigateMsg switches to a different scene
type NavigateMsg struct {
	Scene Scene
}

// ErrorMsg displays an error to the user
type ErrorMsg struct {
	Err error
}

// EngineLoadedMsg signals rate tables (and any batch file) have been loaded
type EngineLoadedMsg struct {
	Engine *calculation.CalculationEngine
	Batch  *domain.BatchResults
}

// LevyCalculatedMsg carries the outcome of a levy form
type LevyCalculatedMsg struct {
	Result *domain.LevyResult
	Err    error
}

// MaintenanceCalculatedMsg carries the outcome of a maintenance form
type MaintenanceCalculatedMsg struct {
	Result *domain.MaintenanceResult
	Err    error
}
