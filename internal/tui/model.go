package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/config"
	"github.com/rgehrsitz/bandcalc/internal/domain"
	"github.com/rgehrsitz/bandcalc/internal/tui/scenes"
)

// Model represents the entire application state
type Model struct {
	// Navigation
	currentScene  Scene
	previousScene Scene

	// Terminal dimensions
	width  int
	height int

	// Inputs
	ratesPath string
	batchPath string

	engine *calculation.CalculationEngine
	batch  *domain.BatchResults

	homeModel        *scenes.HomeModel
	levyModel        *scenes.LevyModel
	maintenanceModel *scenes.MaintenanceModel
	batchModel       *scenes.BatchModel

	// Error state
	err error

	// Loading state
	loading        bool
	loadingMessage string
}

// NewModel creates a new application model. An empty ratesPath uses the
// built-in tables; an empty batchPath skips the batch scene.
func NewModel(ratesPath, batchPath string) Model {
	return Model{
		currentScene:     SceneHome,
		ratesPath:        ratesPath,
		batchPath:        batchPath,
		homeModel:        scenes.NewHomeModel(),
		levyModel:        scenes.NewLevyModel(),
		maintenanceModel: scenes.NewMaintenanceModel(),
		batchModel:       scenes.NewBatchModel(),
		loading:          true,
		loadingMessage:   "Loading rate tables...",
		width:            80,
		height:           24,
	}
}

// Init initializes the model (required by tea.Model interface)
func (m Model) Init() tea.Cmd {
	return loadEngineCmd(m.ratesPath, m.batchPath)
}

// loadEngineCmd returns a command that builds the engine and runs any batch file
func loadEngineCmd(ratesPath, batchPath string) tea.Cmd {
	return func() tea.Msg {
		parser := config.NewInputParser()
		engine, err := parser.LoadEngine(ratesPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		if batchPath == "" {
			return EngineLoadedMsg{Engine: engine}
		}

		cfg, err := parser.LoadFromFile(batchPath)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		results, err := engine.RunBatch(context.Background(), cfg)
		if err != nil {
			return ErrorMsg{Err: err}
		}
		return EngineLoadedMsg{Engine: engine, Batch: results}
	}
}

// calculateLevyCmd returns a command that prices a levy request
func calculateLevyCmd(engine *calculation.CalculationEngine, req domain.LevyRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.CalculateLevy(context.Background(), req)
		return LevyCalculatedMsg{Result: result, Err: err}
	}
}

// calculateMaintenanceCmd returns a command that runs a maintenance request
func calculateMaintenanceCmd(engine *calculation.CalculationEngine, req domain.MaintenanceRequest) tea.Cmd {
	return func() tea.Msg {
		result, err := engine.CalculateMaintenance(context.Background(), req)
		return MaintenanceCalculatedMsg{Result: result, Err: err}
	}
}

func (s Scene) String() string {
	switch s {
	case SceneHome:
		return "Home"
	case SceneLevy:
		return "Property Levy"
	case SceneMaintenance:
		return "Child Maintenance"
	case SceneBatch:
		return "Batch"
	case SceneHelp:
		return "Help"
	default:
		return "Unknown"
	}
}
