package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/bandcalc/internal/tui/tuimsg"
)

// Update handles all messages and updates the model state
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.homeModel.SetSize(msg.Width, msg.Height)
		m.levyModel.SetSize(msg.Width, msg.Height)
		m.maintenanceModel.SetSize(msg.Width, msg.Height)
		m.batchModel.SetSize(msg.Width, msg.Height)
		return m, nil

	case NavigateMsg:
		m.previousScene = m.currentScene
		m.currentScene = msg.Scene
		return m, nil

	case ErrorMsg:
		m.loading = false
		m.err = msg.Err
		return m, nil

	case EngineLoadedMsg:
		m.loading = false
		m.engine = msg.Engine
		m.batch = msg.Batch
		m.homeModel.SetConfig(msg.Engine.Regulatory, msg.Batch)
		m.batchModel.SetResults(msg.Batch)
		return m, nil

	case tuimsg.LevySubmittedMsg:
		if m.engine == nil {
			return m, nil
		}
		return m, calculateLevyCmd(m.engine, msg.Request)

	case tuimsg.MaintenanceSubmittedMsg:
		if m.engine == nil {
			return m, nil
		}
		return m, calculateMaintenanceCmd(m.engine, msg.Request)

	case LevyCalculatedMsg:
		m.levyModel.SetResult(msg.Result, msg.Err)
		return m, nil

	case MaintenanceCalculatedMsg:
		m.maintenanceModel.SetResult(msg.Result, msg.Err)
		return m, nil
	}

	return m.updateCurrentScene(msg)
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key dismisses an error
	if m.err != nil && !m.loading {
		if msg.String() == "ctrl+c" || m.engine == nil {
			return m, tea.Quit
		}
		m.err = nil
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		return m.navigate(SceneHelp)

	case "esc":
		if m.currentScene != SceneHome {
			if m.previousScene != m.currentScene {
				return m.navigate(m.previousScene)
			}
			return m.navigate(SceneHome)
		}
		return m, nil

	case "h":
		return m.navigate(SceneHome)

	case "l":
		return m.navigate(SceneLevy)

	case "m":
		return m.navigate(SceneMaintenance)

	case "b":
		return m.navigate(SceneBatch)
	}

	return m.updateCurrentScene(msg)
}

func (m Model) navigate(scene Scene) (tea.Model, tea.Cmd) {
	if m.currentScene == scene {
		return m, nil
	}
	return m, func() tea.Msg {
		return NavigateMsg{Scene: scene}
	}
}

// updateCurrentScene delegates updates to the current scene's model
func (m Model) updateCurrentScene(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.currentScene {
	case SceneHome:
		m.homeModel, cmd = m.homeModel.Update(msg)
	case SceneLevy:
		m.levyModel, cmd = m.levyModel.Update(msg)
	case SceneMaintenance:
		m.maintenanceModel, cmd = m.maintenanceModel.Update(msg)
	case SceneBatch:
		m.batchModel, cmd = m.batchModel.Update(msg)
	}
	return m, cmd
}
