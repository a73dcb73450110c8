package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/bandcalc/internal/calculation"
	"github.com/rgehrsitz/bandcalc/internal/tui/tuimsg"
)

func loadedModel(t *testing.T) Model {
	t.Helper()
	m := NewModel("", "")
	updated, _ := m.Update(EngineLoadedMsg{Engine: calculation.NewCalculationEngine()})
	return updated.(Model)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	return updated.(Model), cmd
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitLoadsDefaultEngine(t *testing.T) {
	m := NewModel("", "")
	assert.True(t, m.loading)

	msg := m.Init()()
	loaded, ok := msg.(EngineLoadedMsg)
	require.True(t, ok, "expected EngineLoadedMsg, got %T", msg)
	assert.NotNil(t, loaded.Engine)
	assert.Nil(t, loaded.Batch)
}

func TestInitRunsBatchFile(t *testing.T) {
	msg := NewModel("", "../../test/testdata/batch.yaml").Init()()
	loaded, ok := msg.(EngineLoadedMsg)
	require.True(t, ok, "expected EngineLoadedMsg, got %T", msg)
	require.NotNil(t, loaded.Batch)
	assert.Len(t, loaded.Batch.Levy, 3)
	assert.Len(t, loaded.Batch.Maintenance, 2)
}

func TestInitReportsMissingRates(t *testing.T) {
	msg := NewModel("does-not-exist.yaml", "").Init()()
	_, ok := msg.(ErrorMsg)
	assert.True(t, ok, "expected ErrorMsg, got %T", msg)
}

func TestNavigation(t *testing.T) {
	m := loadedModel(t)
	assert.False(t, m.loading)

	_, cmd := send(t, m, keys("l"))
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneLevy}, cmd())

	m, _ = send(t, m, NavigateMsg{Scene: SceneLevy})
	assert.Equal(t, SceneLevy, m.currentScene)
	assert.Contains(t, m.View(), "Property Transaction Levy")

	m, _ = send(t, m, NavigateMsg{Scene: SceneMaintenance})
	_, cmd = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, cmd)
	assert.Equal(t, NavigateMsg{Scene: SceneLevy}, cmd())

	_, cmd = send(t, m, keys("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestLevyFormRoundTrip(t *testing.T) {
	m := loadedModel(t)
	m, _ = send(t, m, NavigateMsg{Scene: SceneLevy})
	m, _ = send(t, m, keys("500000"))

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	submitted, ok := cmd().(tuimsg.LevySubmittedMsg)
	require.True(t, ok)
	assert.Equal(t, "500000", submitted.Request.Amount.String())

	m, cmd = send(t, m, submitted)
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "£12,500.00")
	assert.Contains(t, view, "£250,001 to £925,000 @ 5%")
}

func TestMaintenanceFormRoundTrip(t *testing.T) {
	m := loadedModel(t)
	m, _ = send(t, m, NavigateMsg{Scene: SceneMaintenance})
	m, _ = send(t, m, keys("500"))
	// Frequency field: yearly -> monthly -> weekly
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})

	m, cmd := send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	m, cmd = send(t, m, cmd())
	require.NotNil(t, cmd)
	m, _ = send(t, m, cmd())

	view := m.View()
	assert.Contains(t, view, "£60.00")
	assert.Contains(t, view, "Basic Rate")
}

func TestErrorIsDismissed(t *testing.T) {
	m := loadedModel(t)
	m, _ = send(t, m, ErrorMsg{Err: assert.AnError})
	assert.Contains(t, m.View(), assert.AnError.Error())

	m, cmd := send(t, m, keys("x"))
	assert.Nil(t, cmd)
	assert.Nil(t, m.err)
}
