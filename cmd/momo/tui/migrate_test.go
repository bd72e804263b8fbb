package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TKcodes-bit/Momo-app-code-bit/pkg/migration"
)

func TestConfirmationDialogEmitsDecision(t *testing.T) {
	d := NewConfirmationDialog("Confirm", "apply?")
	d.YesSelected = true

	cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ConfirmMsg)
	require.True(t, ok)
	assert.True(t, msg.Confirmed)
}

func TestConfirmationDialogEmitsCancel(t *testing.T) {
	d := NewConfirmationDialog("Confirm", "apply?")

	cmd := d.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ConfirmMsg)
	require.True(t, ok)
	assert.False(t, msg.Confirmed)
}

// Confirming must move the returned model into the executing view, not
// a stale copy of it.
func TestConfirmMovesModelToExecuting(t *testing.T) {
	m := Model{
		mode:   ModeConfirm,
		action: "up",
		migrations: []migration.Migration{
			{Version: "20250901120000", Name: "create_users"},
		},
	}

	updated, cmd := m.Update(ConfirmMsg{Confirmed: true})
	require.IsType(t, Model{}, updated)
	assert.Equal(t, ModeExecuting, updated.(Model).mode)
	assert.NotNil(t, cmd)
}

func TestConfirmCancelReturnsToList(t *testing.T) {
	m := Model{mode: ModeConfirm}

	updated, cmd := m.Update(ConfirmMsg{Confirmed: false})
	require.IsType(t, Model{}, updated)
	assert.Equal(t, ModeList, updated.(Model).mode)
	assert.Nil(t, cmd)
}

func TestConfirmIgnoredOutsideConfirmMode(t *testing.T) {
	m := Model{mode: ModeComplete}

	updated, _ := m.Update(ConfirmMsg{Confirmed: true})
	assert.Equal(t, ModeComplete, updated.(Model).mode)
}
