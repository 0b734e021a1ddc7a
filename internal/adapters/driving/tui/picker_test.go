package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

func pickerCandidates() []domain.ConnectorDescriptor {
	return []domain.ConnectorDescriptor{
		{QualifiedName: "github/mcp-server", Description: "Official GitHub connector", Verified: true},
		{QualifiedName: "acme/github-tools", Description: "Community GitHub tools"},
		{QualifiedName: "acme/git-helper"},
	}
}

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func TestPicker_Navigation(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())
	assert.Equal(t, 0, picker.selected)

	model, _ := picker.Update(keyMsg("down"))
	picker = model.(*Picker)
	assert.Equal(t, 1, picker.selected)

	model, _ = picker.Update(keyMsg("j"))
	picker = model.(*Picker)
	assert.Equal(t, 2, picker.selected)

	// Bottom is sticky
	model, _ = picker.Update(keyMsg("down"))
	picker = model.(*Picker)
	assert.Equal(t, 2, picker.selected)

	model, _ = picker.Update(keyMsg("k"))
	picker = model.(*Picker)
	assert.Equal(t, 1, picker.selected)
}

func TestPicker_TopIsSticky(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())

	model, _ := picker.Update(keyMsg("up"))
	picker = model.(*Picker)
	assert.Equal(t, 0, picker.selected)
}

func TestPicker_Select(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())

	model, _ := picker.Update(keyMsg("down"))
	picker = model.(*Picker)
	model, cmd := picker.Update(keyMsg("enter"))
	picker = model.(*Picker)

	require.NotNil(t, cmd, "enter should quit the program")
	require.NotNil(t, picker.Choice())
	assert.Equal(t, "acme/github-tools", picker.Choice().QualifiedName)
	assert.False(t, picker.Dismissed())
}

func TestPicker_Dismiss(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())

	model, cmd := picker.Update(keyMsg("esc"))
	picker = model.(*Picker)

	require.NotNil(t, cmd, "esc should quit the program")
	assert.Nil(t, picker.Choice())
	assert.True(t, picker.Dismissed())
}

func TestPicker_View(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())
	picker.ready = true

	view := picker.View()
	assert.Contains(t, view, "github/mcp-server")
	assert.Contains(t, view, "verified")
	assert.Contains(t, view, "Community GitHub tools")
	assert.Contains(t, view, "[Enter] Select")
}

func TestPicker_WindowSize(t *testing.T) {
	picker := NewPicker(nil, pickerCandidates())

	model, _ := picker.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	picker = model.(*Picker)
	assert.True(t, picker.ready)
	assert.Equal(t, 120, picker.width)
	assert.Equal(t, 40, picker.height)
}
