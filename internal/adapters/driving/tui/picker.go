package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcpm-dev/mcpm-cli/internal/core/domain"
)

// Picker is a full-screen list for choosing one connector among candidates.
// It implements tea.Model.
type Picker struct {
	// styles holds the picker styles.
	styles *Styles

	// keys holds the picker keybindings.
	keys *KeyMap

	// candidates are the connectors on offer, in registry rank order.
	candidates []domain.ConnectorDescriptor

	// selected is the highlighted index.
	selected int

	// choice is the confirmed candidate, nil until Enter.
	choice *domain.ConnectorDescriptor

	// dismissed is true when the operator backed out.
	dismissed bool

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates the picker has received its dimensions.
	ready bool
}

// Ensure Picker implements tea.Model.
var _ tea.Model = (*Picker)(nil)

// NewPicker creates a picker over the given candidates.
func NewPicker(s *Styles, candidates []domain.ConnectorDescriptor) *Picker {
	if s == nil {
		s = DefaultStyles()
	}

	return &Picker{
		styles:     s,
		keys:       DefaultKeyMap(),
		candidates: candidates,
		selected:   0,
		width:      80,
		height:     24,
	}
}

// Init initialises the picker.
func (p *Picker) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		p.ready = true
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, p.keys.Up):
			if p.selected > 0 {
				p.selected--
			}
			return p, nil

		case key.Matches(msg, p.keys.Down):
			if p.selected < len(p.candidates)-1 {
				p.selected++
			}
			return p, nil

		case key.Matches(msg, p.keys.Select):
			choice := p.candidates[p.selected]
			p.choice = &choice
			return p, tea.Quit

		case key.Matches(msg, p.keys.Cancel):
			p.dismissed = true
			return p, tea.Quit
		}
	}

	return p, nil
}

// View renders the candidate list.
func (p *Picker) View() string {
	if !p.ready {
		return "Initialising..."
	}

	var b strings.Builder

	b.WriteString(p.styles.Title.Render("Select a connector"))
	b.WriteString("\n\n")

	for i, c := range p.candidates {
		cursor := "  "
		style := p.styles.Normal
		if i == p.selected {
			cursor = "> "
			style = p.styles.Selected
		}

		line := cursor + style.Render(c.QualifiedName)
		if c.Verified {
			line += " " + p.styles.Verified.Render("✓ verified")
		}
		b.WriteString(line)
		b.WriteString("\n")

		if c.Description != "" {
			b.WriteString("    " + p.styles.Muted.Render(c.Description))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(p.styles.Help.Render("[j/k] Navigate  [Enter] Select  [Esc] Cancel"))

	return b.String()
}

// Choice returns the confirmed candidate, nil when dismissed.
func (p *Picker) Choice() *domain.ConnectorDescriptor {
	return p.choice
}

// Dismissed returns true when the operator backed out without choosing.
func (p *Picker) Dismissed() bool {
	return p.dismissed
}

// PickCandidate runs the picker as a full-screen program and returns the
// operator's choice. A dismissed picker returns domain.ErrNoSelection.
func PickCandidate(
	ctx context.Context,
	candidates []domain.ConnectorDescriptor,
) (*domain.ConnectorDescriptor, error) {
	picker := NewPicker(DefaultStyles(), candidates)

	program := tea.NewProgram(picker, tea.WithAltScreen(), tea.WithContext(ctx))
	model, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("running picker: %w", err)
	}

	final, ok := model.(*Picker)
	if !ok || final.Choice() == nil {
		return nil, domain.ErrNoSelection
	}
	return final.Choice(), nil
}
