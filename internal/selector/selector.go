// Package selector renders the installed-version picker. It is a single
// cooperative loop: one blocking key read per iteration, a selection index
// over an immutable ordered list, and a single terminal state reached by
// the first non-navigation key.
package selector

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"verso/internal/semver"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	activeStyle   = lipgloss.NewStyle().Faint(true)
)

// Model is the bubbletea model for the version picker.
type Model struct {
	versions  []semver.Version
	index     int
	active    semver.Version
	hasActive bool

	confirmed bool
	canceled  bool
}

// NewModel builds a picker over versions, pre-selecting the active version
// when one is marked. The versions slice must be sorted ascending and
// non-empty.
func NewModel(versions []semver.Version, active semver.Version, hasActive bool) Model {
	index := 0
	if hasActive {
		for i, v := range versions {
			if v == active {
				index = i
				break
			}
		}
	}
	return Model{versions: versions, index: index, active: active, hasActive: hasActive}
}

// Init satisfies the tea.Model interface.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update moves the selection on up/down and treats any other key as
// confirm. The index is clamped so it never leaves [0, len-1]; with a
// single installed version up and down are always no-ops.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.Type {
	case tea.KeyUp:
		if m.index > 0 {
			m.index--
		}
		return m, nil
	case tea.KeyDown:
		if m.index < len(m.versions)-1 {
			m.index++
		}
		return m, nil
	case tea.KeyCtrlC:
		m.canceled = true
		return m, tea.Quit
	default:
		m.confirmed = true
		return m, tea.Quit
	}
}

// View renders the ordered list with the current selection marked.
func (m Model) View() string {
	if m.confirmed || m.canceled {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("installed versions"))
	b.WriteString("\n")
	for i, v := range m.versions {
		line := fmt.Sprintf("  %s", v)
		if i == m.index {
			line = selectedStyle.Render(fmt.Sprintf("> %s", v))
		}
		if m.hasActive && v == m.active {
			line += activeStyle.Render("  (active)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString(activeStyle.Render("up/down to move, any other key to select"))
	b.WriteString("\n")
	return b.String()
}

// Selection returns the currently highlighted version.
func (m Model) Selection() semver.Version {
	return m.versions[m.index]
}

// Canceled reports whether the picker was interrupted instead of confirmed.
func (m Model) Canceled() bool {
	return m.canceled
}

// Run blocks on the picker until a version is confirmed. ok is false when
// the user interrupted instead of selecting.
func Run(versions []semver.Version, active semver.Version, hasActive bool) (semver.Version, bool, error) {
	program := tea.NewProgram(NewModel(versions, active, hasActive))
	final, err := program.Run()
	if err != nil {
		return semver.Version{}, false, fmt.Errorf("run version picker: %w", err)
	}

	model, ok := final.(Model)
	if !ok || model.Canceled() {
		return semver.Version{}, false, nil
	}
	return model.Selection(), true, nil
}
