package selector

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"verso/internal/semver"
)

func versions(names ...string) []semver.Version {
	out := make([]semver.Version, 0, len(names))
	for _, name := range names {
		v, err := semver.Parse(name)
		if err != nil {
			panic(err)
		}
		out = append(out, v)
	}
	return out
}

func key(t tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: t}
}

func runes(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func step(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model
}

func TestInitialSelectionIsActive(t *testing.T) {
	vs := versions("1.0.0", "2.0.0", "3.0.0")
	m := NewModel(vs, vs[1], true)
	if got := m.Selection(); got != vs[1] {
		t.Fatalf("initial selection = %v, want active %v", got, vs[1])
	}
}

func TestInitialSelectionNoActive(t *testing.T) {
	vs := versions("1.0.0", "2.0.0")
	m := NewModel(vs, semver.Version{}, false)
	if got := m.Selection(); got != vs[0] {
		t.Fatalf("initial selection = %v, want first entry %v", got, vs[0])
	}
}

func TestNavigationClampsAtEdges(t *testing.T) {
	vs := versions("1.0.0", "2.0.0", "3.0.0")
	m := NewModel(vs, semver.Version{}, false)

	// Already at the top: up stays put.
	m = step(t, m, key(tea.KeyUp))
	if got := m.Selection(); got != vs[0] {
		t.Fatalf("selection after up at top = %v, want %v", got, vs[0])
	}

	m = step(t, m, key(tea.KeyDown))
	m = step(t, m, key(tea.KeyDown))
	if got := m.Selection(); got != vs[2] {
		t.Fatalf("selection after two downs = %v, want %v", got, vs[2])
	}

	// At the bottom: down stays put.
	m = step(t, m, key(tea.KeyDown))
	if got := m.Selection(); got != vs[2] {
		t.Fatalf("selection after down at bottom = %v, want %v", got, vs[2])
	}

	m = step(t, m, key(tea.KeyUp))
	if got := m.Selection(); got != vs[1] {
		t.Fatalf("selection after up = %v, want %v", got, vs[1])
	}
}

func TestSingleVersionNavigationNoOp(t *testing.T) {
	vs := versions("1.0.0")
	m := NewModel(vs, vs[0], true)

	m = step(t, m, key(tea.KeyUp))
	m = step(t, m, key(tea.KeyDown))
	if got := m.Selection(); got != vs[0] {
		t.Fatalf("selection moved with a single version: %v", got)
	}
}

func TestAnyOtherKeyConfirms(t *testing.T) {
	vs := versions("1.0.0", "2.0.0")
	for _, msg := range []tea.KeyMsg{key(tea.KeyEnter), key(tea.KeySpace), runes('x')} {
		m := NewModel(vs, semver.Version{}, false)
		next, cmd := m.Update(msg)
		model := next.(Model)
		if !model.confirmed {
			t.Fatalf("key %v did not confirm", msg)
		}
		if cmd == nil {
			t.Fatalf("key %v did not quit the loop", msg)
		}
	}
}

func TestInterruptCancels(t *testing.T) {
	vs := versions("1.0.0", "2.0.0")
	m := NewModel(vs, semver.Version{}, false)
	next, cmd := m.Update(key(tea.KeyCtrlC))
	model := next.(Model)
	if !model.Canceled() {
		t.Fatal("ctrl+c did not cancel")
	}
	if cmd == nil {
		t.Fatal("ctrl+c did not quit the loop")
	}
}

func TestViewMarksSelectionAndActive(t *testing.T) {
	vs := versions("1.0.0", "2.0.0")
	m := NewModel(vs, vs[0], true)
	view := m.View()
	if view == "" {
		t.Fatal("View rendered nothing")
	}
}
