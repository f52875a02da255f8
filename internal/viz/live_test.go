package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/discwalk/internal/controls"
	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/rng"
	"github.com/san-kum/discwalk/internal/walk"
)

func newTestModel(t *testing.T, limit int) (Model, *controls.Live) {
	t.Helper()
	disc, err := walk.NewDisc(walk.DefaultRegion, walk.DefaultRadius, rng.New(1))
	if err != nil {
		t.Fatalf("new disc: %v", err)
	}
	live := controls.NewSlider(driver.Params{Step: walk.DefaultStep, Delta: 20})
	return NewModel(disc, live, limit, Options{FPS: 60}), live
}

func step(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTickSchedulesNextFrame(t *testing.T) {
	m, _ := newTestModel(t, 5)

	m, cmd := step(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Fatal("expected another tick to be scheduled")
	}
	if m.Animation().Ticks() != 1 {
		t.Errorf("expected 1 tick, got %d", m.Animation().Ticks())
	}
	if got := len(m.history.R); got != 1 {
		t.Errorf("expected 1 history sample, got %d", got)
	}
}

func TestTickStopsAfterLimit(t *testing.T) {
	m, _ := newTestModel(t, 3)

	var cmd tea.Cmd
	for i := 0; i < 10 && !m.Done(); i++ {
		m, cmd = step(t, m, TickMsg(time.Now()))
	}
	if !m.Done() {
		t.Fatal("animation should be done")
	}
	if cmd != nil {
		t.Error("no tick should be scheduled once done")
	}
	if renders := m.Animation().Stats().Renders; renders != 4 {
		t.Errorf("expected 4 renders, got %d", renders)
	}
	if m.Err() != nil {
		t.Errorf("unexpected error: %v", m.Err())
	}
}

func TestKeysAdjustLiveControls(t *testing.T) {
	m, live := newTestModel(t, 5)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	p, _ := live.Params()
	if diff := p.Step - walk.DefaultStep*stepFactor; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected step scaled up, got %v", p.Step)
	}

	m, _ = step(t, m, key("+"))
	m, _ = step(t, m, key("+"))
	m, _ = step(t, m, key("-"))
	p, _ = live.Params()
	if p.Delta != 21 {
		t.Errorf("expected delta 21, got %d", p.Delta)
	}

	_, _ = step(t, m, tea.KeyMsg{Type: tea.KeyDown})
	p, _ = live.Params()
	if diff := p.Step - walk.DefaultStep; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected step restored, got %v", p.Step)
	}
}

func TestResetRestoresStartingControls(t *testing.T) {
	m, live := newTestModel(t, 5)

	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = step(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = step(t, m, key("+"))
	_, _ = step(t, m, key("r"))

	p, _ := live.Params()
	if p.Step != walk.DefaultStep || p.Delta != 20 {
		t.Errorf("expected starting controls, got %+v", p)
	}
}

func TestThemeAndHelpToggle(t *testing.T) {
	m, _ := newTestModel(t, 5)
	first := m.Theme().Name

	m, _ = step(t, m, key("t"))
	if m.Theme().Name == first {
		t.Error("theme did not change")
	}

	m, _ = step(t, m, key("?"))
	if !strings.Contains(m.View(), "KEYBOARD SHORTCUTS") {
		t.Error("help overlay missing")
	}
}

func TestQuitStopsAnimation(t *testing.T) {
	m, _ := newTestModel(t, 5)

	m, cmd := step(t, m, key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if !m.Animation().Stopped() {
		t.Error("animation should be stopped")
	}
}

func TestViewShowsPosition(t *testing.T) {
	m, _ := newTestModel(t, 5)
	m, _ = step(t, m, TickMsg(time.Now()))
	m, _ = step(t, m, TickMsg(time.Now()))

	view := m.View()
	if !strings.Contains(view, "Position") {
		t.Error("view missing position label")
	}
}

func TestHistoryCapacity(t *testing.T) {
	h := &History{}
	for i := 0; i < historyCapacity+10; i++ {
		h.OnTick(i, walk.Snapshot{Color: walk.RGB{R: walk.Channel(i % 256)}})
	}
	if len(h.R) != historyCapacity {
		t.Errorf("expected %d samples, got %d", historyCapacity, len(h.R))
	}
	if h.R[0] != 10 {
		t.Errorf("expected oldest samples dropped, got first %v", h.R[0])
	}
}

func TestGetTheme(t *testing.T) {
	if GetTheme("ocean").Name != "ocean" {
		t.Error("expected ocean theme")
	}
	if GetTheme("missing").Name != Themes[0].Name {
		t.Error("expected fallback to first theme")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
