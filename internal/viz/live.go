package viz

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/discwalk/internal/controls"
	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/render"
	"github.com/san-kum/discwalk/internal/walk"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
	stepFactor      = 1.1
)

type TickMsg time.Time

// History keeps the most recent channel values for the side panel plot.
type History struct {
	R, G, B []float64
}

func (h *History) OnTick(_ int, s walk.Snapshot) {
	h.R = pushCapped(h.R, float64(s.Color.R))
	h.G = pushCapped(h.G, float64(s.Color.G))
	h.B = pushCapped(h.B, float64(s.Color.B))
}

func pushCapped(vals []float64, v float64) []float64 {
	vals = append(vals, v)
	if len(vals) > historyCapacity {
		vals = vals[len(vals)-historyCapacity:]
	}
	return vals
}

type Options struct {
	FPS   int
	Theme string
	// Extra receives every draw alongside the terminal canvas.
	Extra     driver.Renderer
	Observers []driver.Observer
	Logger    *slog.Logger
}

// Model hosts a scheduled animation inside a Bubble Tea program.
type Model struct {
	anim     *driver.Animation
	live     *controls.Live
	base     driver.Params
	canvas   *render.Braille
	history  *History
	fps      int
	theme    int
	showHelp bool
	done     bool
	err      error
}

// NewModel builds the animation behind the UI. Key bindings adjust the
// parameters only when ctrl is a *controls.Live.
func NewModel(disc *walk.Disc, ctrl driver.Controls, limit int, o Options) Model {
	live, _ := ctrl.(*controls.Live)
	var base driver.Params
	if live != nil {
		base, _ = live.Params()
	}
	canvas := render.NewBraille(disc.Region(), width, height)
	history := &History{}

	var r driver.Renderer = canvas
	if o.Extra != nil {
		r = render.Multi(canvas, o.Extra)
	}
	opts := []driver.Option{driver.WithObserver(history)}
	for _, obs := range o.Observers {
		opts = append(opts, driver.WithObserver(obs))
	}
	if o.Logger != nil {
		opts = append(opts, driver.WithLogger(o.Logger))
	}
	if o.FPS <= 0 {
		o.FPS = 60
	}

	return Model{
		anim:    driver.NewAnimation(disc, r, ctrl, limit, opts...),
		live:    live,
		base:    base,
		canvas:  canvas,
		history: history,
		fps:     o.FPS,
		theme:   themeIndex(o.Theme),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.anim.Stop()
			return m, tea.Quit
		case "up", "k":
			m.nudge(stepFactor, 0)
		case "down", "j":
			m.nudge(1/stepFactor, 0)
		case "+", "=":
			m.nudge(1, 1)
		case "-", "_":
			m.nudge(1, -1)
		case "r":
			m.reset()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.done {
			return m, nil
		}
		more, err := m.anim.Tick()
		if err != nil {
			m.err = err
			m.done = true
			return m, nil
		}
		if !more {
			m.done = true
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) nudge(stepFactor float64, deltaShift int) {
	if m.live != nil {
		m.live.Nudge(stepFactor, deltaShift)
	}
}

// reset restores the parameters the model started with.
func (m Model) reset() {
	if m.live != nil {
		m.live.SetStep(m.base.Step)
		m.live.SetDelta(m.base.Delta)
	}
}

func (m Model) Animation() *driver.Animation { return m.anim }
func (m Model) Done() bool                   { return m.done }
func (m Model) Err() error                   { return m.err }
func (m Model) Theme() Theme                 { return Themes[m.theme] }

func (m Model) View() string {
	st := newStyles(Themes[m.theme])
	snap := m.anim.Disc().Snapshot()

	var s strings.Builder
	s.WriteString(GradientText("DISCWALK", Themes[m.theme].Primary, Themes[m.theme].Secondary) + "\n")

	status := st.running.Render("RUNNING")
	switch {
	case m.err != nil:
		status = st.err.Render("ERROR")
	case m.done:
		status = st.done.Render("DONE")
	}
	s.WriteString(status + "\n\n")

	progress := 0.0
	if m.anim.Limit() > 0 {
		progress = float64(m.anim.Ticks()) / float64(m.anim.Limit()+1)
	}
	s.WriteString(ProgressBar(progress, 24) + fmt.Sprintf(" %d/%d", m.anim.Ticks(), m.anim.Limit()+1) + "\n\n")

	s.WriteString(st.label.Render("Position") + st.value.Render(fmt.Sprintf("(%.2f, %.2f)", snap.X, snap.Y)) + "\n")
	s.WriteString(st.label.Render("Color") + Swatch(snap.Color, 6) + " " + st.value.Render(snap.Color.String()) + "\n")
	if m.live != nil {
		if params, err := m.live.Params(); err == nil {
			s.WriteString(st.label.Render("Step") + st.value.Render(fmt.Sprintf("%.3f", params.Step)) + "\n")
			s.WriteString(st.label.Render("Delta") + st.value.Render(fmt.Sprintf("%d", params.Delta)) + "\n")
		}
	}

	if len(m.history.R) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.history.R, m.history.G, m.history.B},
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(255),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Green, asciigraph.Blue),
			asciigraph.Caption("RGB"),
		)
		s.WriteString("\n" + st.graph.Render(chart) + "\n")
	}
	if m.err != nil {
		s.WriteString("\n" + st.err.Render(m.err.Error()) + "\n")
	}
	s.WriteString(st.help.Render("\n─────────────────────\nQ:Quit T:Theme ?:Help\n↑↓:Step +-:Delta R:Reset"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, st.canvas.Render(m.canvas.String()), st.stats.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Q        - Quit                     ║
║  Up/K     - Increase step (x1.1)     ║
║  Down/J   - Decrease step (/1.1)     ║
║  +        - Increase color delta     ║
║  -        - Decrease color delta     ║
║  R        - Reset step and delta     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the program on the terminal and blocks until it exits.
func Run(m Model) (Model, error) {
	final, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		return m, err
	}
	if fm, ok := final.(Model); ok {
		m = fm
	}
	return m, m.err
}
