package viz

import (
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 300

	// smallest canvas drawn on tiny terminals
	minCols, minRows = 16, 5
)

type TickMsg time.Time

// Model is the live terminal view: the world drawn on a braille canvas and
// a side panel with metrics and tunable parameters. Mouse events drive the
// pointer, bubbletea's single update loop interleaves them with frames.
type Model struct {
	world         *sim.World
	canvas        *Canvas
	theme         Theme
	styles        hudStyles
	fps           int
	width, height int

	energy        *metrics.Energy
	collisions    *metrics.Collisions
	energyHistory []float64
	hitHistory    []float64

	params        map[string]float64
	initialParams map[string]float64
	paramKeys     []string
	selected      int

	status   string
	showHelp bool
}

// NewModel wraps a world for live display at fps frames per second.
func NewModel(w *sim.World, fps int, theme string) Model {
	if fps <= 0 {
		fps = 60
	}
	params := w.Tuning().GetParams()
	keys := make([]string, 0, len(params))
	initialParams := make(map[string]float64, len(params))
	for k, v := range params {
		keys = append(keys, k)
		initialParams[k] = v
	}
	sort.Strings(keys)

	th := GetTheme(theme)
	m := Model{
		world:         w,
		theme:         th,
		styles:        stylesFor(th),
		fps:           fps,
		energy:        metrics.NewEnergy(),
		collisions:    metrics.NewCollisions(),
		energyHistory: make([]float64, 0, historyCapacity),
		hitHistory:    make([]float64, 0, historyCapacity),
		params:        params,
		initialParams: initialParams,
		paramKeys:     keys,
	}
	m.resize(width, height)
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step(time.Time(msg))
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case " ":
		if b, err := m.world.Spawn(); err != nil {
			m.status = err.Error()
		} else {
			m.status = fmt.Sprintf("spawned #%d r=%.0f", b.ID, b.Radius)
		}
	case "p":
		if m.world.Paused() {
			m.world.Resume(time.Now())
		} else {
			m.world.Pause()
		}
	case "x":
		if id, ok := m.world.RemoveAtPointer(); ok {
			m.status = fmt.Sprintf("removed #%d", id)
		}
	case "r":
		m.reset()
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.styles = stylesFor(m.theme)
	case "m":
		if m.world.Pairs() == sim.PairsOrdered {
			m.world.SetPairs(sim.PairsUnique)
		} else {
			m.world.SetPairs(sim.PairsOrdered)
		}
	case "tab":
		m.cycleParam()
	case "up", "k":
		m.adjustParam(1.05)
	case "down", "j":
		m.adjustParam(0.95)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	m.world.PointerMove(m.cellToWorld(msg.X, msg.Y))

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.world.PrimaryDown()
		case tea.MouseButtonRight:
			m.world.SecondaryDown()
		}
	case tea.MouseActionRelease:
		p := m.world.Input().Pointer
		switch msg.Button {
		case tea.MouseButtonLeft:
			m.world.PrimaryUp()
		case tea.MouseButtonRight:
			m.world.SecondaryUp()
		default:
			// some terminals do not say which button was released
			if p.PrimaryDown {
				m.world.PrimaryUp()
			}
			if p.SecondaryDown {
				m.world.SecondaryUp()
			}
		}
	}
}

// cellToWorld maps the center of a terminal cell to world coordinates.
func (m *Model) cellToWorld(x, y int) dynamo.Vec2 {
	b := m.world.Bounds()
	return dynamo.V(
		(float64(x)+0.5)/float64(m.canvas.Width)*b.W,
		(float64(y)+0.5)/float64(m.canvas.Height)*b.H,
	)
}

// resize fits the largest canvas with the world's aspect ratio next to the
// side panel.
func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	b := m.world.Bounds()
	aspect := (b.W / b.H) * 2 // cols per row: a cell is 2x4 dots

	cols := max(w-statsWidth, minCols)
	rows := max(h-1, minRows)
	if float64(cols) > float64(rows)*aspect {
		cols = max(int(float64(rows)*aspect), minCols)
	} else {
		rows = max(int(float64(cols)/aspect), minRows)
	}

	m.canvas = NewCanvas(cols, rows)
	m.canvas.Fit(b)
	DrawScene(m.canvas, m.world, m.theme)
}

// step advances the world to now and records metrics.
func (m *Model) step(now time.Time) {
	if !m.world.Paused() {
		m.world.Frame(now)
		if err := m.world.Validate(); err != nil {
			log.Printf("frame %d: %v", m.world.FrameCount(), err)
			m.status = err.Error()
		}
		m.energy.Observe(m.world, m.world.LastDt())
		m.collisions.Observe(m.world, m.world.LastDt())
		m.energyHistory = appendCapped(m.energyHistory, m.energy.Value())
		m.hitHistory = appendCapped(m.hitHistory, float64(m.world.Collisions()))
	}
	DrawScene(m.canvas, m.world, m.theme)
}

func appendCapped(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

func (m *Model) cycleParam() {
	if len(m.paramKeys) == 0 {
		return
	}
	m.selected = (m.selected + 1) % len(m.paramKeys)
}

func (m *Model) adjustParam(factor float64) {
	if len(m.paramKeys) == 0 {
		return
	}
	key := m.paramKeys[m.selected]
	newVal := m.params[key] * factor
	if err := m.world.Tuning().SetParam(key, newVal); err != nil {
		m.status = err.Error()
		return
	}
	m.params[key] = newVal
}

// reset removes every body and restores the initial parameters.
func (m *Model) reset() {
	m.world.Reset()
	m.energy.Reset()
	m.collisions.Reset()
	m.energyHistory = m.energyHistory[:0]
	m.hitHistory = m.hitHistory[:0]
	for k, v := range m.initialParams {
		m.params[k] = v
		m.world.Tuning().SetParam(k, v)
	}
	m.status = "reset"
}

// View renders the canvas and the side panel.
func (m Model) View() string {
	st := m.styles
	var s strings.Builder
	s.WriteString(st.header.Render("BOUNCE") + "\n")

	status := "RUNNING"
	if m.world.Paused() {
		status = "PAUSED"
	}
	s.WriteString(st.active.Render(status) + "  " + st.label.Render(string(m.world.Pairs())) + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(statsWidth-12), asciigraph.Caption("kinetic energy"))
		s.WriteString(st.graph.Render(chart) + "\n")
		s.WriteString(st.graph.Render(SparklineChart(m.hitHistory, statsWidth-4)) + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Bodies", fmt.Sprintf("%d", len(m.world.Bodies())))
	row("Frame", fmt.Sprintf("%.1f ms", m.world.LastDt()))
	row("Energy", fmt.Sprintf("%.2f", m.energy.Value()))
	row("Hits", fmt.Sprintf("%.0f", m.collisions.Value()))
	p := m.world.Input().Pointer.Pos
	row("Pointer", fmt.Sprintf("%.0f,%.0f", p.X, p.Y))
	if id, ok := m.world.Input().Dragging(); ok {
		row("Dragging", fmt.Sprintf("#%d", id))
	}
	if id, ok := m.world.Input().Pulling(); ok {
		row("Pulling", fmt.Sprintf("#%d", id))
	}

	s.WriteString("\nPARAMETERS\n")
	for i, k := range m.paramKeys {
		line := fmt.Sprintf("%-11s %s %.4g", k, ratioBar(m.params[k], m.initialParams[k], 8), m.params[k])
		if i == m.selected {
			s.WriteString(st.active.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + st.value.Render(line) + "\n")
		}
	}

	if m.status != "" {
		s.WriteString("\n" + st.warn.Render(m.status) + "\n")
	}
	s.WriteString(st.help.Render("SP:Spawn P:Pause R:Reset Q:Quit\nT:Theme M:Pairs ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, m.canvas.String(), st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║           KEYBOARD & MOUSE           ║
╠══════════════════════════════════════╣
║  Space     - Spawn body at pointer   ║
║  Left drag - Move a body             ║
║  Right     - Pull, release to launch ║
║  P         - Pause/Resume            ║
║  X         - Remove body at pointer  ║
║  R         - Remove all bodies       ║
║  M         - Toggle pair mode        ║
║  Tab       - Cycle parameters        ║
║  Up/K      - Increase parameter (+5%)║
║  Down/J    - Decrease parameter (-5%)║
║  T         - Cycle themes            ║
║  Q         - Quit                    ║
╚══════════════════════════════════════╝`

// Run starts the live view on the terminal's alternate screen with mouse
// reporting and blocks until the user quits.
func Run(w *sim.World, fps int, theme string) error {
	_, err := tea.NewProgram(NewModel(w, fps, theme), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
