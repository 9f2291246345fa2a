package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/sim"
)

var presetInfo = map[string]string{
	"classic": "default tuning",
	"floaty":  "weak gravity, slow fall",
	"pinball": "lively walls, strong slingshot",
	"heavy":   "big bodies, dead bounces",
	"steady":  "frame-rate independent",
}

const (
	stateMenu = iota
	stateSim
)

// Resolver turns a preset name into the configuration to run, applying
// whatever config file and flag overrides the caller holds.
type Resolver func(preset string) (*config.Config, error)

// menu picks a preset and then hands the screen to the live model.
type menu struct {
	state, cursor int
	presets       []string
	resolve       Resolver
	status        string
	width, height int
	liveModel     Model
}

func NewInteractiveApp(resolve Resolver) *menu {
	if resolve == nil {
		resolve = config.MustPreset
	}
	return &menu{
		state:   stateMenu,
		presets: config.ListPresets(),
		resolve: resolve,
		width:   width,
		height:  height,
	}
}

func (m menu) Init() tea.Cmd { return nil }

func (m menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateSim {
		newLive, cmd := m.liveModel.Update(msg)
		m.liveModel = newLive.(Model)
		return m, cmd
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.menuKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	}
	return m, nil
}

func (m menu) menuKey(msg tea.KeyMsg) (menu, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		cmd := m.start(m.presets[m.cursor])
		return m, cmd
	}
	return m, nil
}

func (m *menu) start(name string) tea.Cmd {
	cfg, err := m.resolve(name)
	if err != nil {
		m.status = err.Error()
		return nil
	}
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	w := sim.New(cfg.SimConfig(), rand.New(rand.NewSource(seed)))
	m.liveModel = NewModel(w, cfg.FPS, cfg.Theme)
	m.liveModel.resize(m.width, m.height)
	m.state = stateSim
	return m.liveModel.Init()
}

func (m menu) View() string {
	if m.state == stateSim {
		return m.liveModel.View()
	}
	return m.viewMenu()
}

func (m menu) viewMenu() string {
	var b strings.Builder
	h, sub := lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	key, hint := lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true), lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	b.WriteString("\n\n    " + h.Render("BOUNCE") + "\n    " + sub.Render("circles, walls and a slingshot") + "\n    " + sub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		desc := presetInfo[name]
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true).Render("▸"), lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true).Render(fmt.Sprintf("%-10s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff")).Render(desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("#555566")).Render(fmt.Sprintf("  %-10s", name)), lipgloss.NewStyle().Foreground(lipgloss.Color("#444455")).Render(desc)))
		}
	}
	if m.status != "" {
		b.WriteString("\n    " + lipgloss.NewStyle().Foreground(lipgloss.Color("#ff5555")).Render(m.status) + "\n")
	}
	b.WriteString("\n    " + key.Render("j/k") + hint.Render(" navigate  ") + key.Render("enter") + hint.Render(" start  ") + key.Render("q") + hint.Render(" quit") + "\n")
	return b.String()
}

// RunInteractive shows the preset menu and runs the chosen preset with the
// configuration resolve returns for it. A zero seed picks one from the clock.
func RunInteractive(resolve Resolver) error {
	_, err := tea.NewProgram(NewInteractiveApp(resolve), tea.WithAltScreen(), tea.WithMouseAllMotion()).Run()
	return err
}
