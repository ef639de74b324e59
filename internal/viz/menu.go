package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/zoo"
)

var patternInfo = map[string]string{
	"glider": "diagonal spaceship", "rpentomino": "methuselah", "lwss": "orthogonal spaceship",
	"blinker": "period 2 oscillator", "block": "still life",
}

var (
	menuTitle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub      = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuItem     = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuItemDesc = lipgloss.NewStyle().Foreground(lipgloss.Color("#444455"))
	menuKey      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuError    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

const (
	stateMenu = iota
	stateLive
)

type menuEntry struct {
	name, desc string
	cfg        *config.Config
}

// Menu lists presets and patterns and opens the selected one in a live
// Model. Esc in the live view returns to the list.
type Menu struct {
	state   int
	cursor  int
	entries []menuEntry
	live    Model
	err     error
}

func NewMenu() Menu {
	entries := make([]menuEntry, 0)
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		topology := "bounded"
		if cfg.Toroidal {
			topology = "torus"
		}
		entries = append(entries, menuEntry{
			name: name,
			desc: fmt.Sprintf("preset %dx%d %s", cfg.Width, cfg.Height, topology),
			cfg:  cfg,
		})
	}
	for _, name := range zoo.Names() {
		cfg := config.DefaultConfig()
		cfg.Pattern = name
		entries = append(entries, menuEntry{name: name, desc: patternInfo[name], cfg: cfg})
	}
	return Menu{state: stateMenu, entries: entries}
}

func (m Menu) Init() tea.Cmd { return nil }

func (m Menu) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
			m.state = stateMenu
			return m, nil
		}
		next, cmd := m.live.Update(msg)
		m.live = next.(Model)
		return m, cmd
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.start()
	}
	return m, nil
}

func (m Menu) start() (tea.Model, tea.Cmd) {
	e := m.entries[m.cursor]
	g, err := e.cfg.BuildGrid()
	if err != nil {
		m.err = fmt.Errorf("%s: %w", e.name, err)
		return m, nil
	}
	m.err = nil
	m.live = NewModel(g, Options{
		Name:     e.name,
		Toroidal: e.cfg.Toroidal,
		FPS:      e.cfg.View.FPS,
		Theme:    e.cfg.View.Theme,
	})
	m.state = stateLive
	return m, m.live.Init()
}

func (m Menu) View() string {
	if m.state == stateLive {
		return m.live.View()
	}

	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("LIFESIM") + "\n    " + menuSub.Render("conway's game of life") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, e := range m.entries {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuSelected.Render(fmt.Sprintf("%-16s", e.name)), menuDesc.Render(e.desc)))
		} else {
			b.WriteString(fmt.Sprintf("    %s  %s\n", menuItem.Render(fmt.Sprintf("  %-16s", e.name)), menuItemDesc.Render(e.desc)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuError.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + menuKey.Render("j/k") + menuItem.Render(" navigate  ") + menuKey.Render("enter") + menuItem.Render(" select  ") + menuKey.Render("q") + menuItem.Render(" quit") + "\n")
	return b.String()
}

func RunMenu() error {
	_, err := tea.NewProgram(NewMenu(), tea.WithAltScreen()).Run()
	return err
}
