package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/world"
)

const (
	historyCapacity = 600
	sparkWidth      = 30
	minFPS          = 1
	maxFPS          = 60
	gifCellPx       = 4
	DefaultGIFPath  = "lifesim.gif"
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(45)
	headerStyle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(2)
)

type TickMsg time.Time

type Options struct {
	Name     string
	Toroidal bool
	FPS      int
	Theme    string
	GIFPath  string
}

// Model drives a World one generation per tick.
type Model struct {
	name      string
	world     *world.World
	initial   *grid.Grid
	toroidal  bool
	running   bool
	fps       int
	theme     Theme
	canvas    *Canvas
	history   []float64
	showHelp  bool
	recording bool
	frames    []*image.Paletted
	gifPath   string
	err       error
}

func NewModel(initial *grid.Grid, opts Options) Model {
	fps := opts.FPS
	if fps <= 0 {
		fps = 10
	}
	gifPath := opts.GIFPath
	if gifPath == "" {
		gifPath = DefaultGIFPath
	}
	m := Model{
		name:     opts.Name,
		world:    world.FromGrid(initial),
		initial:  initial.Clone(),
		toroidal: opts.Toroidal,
		running:  true,
		fps:      max(minFPS, min(fps, maxFPS)),
		theme:    GetTheme(opts.Theme),
		canvas:   CanvasFor(initial),
		history:  make([]float64, 0, historyCapacity),
		gifPath:  gifPath,
	}
	m.history = append(m.history, float64(m.world.AliveCells()))
	return m
}

func (m Model) Init() tea.Cmd { return m.tick() }

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input events and steps the world.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			if m.recording {
				m.err = m.saveGIF()
			}
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			if !m.running {
				m.step()
			}
		case "r":
			m.reset()
		case "t":
			m.toroidal = !m.toroidal
		case "c":
			m.theme = NextTheme(m.theme)
		case "+", "=":
			m.fps = min(m.fps*2, maxFPS)
		case "-", "_":
			m.fps = max(m.fps/2, minFPS)
		case "g":
			if m.recording {
				m.err = m.saveGIF()
				m.recording = false
				m.frames = nil
			} else {
				m.recording = true
				m.frames = make([]*image.Paletted, 0)
				m.captureFrame()
			}
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.Step(m.toroidal)
	m.history = append(m.history, float64(m.world.AliveCells()))
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
	if m.recording {
		m.captureFrame()
	}
}

// reset restores the initial grid and clears the population history.
func (m *Model) reset() {
	m.world = world.FromGrid(m.initial)
	m.history = append(m.history[:0], float64(m.world.AliveCells()))
}

// View renders the TUI interface.
func (m Model) View() string {
	state := m.world.State()
	m.canvas.DrawGrid(state)
	canvasView := canvasStyle.Foreground(m.theme.Primary).Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(m.theme.Secondary).Render(strings.ToUpper(m.name)) + "\n")

	status := StatusRunning.Render("RUNNING")
	if !m.running {
		status = StatusPaused.Render("PAUSED")
	}
	if m.recording {
		status += " " + StatusRecording.Render(fmt.Sprintf("REC %d", len(m.frames)))
	}
	s.WriteString(status + "\n\n")

	if len(m.history) > 1 {
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Population"))
		s.WriteString(graphStyle.Foreground(m.theme.Accent).Render(chart) + "\n")
		s.WriteString(labelStyle.Render("Change") + SparklineChart(populationDeltas(m.history), sparkWidth) + "\n\n")
	}

	topology := "bounded"
	if m.toroidal {
		topology = "toroidal"
	}
	density := state.Density()
	s.WriteString(labelStyle.Render("Generation") + valueStyle.Render(fmt.Sprintf("%d", m.world.Generation())) + "\n")
	s.WriteString(labelStyle.Render("Population") + valueStyle.Render(fmt.Sprintf("%d / %d", state.AliveCells(), state.TotalCells())) + "\n")
	s.WriteString(labelStyle.Render("Density") + ProgressBar(density, 10) + valueStyle.Render(fmt.Sprintf(" %.1f%%", density*100)) + "\n")
	s.WriteString(labelStyle.Render("Topology") + valueStyle.Render(topology) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%d gen/s", m.fps)) + "\n")
	s.WriteString(labelStyle.Render("Theme") + valueStyle.Render(m.theme.Name) + "\n")
	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()) + "\n")
	}
	s.WriteString(helpStyle.Render("\n" + Separator(21) + "\nSP:Pause N:Step R:Reset\nT:Topology C:Theme Q:Quit\n+/-:Speed G:Record ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  N        - Step once while paused   ║
║  R        - Reset to generation 0    ║
║  T        - Toggle toroidal wrap     ║
║  C        - Cycle themes             ║
║  + / -    - Double / halve speed     ║
║  G        - Toggle GIF recording     ║
║  Q        - Quit                     ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// populationDeltas returns the population change between consecutive
// history samples.
func populationDeltas(history []float64) []float64 {
	if len(history) < 2 {
		return nil
	}
	out := make([]float64, len(history)-1)
	for i := 1; i < len(history); i++ {
		out[i-1] = history[i] - history[i-1]
	}
	return out
}

// captureFrame paints the current generation, gifCellPx pixels per cell.
func (m *Model) captureFrame() {
	state := m.world.State()
	if state.TotalCells() == 0 {
		return
	}
	img := image.NewPaletted(
		image.Rect(0, 0, state.Width()*gifCellPx, state.Height()*gifCellPx),
		color.Palette{color.Black, color.White},
	)
	for y := 0; y < state.Height(); y++ {
		for x := 0; x < state.Width(); x++ {
			if !state.IsAlive(x, y) {
				continue
			}
			for py := 0; py < gifCellPx; py++ {
				for px := 0; px < gifCellPx; px++ {
					img.SetColorIndex(x*gifCellPx+px, y*gifCellPx+py, 1)
				}
			}
		}
	}
	m.frames = append(m.frames, img)
}

func (m *Model) saveGIF() error {
	if len(m.frames) == 0 {
		return nil
	}
	anim := gif.GIF{LoopCount: 0}
	delay := max(1, 100/m.fps)
	for _, frame := range m.frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(m.gifPath)
	if err != nil {
		return fmt.Errorf("save recording: %w", err)
	}
	defer f.Close()
	if err := gif.EncodeAll(f, &anim); err != nil {
		return fmt.Errorf("save recording: %w", err)
	}
	return nil
}

// Run starts a full-screen program around m.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
