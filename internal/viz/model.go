package viz

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lifesim/internal/driver"
	"github.com/san-kum/lifesim/internal/grid"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/pattern"
)

const (
	width       = 80
	height      = 24
	panelWidth  = 34
	maxInterval = 2 * time.Second
	chartPoints = 28
)

// Heat glyphs from faint to fully alive.
var shades = []string{"  ", "░░", "▒▒", "▓▓", "██"}

type TickMsg time.Time

type paintMode int

const (
	paintOff paintMode = iota
	paintDraw
	paintErase
)

func (p paintMode) String() string {
	switch p {
	case paintDraw:
		return "draw"
	case paintErase:
		return "erase"
	}
	return "off"
}

// Options configures the host.
type Options struct {
	Theme string
	// PatternPath is the file used by the save and load keys.
	PatternPath string
	Format      pattern.Format
	Playing     bool
}

// Model hosts a driver.Loop in a Bubble Tea program. The loop is only stepped
// from Update, so the recorder and the automaton are never touched
// concurrently.
type Model struct {
	loop  *driver.Loop
	rec   *metrics.Recorder
	opts  Options
	theme Theme

	width, height  int
	curRow, curCol int
	offRow, offCol int
	paint          paintMode
	overview       bool
	showHelp       bool
	status         string
	statusErr      bool
}

// NewModel returns a host for loop. rec may be nil; when set it must
// already be registered as an observer of loop.
func NewModel(loop *driver.Loop, rec *metrics.Recorder, opts Options) Model {
	if opts.Format == pattern.FormatUnknown {
		opts.Format = pattern.FormatFromPath(opts.PatternPath)
	}
	m := Model{
		loop:   loop,
		rec:    rec,
		opts:   opts,
		theme:  GetTheme(opts.Theme),
		width:  width,
		height: height,
	}
	if opts.Playing {
		loop.Play()
	}
	m.reseed()
	return m
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.loop.Interval(), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles input events and steps the loop on every tick.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.follow()
	case tea.KeyMsg:
		return m.key(msg)
	case TickMsg:
		m.loop.Tick()
		return m, m.tick()
	}
	return m, nil
}

func (m Model) key(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status, m.statusErr = "", false
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ":
		m.loop.PlayPause()
	case "n", ".":
		m.loop.Step()
	case "r":
		m.do(func(a *life.Automaton) error {
			a.Reset()
			return nil
		})
		m.reseed()
	case "c":
		m.reinit(life.ModeEmpty)
	case "g":
		m.reinit(life.ModeRandom)
	case "h":
		m.do(func(a *life.Automaton) error {
			a.SetDisplayMode(!a.DisplayMode())
			return nil
		})
	case "+", "=":
		m.loop.SetInterval(m.loop.Interval() / 2)
	case "-", "_":
		m.loop.SetInterval(min(m.loop.Interval()*2, maxInterval))
	case "up", "k":
		m.move(-1, 0)
	case "down", "j":
		m.move(1, 0)
	case "left":
		m.move(0, -1)
	case "right":
		m.move(0, 1)
	case "x", "enter":
		m.do(func(a *life.Automaton) error {
			if _, err := a.Toggle(m.curRow, m.curCol); err != nil {
				return err
			}
			a.Commit()
			return nil
		})
		m.reseed()
	case "d":
		m.paint = togglePaint(m.paint, paintDraw)
		m.applyPaint()
	case "e":
		m.paint = togglePaint(m.paint, paintErase)
		m.applyPaint()
	case "s":
		m.save()
	case "l":
		m.load()
	case "o":
		m.overview = !m.overview
	case "t":
		m.theme = NextTheme(m.theme)
		m.setStatus("theme " + m.theme.Name)
	case "?":
		m.showHelp = !m.showHelp
	}
	return m, nil
}

func togglePaint(cur, want paintMode) paintMode {
	if cur == want {
		return paintOff
	}
	return want
}

func (m *Model) do(fn func(a *life.Automaton) error) {
	if err := m.loop.Do(fn); err != nil {
		m.setError(err)
	}
}

func (m *Model) setStatus(s string) { m.status, m.statusErr = s, false }
func (m *Model) setError(err error) { m.status, m.statusErr = err.Error(), true }

// reseed restarts the metric series from the current board. Edits commit the
// board as generation 0, so they reseed too.
func (m *Model) reseed() {
	if m.rec == nil {
		return
	}
	_ = m.loop.Do(func(a *life.Automaton) error {
		m.rec.Seed(a.State(false))
		return nil
	})
}

func (m *Model) reinit(mode life.Mode) {
	m.do(func(a *life.Automaton) error {
		return a.Initialize(a.Rows(), a.Cols(), mode)
	})
	m.reseed()
}

func (m *Model) dims() (rows, cols int) {
	_ = m.loop.Do(func(a *life.Automaton) error {
		rows, cols = a.Rows(), a.Cols()
		return nil
	})
	return rows, cols
}

// move shifts the cursor, clamped to the board, painting as it goes.
func (m *Model) move(dr, dc int) {
	rows, cols := m.dims()
	m.curRow = clamp(m.curRow+dr, 0, rows-1)
	m.curCol = clamp(m.curCol+dc, 0, cols-1)
	m.applyPaint()
	m.follow()
}

func (m *Model) applyPaint() {
	if m.paint == paintOff {
		return
	}
	alive := m.paint == paintDraw
	m.do(func(a *life.Automaton) error {
		if err := a.SetCell(m.curRow, m.curCol, alive); err != nil {
			return err
		}
		a.Commit()
		return nil
	})
	m.reseed()
}

func (m *Model) save() {
	if m.opts.PatternPath == "" {
		m.setError(errors.New("no pattern path configured"))
		return
	}
	var written string
	m.do(func(a *life.Automaton) error {
		var err error
		written, err = a.Save(m.opts.PatternPath, m.opts.Format)
		return err
	})
	if !m.statusErr {
		// Later loads read back the file actually written.
		m.opts.PatternPath = written
		m.setStatus("saved " + written)
	}
}

func (m *Model) load() {
	if m.opts.PatternPath == "" {
		m.setError(errors.New("no pattern path configured"))
		return
	}
	m.do(func(a *life.Automaton) error {
		return a.Load(m.opts.PatternPath, m.opts.Format)
	})
	if m.statusErr {
		return
	}
	m.reseed()
	rows, cols := m.dims()
	m.curRow = clamp(m.curRow, 0, rows-1)
	m.curCol = clamp(m.curCol, 0, cols-1)
	m.follow()
	m.setStatus(fmt.Sprintf("loaded %dx%d", rows, cols))
}

// viewport returns how many cells fit beside the panel.
func (m Model) viewport() (rows, cols int) {
	rows = max(m.height-2, 1)
	cols = max((m.width-panelWidth-4)/2, 1)
	return rows, cols
}

// follow scrolls the viewport so the cursor stays visible.
func (m *Model) follow() {
	vr, vc := m.viewport()
	if m.curRow < m.offRow {
		m.offRow = m.curRow
	} else if m.curRow >= m.offRow+vr {
		m.offRow = m.curRow - vr + 1
	}
	if m.curCol < m.offCol {
		m.offCol = m.curCol
	} else if m.curCol >= m.offCol+vc {
		m.offCol = m.curCol - vc + 1
	}
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

// Cursor returns the cursor position.
func (m Model) Cursor() (row, col int) { return m.curRow, m.curCol }

// Status returns the last status line.
func (m Model) Status() string { return m.status }

func (m Model) Theme() Theme { return m.theme }

// View renders the board beside the stats panel.
func (m Model) View() string {
	g, gen := m.loop.Snapshot()
	var board string
	if m.overview {
		c := CanvasFor(g)
		c.Plot(g)
		board = lipgloss.NewStyle().Foreground(m.theme.Alive).Render(c.String())
	} else {
		board = m.renderBoard(g)
	}
	view := lipgloss.JoinHorizontal(lipgloss.Top, board, m.renderPanel(g, gen))
	if m.showHelp {
		return helpText + "\n" + view
	}
	return view
}

func (m Model) renderBoard(g *grid.Grid) string {
	vr, vc := m.viewport()
	cells := g.Cells()
	cursor := lipgloss.NewStyle().Background(m.theme.Cursor)

	var b strings.Builder
	for i := m.offRow; i < min(m.offRow+vr, g.Rows()); i++ {
		// Runs of equal colour share one render call.
		var run strings.Builder
		var runColor lipgloss.Color
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
			run.Reset()
		}
		for j := m.offCol; j < min(m.offCol+vc, g.Cols()); j++ {
			v := cells[i*g.Cols()+j]
			glyph := shades[int(v)*(len(shades)-1)/255]
			if v > 0 && glyph == shades[0] {
				glyph = shades[1]
			}
			if i == m.curRow && j == m.curCol {
				flush()
				if v == 0 {
					glyph = "[]"
				}
				b.WriteString(cursor.Foreground(m.theme.HeatColor(max(v, 1))).Render(glyph))
				continue
			}
			color := m.theme.HeatColor(max(v, 1))
			if color != runColor {
				flush()
				runColor = color
			}
			run.WriteString(glyph)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) renderPanel(g *grid.Grid, gen int) string {
	var s strings.Builder
	s.WriteString(titleStyle.Foreground(m.theme.Accent).Render("GAME OF LIFE") + "\n")

	if m.loop.Going() {
		s.WriteString(statusRunning.Render("▶ RUNNING") + "\n\n")
	} else {
		s.WriteString(statusPaused.Render("⏸ PAUSED") + "\n\n")
	}

	heat := false
	_ = m.loop.Do(func(a *life.Automaton) error {
		heat = a.DisplayMode()
		return nil
	})
	display := "grid"
	if heat {
		display = "heatmap"
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Generation", fmt.Sprintf("%d", gen))
	row("Board", fmt.Sprintf("%dx%d", g.Rows(), g.Cols()))
	row("Display", display)
	row("Interval", m.loop.Interval().String())
	row("Cursor", fmt.Sprintf("%d,%d", m.curRow, m.curCol))
	row("Paint", m.paint.String())

	if m.rec != nil {
		pop := m.rec.Population()
		if len(pop) > 0 {
			row("Population", fmt.Sprintf("%.0f", pop[len(pop)-1]))
		}
		vals := m.rec.Values()
		if v, ok := vals["peak_population"]; ok {
			row("Peak", fmt.Sprintf("%.0f", v))
		}
		if v, ok := vals["turnover"]; ok {
			row("Turnover", fmt.Sprintf("%.1f", v))
		}
		if c, ok := m.rec.Metric("period").(*metrics.Cycle); ok {
			if p, at, found := c.Found(); found {
				row("Period", fmt.Sprintf("%d @%d", p, at))
			}
		}
		if len(pop) > 1 {
			tail := pop[max(len(pop)-chartPoints, 0):]
			chart := asciigraph.Plot(tail, asciigraph.Height(4), asciigraph.Width(chartPoints-8), asciigraph.Caption("population"))
			s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Accent).Render(chart) + "\n")
			s.WriteString(Sparkline(pop, panelWidth-6) + "\n")
		}
	}

	if m.status != "" {
		style := valueStyle
		if m.statusErr {
			style = errorStyle
		}
		s.WriteString("\n" + style.Render(m.status) + "\n")
	}

	s.WriteString("\n" + separator(panelWidth-6) + "\n")
	s.WriteString(hintStyle.Render("SP:Play N:Step R:Reset Q:Quit\nH:Heat +/-:Speed X:Toggle ?:Help"))
	return panelStyle.Render(s.String())
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Play/Pause               ║
║  N / .    - Single step              ║
║  R        - Reset to initial state   ║
║  C        - Clear board              ║
║  G        - Random board             ║
║  H        - Toggle heatmap           ║
║  + / -    - Faster / slower          ║
║  Arrows   - Move cursor              ║
║  X/Enter  - Toggle cell              ║
║  D / E    - Paint / erase on move    ║
║  S / L    - Save / load pattern      ║
║  O        - Toggle overview          ║
║  T        - Cycle themes             ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝
`

// Run starts the host on the terminal and blocks until the user quits.
func Run(loop *driver.Loop, rec *metrics.Recorder, opts Options) error {
	p := tea.NewProgram(NewModel(loop, rec, opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
