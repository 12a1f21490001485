package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

const (
	width           = 36
	height          = 26
	fps             = 60
	historyCapacity = 120
)

// Keyboard pointer ids. Scenario and mouse pointers use small ids, so these
// stay clear of them.
const (
	PointerBottom handle.PointerID = 101
	PointerTop    handle.PointerID = 102
)

type TickMsg time.Time

// Model contains the simulation, the keyboard pointers and the render
// buffers.
type Model struct {
	sim      *sim.Simulation
	driver   sim.Driver
	title    string
	t, dt    float64
	canvas   *Canvas
	pointers [2]*keyPointer
	speeds   [2][]float64
	hits     int
	bounces  int
	running  bool
	showHelp bool
	theme    Theme
}

// NewModel starts d (if any) against s and places one keyboard cursor on
// each handle. dt is the simulated milliseconds per frame.
func NewModel(s *sim.Simulation, d sim.Driver, dt float64, title string) Model {
	m := Model{
		sim:     s,
		driver:  d,
		title:   title,
		dt:      dt,
		canvas:  NewCanvas(width, height),
		running: true,
		theme:   ThemeRink,
	}
	m.pointers[0] = newKeyPointer(PointerBottom, s.Handle(handle.One).Position(), fps)
	m.pointers[1] = newKeyPointer(PointerTop, s.Handle(handle.Two).Position(), fps)
	for i := range m.speeds {
		m.speeds[i] = make([]float64, 0, historyCapacity)
	}
	if d != nil {
		d.Start(s)
	}
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/fps, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "p":
			m.running = !m.running
		case "r":
			m.reset()
		case "t":
			m.theme = nextTheme(m.theme)
		case "?":
			m.showHelp = !m.showHelp
		case "up":
			m.pointers[0].nudge(geom.V(0, -1), m.sim.Arena())
		case "down":
			m.pointers[0].nudge(geom.V(0, 1), m.sim.Arena())
		case "left":
			m.pointers[0].nudge(geom.V(-1, 0), m.sim.Arena())
		case "right":
			m.pointers[0].nudge(geom.V(1, 0), m.sim.Arena())
		case "enter":
			m.toggle(m.pointers[0])
		case "w":
			m.pointers[1].nudge(geom.V(0, -1), m.sim.Arena())
		case "s":
			m.pointers[1].nudge(geom.V(0, 1), m.sim.Arena())
		case "a":
			m.pointers[1].nudge(geom.V(-1, 0), m.sim.Arena())
		case "d":
			m.pointers[1].nudge(geom.V(1, 0), m.sim.Arena())
		case " ":
			m.toggle(m.pointers[1])
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

// toggle grabs the handle under the cursor, or releases the one it holds.
func (m *Model) toggle(p *keyPointer) {
	if p.down {
		m.sim.OnPointerUp(p.id)
		p.down = false
		return
	}
	id, ok := m.sim.HandleAt(p.pos)
	if !ok {
		return
	}
	m.sim.OnPointerDown(id, p.id, p.pos)
	if owner, held := m.sim.Handle(id).Pointer(); held && owner == p.id {
		p.down = true
	}
}

// step advances the cursors and the simulation by one frame.
func (m *Model) step() {
	for _, p := range m.pointers {
		pos := p.advance()
		if p.down {
			m.sim.OnPointerMove(p.id, pos)
		}
	}
	if m.driver != nil {
		m.driver.Drive(m.sim, m.t)
	}

	report := m.sim.Step(m.dt)
	m.t += m.dt

	for i, r := range report.Handles {
		if r.Wall != collision.None {
			m.bounces++
		}
		speed := m.sim.Handle(handle.ID(i)).Speed()
		m.speeds[i] = append(m.speeds[i], speed)
		if len(m.speeds[i]) > historyCapacity {
			m.speeds[i] = m.speeds[i][1:]
		}
	}
	if report.Handles[handle.One].HitOpponent || report.Handles[handle.Two].HitOpponent {
		m.hits++
	}
}

// reset returns the handles and cursors to their starting positions.
func (m *Model) reset() {
	m.sim.Reset()
	m.t = 0
	m.hits, m.bounces = 0, 0
	for i := range m.speeds {
		m.speeds[i] = m.speeds[i][:0]
	}
	starts := m.sim.Arena().StartingPositions()
	m.pointers[0].place(starts[handle.One])
	m.pointers[1].place(starts[handle.Two])
	if m.driver != nil {
		m.driver.Start(m.sim)
	}
}

// project maps table coordinates to canvas sub-pixels, keeping the aspect.
func (m *Model) project(p geom.Vec2) (int, int) {
	cw, ch := m.canvas.PixelSize()
	s := m.scale()
	return cw/2 + int(math.Round(p.X*s)), ch/2 + int(math.Round(p.Y*s))
}

func (m *Model) scale() float64 {
	cw, ch := m.canvas.PixelSize()
	inner := m.sim.Arena().InnerSize
	return math.Min(float64(cw-2)/inner.X, float64(ch-2)/inner.Y)
}

func (m *Model) draw() {
	m.canvas.Clear()
	g := m.sim.Arena()

	x0, y0 := m.project(g.InnerBounds.Min())
	x1, y1 := m.project(g.InnerBounds.Max())
	m.canvas.DrawRect(x0, y0, x1, y1)
	for x := x0; x <= x1; x += 4 {
		m.canvas.Set(x, (y0+y1)/2)
	}

	r := int(math.Round(g.HandleRadius * m.scale()))
	for _, id := range []handle.ID{handle.One, handle.Two} {
		h := m.sim.Handle(id)
		cx, cy := m.project(h.Position())
		m.canvas.DrawCircle(cx, cy, r)
		if h.Held() {
			m.canvas.FillCircle(cx, cy, r/2)
		} else {
			m.canvas.Set(cx, cy)
		}
	}

	for _, p := range m.pointers {
		cx, cy := m.project(p.pos)
		m.canvas.DrawLine(cx-2, cy, cx+2, cy)
		m.canvas.DrawLine(cx, cy-2, cx, cy+2)
	}
}

func (m *Model) status() string {
	if !m.running {
		return lipgloss.NewStyle().Foreground(m.theme.Warning).Render("PAUSED")
	}
	return lipgloss.NewStyle().Foreground(m.theme.Accent).Render("RUNNING")
}

func (m *Model) handleStats(id handle.ID, color lipgloss.Color) string {
	h := m.sim.Handle(id)
	name := lipgloss.NewStyle().Foreground(color).Bold(true).Render(strings.ToUpper(id.String()))
	state := "free"
	if h.Held() {
		state = "held"
	}

	var s strings.Builder
	s.WriteString(name + "  " + valueStyle.Render(state) + "\n")
	s.WriteString(labelStyle.Render("Position") + valueStyle.Render(h.Position().String()) + "\n")
	s.WriteString(labelStyle.Render("Speed") + valueStyle.Render(fmt.Sprintf("%.3f", h.Speed())) + "\n")
	s.WriteString(SparklineChart(m.speeds[id], 30, m.sim.Tuning().MaxFreeSpeed) + "\n")
	return s.String()
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(
		lipgloss.NewStyle().Foreground(m.theme.Table).Render(m.canvas.String()))

	var s strings.Builder
	s.WriteString(headerStyle.Foreground(m.theme.Text).Render(strings.ToUpper(m.title)) + "\n")
	s.WriteString(m.status() + "\n\n")

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t/1000)) + "\n")
	s.WriteString(labelStyle.Render("Hits") + valueStyle.Render(fmt.Sprintf("%d", m.hits)) + "\n")
	s.WriteString(labelStyle.Render("Bounces") + valueStyle.Render(fmt.Sprintf("%d", m.bounces)) + "\n\n")

	s.WriteString(m.handleStats(handle.One, m.theme.Handle1) + "\n")
	s.WriteString(m.handleStats(handle.Two, m.theme.Handle2))

	if len(m.speeds[0]) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{m.speeds[0], m.speeds[1]},
			asciigraph.Height(4),
			asciigraph.Width(30),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption("speed"),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	s.WriteString(helpStyle.Render("─────────────────────\n←↑↓→ ⏎:Bottom  WASD ␣:Top\nP:Pause R:Reset T:Theme ?:Help Q:Quit"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsStyle.Render(s.String()))
	if m.showHelp {
		return overlayStyle.Render(helpText) + "\n\n" + mainView
	}
	return mainView
}

const helpText = `KEYBOARD SHORTCUTS

Arrows   - Move bottom cursor
Enter    - Grab / release under bottom cursor
W A S D  - Move top cursor
Space    - Grab / release under top cursor
P        - Pause/Resume simulation
R        - Reset handles
T        - Cycle themes
?        - Toggle this help
Q        - Quit`
