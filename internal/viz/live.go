package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/rigidsim/internal/collider"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/world"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	viewMargin      = 0.2
)

type TickMsg time.Time

// viewport maps world coordinates onto canvas dots. World y grows down, as
// on screen.
type viewport struct {
	minX, minY float64
	scale      float64
}

func (v viewport) project(x, y float64) (int, int) {
	return int(math.Round((x - v.minX) / v.scale)), int(math.Round((y - v.minY) / v.scale))
}

// Model drives a World at a fixed step and renders it.
type Model struct {
	world         *world.World
	initial       *scene.Scene
	name          string
	t, dt         float64
	steps         int
	canvas        *Canvas
	view          viewport
	energyHistory []float64
	showHelp      bool
	err           error
}

// NewModel snapshots w as the scene restored by reload.
func NewModel(w *world.World, name string, dt float64) Model {
	m := Model{
		world:         w,
		initial:       scene.Capture(w),
		name:          name,
		dt:            dt,
		canvas:        NewCanvas(width, height),
		energyHistory: make([]float64, 0, historyCapacity),
	}
	m.view = m.fit()
	return m
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return tick() }

// Update handles input events and steps the world while it is running.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.world.Running() {
				m.world.Pause()
			} else {
				m.world.Start()
			}
		case "n":
			m.step()
		case "r":
			m.reload()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.world.Running() {
			m.step()
		}
		return m, tick()
	}
	return m, nil
}

func (m *Model) step() {
	m.world.Step(m.dt)
	m.t += m.dt
	m.steps++

	m.energyHistory = append(m.energyHistory, metrics.TotalKinetic(m.world.State()))
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

// reload restores the initial scene. The running flag, gravity toggle and
// friction coefficients are not part of a scene and survive the reset.
func (m *Model) reload() {
	running := m.world.Running()
	gravityOn := m.world.GravityEnabled()
	static, kinetic := m.world.Friction()
	if err := scene.Apply(m.world, m.initial); err != nil {
		m.err = err
		return
	}
	m.world.SetGravityEnabled(gravityOn)
	m.world.SetFriction(static, kinetic)
	if running {
		m.world.Start()
	}
	m.t, m.steps, m.err = 0, 0, nil
	m.energyHistory = m.energyHistory[:0]
}

// fit frames the initial scene with a margin.
func (m *Model) fit() viewport {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range m.world.Objects() {
		lo, hi := bounds(b.Collider())
		minX, minY = math.Min(minX, lo[0]), math.Min(minY, lo[1])
		maxX, maxY = math.Max(maxX, hi[0]), math.Max(maxY, hi[1])
	}
	if math.IsInf(minX, 0) {
		minX, minY, maxX, maxY = -50, -50, 50, 50
	}

	spanX, spanY := maxX-minX, maxY-minY
	padX, padY := math.Max(spanX*viewMargin, 1), math.Max(spanY*viewMargin, 1)
	minX, maxX = minX-padX, maxX+padX
	minY, maxY = minY-padY, maxY+padY

	cw, ch := m.canvas.PixelSize()
	scale := math.Max((maxX-minX)/float64(cw-1), (maxY-minY)/float64(ch-1))
	return viewport{minX: minX, minY: minY, scale: scale}
}

func bounds(c collider.Collider) (lo, hi [2]float64) {
	switch c := c.(type) {
	case collider.AABB:
		return c.Min.Array(), c.Max().Array()
	case collider.Circle:
		return [2]float64{c.Pos.X - c.Radius, c.Pos.Y - c.Radius}, [2]float64{c.Pos.X + c.Radius, c.Pos.Y + c.Radius}
	}
	p := c.Center().Array()
	return p, p
}

func (m *Model) draw() {
	m.canvas.Clear()
	for _, b := range m.world.Objects() {
		switch c := b.Collider().(type) {
		case collider.AABB:
			x0, y0 := m.view.project(c.Min.X, c.Min.Y)
			mx := c.Max()
			x1, y1 := m.view.project(mx.X, mx.Y)
			m.canvas.DrawRect(x0, y0, x1, y1)
		case collider.Circle:
			cx, cy := m.view.project(c.Pos.X, c.Pos.Y)
			m.canvas.DrawCircle(cx, cy, c.Radius/m.view.scale)
		}
	}
}

// View renders the canvas next to the stats panel.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	state := m.world.State()
	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(m.name)) + "\n")
	if state.Running {
		s.WriteString(StatusRunning.Render("RUNNING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Kinetic energy"))
		s.WriteString(graphStyle.Render(chart) + "\n\n")
	}

	energy := 0.0
	if len(m.energyHistory) > 0 {
		energy = m.energyHistory[len(m.energyHistory)-1]
	}
	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.2fs", m.t)) + "\n")
	s.WriteString(labelStyle.Render("Steps") + valueStyle.Render(fmt.Sprintf("%d", m.steps)) + "\n")
	s.WriteString(labelStyle.Render("Bodies") + valueStyle.Render(fmt.Sprintf("%d", len(state.Bodies))) + "\n")
	s.WriteString(labelStyle.Render("Contacts") + valueStyle.Render(fmt.Sprintf("%d", len(state.Collisions))) + "\n")
	s.WriteString(labelStyle.Render("Energy") + valueStyle.Render(fmt.Sprintf("%.2f", energy)) + "\n")
	s.WriteString(labelStyle.Render("Gravity") + valueStyle.Render(fmt.Sprintf("(%.2f, %.2f)", state.Gravity[0], state.Gravity[1])) + "\n")
	if m.err != nil {
		s.WriteString("\n" + errorStyle.Render(m.err.Error()) + "\n")
	}
	if m.showHelp {
		s.WriteString(helpStyle.Render("\n─────────────────────\nSPACE  start/pause\nN      single step\nR      reload scene\n?      toggle help\nQ      quit"))
	} else {
		s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Run N:Step R:Reload\n?:Help Q:Quit"))
	}

	statsView := statsStyle.Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}
