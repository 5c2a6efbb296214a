package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/orbitlab/internal/engine"
)

const (
	canvasCols = 80
	canvasRows = 24

	historyCapacity = 600
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Model is the live TUI around an engine instance. It owns the step
// cadence: the engine's speed multiplier scales how many steps run per
// frame, never the physics dt.
type Model struct {
	eng      *engine.Engine
	canvas   *Canvas
	themeIdx int
	showHelp bool

	simTime    float64
	stepAcc    float64
	energyHist []float64
	dtHist     []float64
}

func NewModel(eng *engine.Engine) *Model {
	return &Model{
		eng:        eng,
		canvas:     NewCanvas(canvasCols, canvasRows),
		energyHist: make([]float64, 0, historyCapacity),
		dtHist:     make([]float64, 0, historyCapacity),
	}
}

// Run starts the engine and blocks until the user quits.
func Run(eng *engine.Engine) error {
	eng.Start()
	_, err := tea.NewProgram(NewModel(eng), tea.WithAltScreen()).Run()
	return err
}

func (m *Model) Init() tea.Cmd { return tick() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.eng.ToggleRunning()
		case "r":
			m.eng.Reset()
			m.simTime = 0
			m.energyHist = m.energyHist[:0]
			m.dtHist = m.dtHist[:0]
		case "a":
			m.eng.SetAdaptiveTimeStep(!m.eng.Config().AdaptiveStep)
		case "2", "3", "4", "5":
			m.eng.SetNumBodies(int(msg.String()[0] - '0'))
			m.simTime = 0
			m.energyHist = m.energyHist[:0]
			m.dtHist = m.dtHist[:0]
		case "+", "=":
			m.eng.SetSpeedMultiplier(m.eng.SpeedMultiplier() * 1.25)
		case "-", "_":
			m.eng.SetSpeedMultiplier(m.eng.SpeedMultiplier() / 1.25)
		case "t":
			m.themeIdx = (m.themeIdx + 1) % len(Themes)
		case "?":
			m.showHelp = !m.showHelp
		}
	case tickMsg:
		m.advance()
		return m, tick()
	}
	return m, nil
}

// advance runs the per-frame step burst. The fractional accumulator lets
// sub-unity multipliers step less than once per frame.
func (m *Model) advance() {
	if !m.eng.IsRunning() {
		return
	}
	m.stepAcc += m.eng.SpeedMultiplier()
	steps := int(m.stepAcc)
	m.stepAcc -= float64(steps)

	for i := 0; i < steps; i++ {
		m.eng.Step()
		m.simTime += m.eng.EffectiveTimeStep()
	}
	if steps == 0 {
		return
	}

	m.energyHist = append(m.energyHist, m.eng.TotalEnergy())
	if len(m.energyHist) > historyCapacity {
		m.energyHist = m.energyHist[1:]
	}
	m.dtHist = append(m.dtHist, m.eng.EffectiveTimeStep())
	if len(m.dtHist) > historyCapacity {
		m.dtHist = m.dtHist[1:]
	}
}

// drawBodies projects simulation space onto the dot grid: trails as
// polylines, bodies as filled dots scaled down from their render radius.
func (m *Model) drawBodies() {
	m.canvas.Clear()
	cfg := m.eng.Config()

	toDot := func(p engine.Vec2) (int, int) {
		x := p.X / cfg.CanvasWidth * float64(m.canvas.DotWidth())
		y := p.Y / cfg.CanvasHeight * float64(m.canvas.DotHeight())
		return int(x), int(y)
	}

	for _, b := range m.eng.Bodies() {
		pts := b.Trail.Points()
		for i := 1; i < len(pts); i++ {
			x0, y0 := toDot(pts[i-1])
			x1, y1 := toDot(pts[i])
			m.canvas.DrawLine(x0, y0, x1, y1)
		}
		x, y := toDot(b.Pos)
		r := int(b.Radius / cfg.CanvasWidth * float64(m.canvas.DotWidth()) / 2)
		if r < 1 {
			r = 1
		}
		m.canvas.FillCircle(x, y, r)
	}
}

func (m *Model) View() string {
	theme := Themes[m.themeIdx]
	headerStyle := lipgloss.NewStyle().Foreground(theme.Header).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(theme.Muted).Width(10)
	valueStyle := lipgloss.NewStyle().Foreground(theme.Text)
	accentStyle := lipgloss.NewStyle().Foreground(theme.Accent)
	chartStyle := lipgloss.NewStyle().Foreground(theme.Chart)
	canvasStyle := lipgloss.NewStyle().Foreground(theme.Text).Padding(1, 2)
	panelStyle := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		BorderForeground(theme.Muted).
		Padding(1, 2).
		Width(44)

	m.drawBodies()

	var s strings.Builder
	s.WriteString(headerStyle.Render("ORBITLAB") + "\n")
	status := "RUNNING"
	if !m.eng.IsRunning() {
		status = "PAUSED"
	}
	s.WriteString(accentStyle.Render(status) + "\n\n")

	cfg := m.eng.Config()
	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.simTime))
	row("Eff dt", fmt.Sprintf("%.5f", m.eng.EffectiveTimeStep()))
	row("Bodies", fmt.Sprintf("%d", cfg.NumBodies))
	row("Speed", fmt.Sprintf("%.2fx", m.eng.SpeedMultiplier()))
	adaptive := "off"
	if cfg.AdaptiveStep {
		adaptive = "on"
	}
	row("Adaptive", adaptive)
	row("G", fmt.Sprintf("%.0f", cfg.G))

	if len(m.energyHist) > 1 {
		chart := asciigraph.Plot(m.energyHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("energy"))
		s.WriteString("\n" + chartStyle.Render(chart) + "\n")
	}
	if cfg.AdaptiveStep && len(m.dtHist) > 1 {
		chart := asciigraph.Plot(m.dtHist,
			asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("effective dt"))
		s.WriteString("\n" + chartStyle.Render(chart) + "\n")
	}

	s.WriteString("\n" + headerStyle.Render("BODIES") + "\n")
	for i, b := range m.eng.Bodies() {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(b.Color)).Render("●")
		s.WriteString(fmt.Sprintf("%s %d  m=%-8.1f |v|=%.1f\n", swatch, i, b.Mass, b.Vel.Len()))
	}

	s.WriteString(lipgloss.NewStyle().Foreground(theme.Muted).MarginTop(1).Render(
		"space:pause r:reset a:adaptive 2-5:bodies\n+/-:speed t:theme ?:help q:quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		panelStyle.Render(s.String()))

	if m.showHelp {
		return helpText + "\n" + main
	}
	return main
}

const helpText = `  space  pause/resume        2..5  body count (reinitializes)
  r      new random draw     +/-   playback speed (step cadence)
  a      adaptive time step  t     cycle theme
  q      quit                ?     toggle this help`
