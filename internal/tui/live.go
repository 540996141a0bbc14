// Package tui renders a live terminal view of a demo loop: repeated kernel
// evaluations driving a naive leapfrog update. Integration is the caller's
// job in this architecture; this view is that caller.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/mdforge/nbkern/internal/demo"
	"github.com/mdforge/nbkern/internal/integrate"
	"github.com/mdforge/nbkern/internal/kernel"
	"github.com/mdforge/nbkern/internal/metrics"
	"github.com/mdforge/nbkern/internal/simd"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
)

const historyLen = 120

type Model struct {
	scene *demo.Scene
	out   *kernel.Out
	vel   []float32
	leap  integrate.Leapfrog

	step    int
	maxStep int
	paused  bool
	err     error

	drift   metrics.Drift
	history []float64
	width   int
}

func NewModel(scene *demo.Scene) *Model {
	return &Model{
		scene:   scene,
		out:     scene.NewOut(),
		vel:     make([]float32, 3*scene.Sys.N),
		leap:    integrate.Leapfrog{Dt: float32(scene.Cfg.Dt)},
		maxStep: scene.Cfg.Steps,
		history: make([]float64, 0, historyLen),
		width:   80,
	}
}

func (m *Model) Init() tea.Cmd { return tick() }

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(50*time.Millisecond, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ", "p":
			m.paused = !m.paused
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tickMsg:
		if !m.paused && m.err == nil && m.step < m.maxStep {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance performs one leapfrog step: kick from the last forces, drift,
// rebuild the list, then evaluate forces at the new positions.
func (m *Model) advance() {
	sys := m.scene.Sys
	m.leap.Step(sys.Pos, m.vel, m.out.F, sys.Box)

	if err := m.scene.Rebuild(); err != nil {
		m.err = err
		return
	}
	m.scene.Step(m.out)
	m.step++

	total := metrics.Potential(m.out) + integrate.KineticEnergy(m.vel)
	m.drift.Observe(total)
	m.history = append(m.history, total)
	if len(m.history) > historyLen {
		m.history = m.history[1:]
	}
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("nbkern live") + "  " + labelStyle.Render(m.scene.Describe()) + "\n\n")

	if m.err != nil {
		b.WriteString(warnStyle.Render(fmt.Sprintf("stopped: %v", m.err)) + "\n")
		return b.String()
	}

	vnb := simd.Sum(m.out.Vnb)
	vc := simd.Sum(m.out.Vc)
	b.WriteString(fmt.Sprintf("%s %s   %s %s   %s %s   %s %s\n",
		labelStyle.Render("step"), valueStyle.Render(fmt.Sprintf("%d/%d", m.step, m.maxStep)),
		labelStyle.Render("Vnb"), valueStyle.Render(fmt.Sprintf("%.4f", vnb)),
		labelStyle.Render("Vc"), valueStyle.Render(fmt.Sprintf("%.4f", vc)),
		labelStyle.Render("drift"), valueStyle.Render(fmt.Sprintf("%.2e", m.drift.Value())),
	))
	if m.paused {
		b.WriteString(warnStyle.Render("paused") + "\n")
	}
	b.WriteString("\n")

	if len(m.history) >= 2 {
		w := m.width - 12
		if w > historyLen {
			w = historyLen
		}
		if w < 20 {
			w = 20
		}
		b.WriteString(asciigraph.Plot(m.history,
			asciigraph.Height(12),
			asciigraph.Width(w),
			asciigraph.Caption("total energy"),
		))
		b.WriteString("\n")
	}

	b.WriteString("\n" + labelStyle.Render("space: pause   q: quit") + "\n")
	return b.String()
}
