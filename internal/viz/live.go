// Package viz renders a live terminal view of an optimization in progress.
package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/torqopt/internal/optim"
)

const historyCapacity = 600

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// IterMsg reports one completed sweep.
type IterMsg struct {
	Iter    int
	Best    optim.Vector
	BestVal float64
}

// DoneMsg reports the end of the run.
type DoneMsg struct {
	Best optim.Vector
	Err  error
}

// Model is the bubbletea model for a running optimization.
type Model struct {
	encoding string
	total    int

	iter    int
	best    optim.Vector
	bestVal float64
	history []float64

	done bool
	err  error
}

func NewModel(encoding string, total int) Model {
	return Model{
		encoding: encoding,
		total:    total,
		history:  make([]float64, 0, historyCapacity),
	}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case IterMsg:
		m.iter = msg.Iter + 1
		m.best = msg.Best
		m.bestVal = msg.BestVal
		m.history = append(m.history, msg.BestVal)
		if len(m.history) > historyCapacity {
			m.history = m.history[1:]
		}
	case DoneMsg:
		m.done = true
		m.err = msg.Err
		if msg.Best != nil {
			m.best = msg.Best
		}
	}
	return m, nil
}

func (m Model) View() string {
	var s strings.Builder
	s.WriteString(headerStyle.Render("TORQOPT PARTICLE SWARM") + "\n")

	s.WriteString(labelStyle.Render("encoding  ") + valueStyle.Render(m.encoding) + "\n")
	s.WriteString(labelStyle.Render("iteration ") + valueStyle.Render(fmt.Sprintf("%d / %d", m.iter, m.total)) + "\n")
	s.WriteString(labelStyle.Render("best      ") + valueStyle.Render(fmt.Sprintf("%.6f", m.bestVal)) + "\n")
	s.WriteString(labelStyle.Render("vector    ") + valueStyle.Render(formatVector(m.best)) + "\n")

	if len(m.history) > 1 {
		graph := asciigraph.Plot(m.history,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("best score"),
		)
		s.WriteString(graphStyle.Render(graph) + "\n")
	}

	if m.done {
		if m.err != nil {
			s.WriteString(doneStyle.Render(fmt.Sprintf("STOPPED: %v", m.err)) + "\n")
		} else {
			s.WriteString(doneStyle.Render("FINISHED") + "\n")
		}
	}
	s.WriteString(helpStyle.Render("q: quit"))

	return s.String()
}

func formatVector(v optim.Vector) string {
	if len(v) == 0 {
		return "-"
	}
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = fmt.Sprintf("%.4f", x)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
