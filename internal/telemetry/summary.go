package telemetry

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"fieldscope/internal/core"
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true).MarginBottom(1)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)

// Summary describes a finished run.
type Summary struct {
	Engine  string
	Mode    core.FieldMode
	Frames  uint64
	Elapsed time.Duration
	Stats   core.FrameStats
	// Rates is the frame-rate history plotted beneath the table.
	Rates []float64
}

// Render formats the summary for a terminal.
func (s Summary) Render() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render(strings.ToUpper(s.Engine)) + "\n")
	row := func(label, value string) {
		b.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Mode", s.Mode.String())
	row("Frames", fmt.Sprintf("%d", s.Frames))
	row("Elapsed", s.Elapsed.Round(time.Millisecond).String())
	row("FPS", fmt.Sprintf("%d", s.Stats.Rounded))
	row("Mean", fmt.Sprintf("%.1f", s.Stats.Mean))
	row("Min/Max", fmt.Sprintf("%.1f / %.1f", s.Stats.Min, s.Stats.Max))
	if len(s.Rates) > 1 {
		graph := asciigraph.Plot(s.Rates,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("frames per second"),
		)
		b.WriteString("\n" + graphStyle.Render(graph) + "\n")
	}
	return b.String()
}
