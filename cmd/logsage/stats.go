package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"logsage/internal/pipeline"
)

var (
	statsTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#8BC34A"))

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9aa5b1")).
			Width(18)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f2f2f2"))

	statsBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#2a3850")).
			Padding(0, 1)
)

// renderStats renders a per-file reduction summary box.
func renderStats(path string, s pipeline.Stats) string {
	row := func(label string, value any) string {
		return statsLabelStyle.Render(label) + statsValueStyle.Render(fmt.Sprintf("%v", value))
	}

	rows := []string{
		statsTitleStyle.Render(path),
		row("input lines", s.TotalLines),
		row("candidates", s.Candidates),
		row("expanded pool", s.Expanded),
		row("threshold", s.Threshold),
		row("final pool", s.FinalPool),
		row("blocks ranked", s.BlocksRanked),
		row("blocks selected", s.BlocksSelected),
		row("tokens", fmt.Sprintf("%d / %d", s.TokensUsed, s.TokenLimit)),
		row("elapsed", s.Elapsed.Round(10*time.Microsecond)),
	}

	return statsBoxStyle.Render(strings.Join(rows, "\n"))
}
