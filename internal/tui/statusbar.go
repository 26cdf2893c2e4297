package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/rank"
)

type statusInfo struct {
	count       int
	filterLabel string
	sort        rank.Strategy
	matchesOnly bool
	searching   bool
	opening     bool
}

func renderStatusBar(s statusInfo, width int) string {
	accent := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)

	left := fmt.Sprintf(" %d jobs · sort %s", s.count, s.sort.Label())
	if s.filterLabel != "All" {
		left += " · " + s.filterLabel
	}
	if s.matchesOnly {
		left += " · " + accent.Render("matches only")
	}

	right := " / search  f filter  s sort  m matches  ? help  q quit "

	if s.searching {
		right = " esc cancel  enter search "
	}
	if s.opening {
		left += " (opening...)"
	}

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}

func renderBottomBar(done, total int, hints string, width int) string {
	progressStyle := lipgloss.NewStyle().
		Foreground(colorAccent).
		Bold(true)
	if done >= total {
		progressStyle = progressStyle.Foreground(colorGreen)
	}

	left := fmt.Sprintf(" %s %d/%d", progressStyle.Render("checks"), done, total)

	right := " " + hints + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + fmt.Sprintf("%*s", gap, "") + right

	return statusBarStyle.Width(width).Render(bar)
}
