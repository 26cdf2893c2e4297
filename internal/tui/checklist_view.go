package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/gate"
)

func renderChecklist(state gate.Checklist, cursor int, showTip, resetPending bool, width, height int) string {
	done := state.Count()
	complete := done >= gate.Total

	var lines []string
	heading := lockedStyle.Render("Release Readiness")
	sub := metaStyle.Render("Complete all verification steps to unlock shipping.")
	if complete {
		heading = doneStyle.Render("Release Readiness")
		sub = metaStyle.Render("All systems go! You are ready to ship.")
	}
	lines = append(lines, "", "  "+heading+metaStyle.Render(fmt.Sprintf("   %d / %d tests passed", done, gate.Total)), "  "+sub)
	lines = append(lines, "  "+progressBar(done, gate.Total, min(width-8, 50)), "")

	for i, item := range gate.Items {
		box := "[ ]"
		label := bodyStyle.Render(item.Label)
		if state.Has(item.ID) {
			box = doneStyle.Render("[x]")
			label = metaStyle.Render(item.Label)
		}
		prefix := "  "
		if i == cursor {
			prefix = itemSelectedStyle.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %2d. %s", prefix, box, item.ID, label))
		if showTip && i == cursor {
			lines = append(lines, "         "+metaStyle.Italic(true).Render("Tip: "+item.Tip))
		}
	}

	lines = append(lines, "")
	if resetPending {
		lines = append(lines, "  "+lockedStyle.Render("Reset all test progress? y confirm · n cancel"))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}

func progressBar(done, total, width int) string {
	if width < 10 {
		width = 10
	}
	filled := width * done / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	if done >= total {
		return doneStyle.Render(bar)
	}
	return lipgloss.NewStyle().Foreground(colorPrimary).Render(bar)
}
