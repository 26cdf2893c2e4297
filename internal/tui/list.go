package tui

import (
	"fmt"
	"strings"

	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/status"
)

// rowInfo is the per-posting user state the list shows next to each title.
type rowInfo interface {
	Get(id int) status.Status
	Has(id int) bool
}

func postedLabel(days int) string {
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	default:
		return fmt.Sprintf("%d days ago", days)
	}
}

func renderListItem(p match.Scored, st status.Status, saved bool, selected bool, width int) string {
	if width < 10 {
		width = 30
	}

	marker := " "
	if saved {
		marker = "★"
	}
	badge := scoreStyle(p.Score).Render(fmt.Sprintf("%3d", p.Score))

	var title string
	if selected {
		title = itemSelectedStyle.Render("> " + truncateStr(p.Title, width-10))
	} else {
		title = itemTitleStyle.Render("  " + truncateStr(p.Title, width-10))
	}

	meta := "  " + itemCompanyStyle.Render(p.Company) + " " +
		itemTimeStyle.Render("· "+p.Location+" · "+postedLabel(p.PostedAge))
	if st != status.NotApplied {
		meta += " " + statusStyle(st).Render(string(st))
	}

	return badge + " " + marker + title + "\n" + "     " + meta
}

func truncateStr(s string, n int) string {
	if n <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}

func renderList(postings []match.Scored, info rowInfo, cursor int, height int, width int, empty string) string {
	if len(postings) == 0 {
		return lipglossCenter(empty, width, height)
	}

	// Each item is 2 lines + 1 blank line = 3 lines
	itemHeight := 3
	visible := height / itemHeight
	if visible < 1 {
		visible = 1
	}

	// Calculate scroll offset
	start := 0
	if cursor >= visible {
		start = cursor - visible + 1
	}
	end := start + visible
	if end > len(postings) {
		end = len(postings)
		start = end - visible
		if start < 0 {
			start = 0
		}
	}

	var b strings.Builder
	for i := start; i < end; i++ {
		p := postings[i]
		b.WriteString(renderListItem(p, info.Get(p.ID), info.Has(p.ID), i == cursor, width))
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

func lipglossCenter(s string, width, height int) string {
	pad := (width - len([]rune(s))) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat("\n", height/3) + strings.Repeat(" ", pad) + s
}
