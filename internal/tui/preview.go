package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/match"
	"github.com/matheuskafuri/jobtrack/internal/rank"
	"github.com/matheuskafuri/jobtrack/internal/status"
)

type previewData struct {
	posting   *match.Scored
	breakdown match.Breakdown
	status    status.Status
	saved     bool
	note      string
}

func renderPreview(d previewData, width, height, scroll int) string {
	if d.posting == nil {
		return lipglossCenter("Select a job", width, height)
	}
	p := d.posting

	contentWidth := width - 2
	if contentWidth < 10 {
		contentWidth = 10
	}

	title := previewTitleStyle.Width(contentWidth).Render(p.Title)
	company := previewCompanyStyle.Render(
		fmt.Sprintf("%s · %s · %s", p.Company, p.Location, p.Mode),
	)

	facts := []string{
		fmt.Sprintf("Match:      %s", scoreStyle(p.Score).Render(fmt.Sprintf("%d%%", p.Score))),
		fmt.Sprintf("Experience: %s", p.Experience),
		fmt.Sprintf("Salary:     %s (up to %s)", p.SalaryRange, rank.FormatSalary(rank.SalaryValue(p.SalaryRange))),
		fmt.Sprintf("Skills:     %s", strings.Join(p.Skills, ", ")),
		fmt.Sprintf("Source:     %s · %s", p.Source, postedLabel(p.PostedAge)),
		fmt.Sprintf("Status:     %s", statusStyle(d.status).Render(string(d.status))),
	}
	if d.saved {
		facts = append(facts, "Saved:      ★")
	}

	desc := p.Description
	if desc == "" {
		desc = "(No description available)"
	}
	body := previewBodyStyle.Width(contentWidth).Render(wrapText(desc, contentWidth))

	sections := []string{title, company, strings.Join(facts, "\n"), "", body}
	if d.note != "" {
		sections = append(sections, "", metaStyle.Render("Note:"), bodyStyle.Width(contentWidth).Render(wrapText(d.note, contentWidth)))
	}
	if p.Score > 0 {
		sections = append(sections, "", renderBreakdown(d.breakdown))
	}
	sections = append(sections, previewLinkStyle.Width(contentWidth).Render("Apply: "+p.ApplyURL))

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	// Apply scroll offset
	lines := strings.Split(content, "\n")
	if scroll > 0 && scroll < len(lines) {
		lines = lines[scroll:]
	}

	// Pad to fill height
	if len(lines) < height {
		lines = append(lines, make([]string, height-len(lines))...)
	} else if len(lines) > height {
		lines = lines[:height]
	}

	return strings.Join(lines, "\n")
}

func renderBreakdown(b match.Breakdown) string {
	row := func(label string, v int) string {
		return fmt.Sprintf("  %-12s %+3d", label, v)
	}
	lines := []string{
		"Why this score:",
		row("Role", b.Role),
		row("Description", b.Description),
		row("Location", b.Location),
		row("Mode", b.Mode),
		row("Experience", b.Experience),
		row("Skills", b.Skills),
		row("Fresh", b.Fresh),
		row("LinkedIn", b.Source),
	}
	return metaStyle.Render(strings.Join(lines, "\n"))
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return ""
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		if len(line)+1+len(w) > width {
			lines = append(lines, line)
			line = w
		} else {
			line += " " + w
		}
	}
	lines = append(lines, line)
	return strings.Join(lines, "\n")
}
