package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/digest"
)

func renderDigest(d *digest.Digest, hasPrefs bool, cursor int, width, height int) string {
	var lines []string

	switch {
	case !hasPrefs:
		lines = append(lines, "", "  "+viewTitleStyle.Render("Personalize Your Digest"), "",
			"  "+bodyStyle.Render("Set your preferences to generate a personalized daily digest."),
			"  "+metaStyle.Render("jobtrack prefs set --roles \"developer\" --locations \"Bangalore\""))
	case d == nil:
		lines = append(lines, "", "  "+viewTitleStyle.Render("Daily Digest"), "",
			"  "+bodyStyle.Render("Your 9AM digest is ready to generate."),
			"  "+metaStyle.Render("Press g to generate today's top matches. It stays fixed until tomorrow."))
	case d.Empty():
		lines = append(lines, "", "  "+viewTitleStyle.Render(d.Heading()), "",
			"  "+bodyStyle.Render("No matching roles found today."),
			"  "+metaStyle.Render("Try adjusting your preferences or check back tomorrow."))
	default:
		lines = append(lines, "", "  "+viewTitleStyle.Render(d.Heading()),
			"  "+metaStyle.Render(fmt.Sprintf("%d roles above your threshold", len(d.Entries))), "")
		for i, e := range d.Entries {
			prefix := "  "
			title := itemTitleStyle.Render(e.Title)
			if i == cursor {
				prefix = itemSelectedStyle.Render("> ")
				title = itemSelectedStyle.Render(e.Title)
			}
			lines = append(lines,
				fmt.Sprintf("%s%2d. %s %s %s", prefix, i+1, title,
					itemCompanyStyle.Render("at "+e.Company),
					scoreStyle(e.Score).Render(fmt.Sprintf("[%d%% Match]", e.Score))),
				"      "+metaStyle.Render(e.Location+" · "+e.Mode+" · "+e.Salary),
			)
		}
		lines = append(lines, "", "  "+metaStyle.Render("This digest was generated based on your preferences."))
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}
