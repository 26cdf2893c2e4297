package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/proof"
)

var linkLabels = []string{"Project Link", "GitHub Repository", "Deployed URL"}

func linkValues(l proof.Links) []string {
	return []string{l.Project, l.Repository, l.Deployment}
}

func withLink(l proof.Links, field int, v string) proof.Links {
	switch field {
	case 0:
		l.Project = v
	case 1:
		l.Repository = v
	case 2:
		l.Deployment = v
	}
	return l
}

func stageStyle(s proof.Stage) lipgloss.Style {
	switch s {
	case proof.Shipped:
		return toastStyle
	case proof.InProgress:
		return bannerStyle
	default:
		return tabInactiveStyle
	}
}

func renderShip(links proof.Links, stage proof.Stage, cursor int, editing string, width, height int) string {
	var lines []string
	lines = append(lines, "", "  "+viewTitleStyle.Render("Ship · Job Notification Tracker")+"  "+stageStyle(stage).Render(string(stage)), "")

	lines = append(lines, "  "+metaStyle.Render("Artifacts"))
	for i, v := range linkValues(links) {
		prefix := "  "
		if i == cursor {
			prefix = itemSelectedStyle.Render("> ")
		}
		shown := v
		if editing != "" && i == cursor {
			shown = editing
		} else if v == "" {
			shown = metaStyle.Render("(not set)")
		} else if !proof.ValidURL(v) {
			shown = errStyle.Render(v + "  (please enter a valid URL)")
		}
		lines = append(lines, fmt.Sprintf("%s%-18s %s", prefix, linkLabels[i]+":", shown))
	}

	lines = append(lines, "", "  "+metaStyle.Render("Build steps"))
	for i, s := range proof.Steps {
		lines = append(lines, fmt.Sprintf("    %s %d. %s", doneStyle.Render("✓"), i+1, s))
	}

	if stage == proof.Shipped {
		lines = append(lines, "", "  "+doneStyle.Render("Project 1 Shipped Successfully."), "")
		for _, l := range strings.Split(proof.Submission(links), "\n") {
			lines = append(lines, "  "+bodyStyle.Render(l))
		}
	}

	content := strings.Join(lines, "\n")
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, content)
}
