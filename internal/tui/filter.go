package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matheuskafuri/jobtrack/internal/filter"
)

type filterSlot struct {
	name    string
	options []string // options[0] is always filter.All
	index   int
}

func (s filterSlot) value() string {
	return s.options[s.index]
}

type filterBar struct {
	slots        []filterSlot
	filterMode   bool
	filterCursor int
}

func newFilterBar() filterBar {
	slot := func(name string, opts []string) filterSlot {
		return filterSlot{name: name, options: append([]string{filter.All}, opts...)}
	}
	return filterBar{
		slots: []filterSlot{
			slot("Location", filter.Locations),
			slot("Experience", filter.Experiences),
			slot("Mode", filter.Modes),
			slot("Status", filter.Statuses),
		},
	}
}

// cycle moves the current slot's value by delta, wrapping around.
func (f *filterBar) cycle(delta int) {
	s := &f.slots[f.filterCursor]
	n := len(s.options)
	s.index = ((s.index+delta)%n + n) % n
}

func (f *filterBar) clear() {
	for i := range f.slots {
		f.slots[i].index = 0
	}
}

func (f *filterBar) state(search string) filter.State {
	return filter.State{
		Search:     search,
		Location:   f.slots[0].value(),
		Experience: f.slots[1].value(),
		Mode:       f.slots[2].value(),
		Status:     f.slots[3].value(),
	}
}

func (f *filterBar) activeLabel() string {
	var parts []string
	for _, s := range f.slots {
		if s.index != 0 {
			parts = append(parts, s.value())
		}
	}
	if len(parts) == 0 {
		return filter.All
	}
	return strings.Join(parts, ", ")
}

func (f *filterBar) render(width int) string {
	sep := tabSeparatorStyle.Render(" · ")
	var parts []string

	for i, s := range f.slots {
		style := tabInactiveStyle
		if s.index != 0 {
			style = tabActiveStyle
		}
		label := s.name + ": " + s.value()
		if f.filterMode && i == f.filterCursor {
			label = "[" + label + "]"
		}
		parts = append(parts, style.Render(label))
	}

	// Build row with · separators, stopping when we'd exceed width
	var row string
	for i, part := range parts {
		candidate := row
		if i > 0 {
			candidate += sep
		}
		candidate += part
		if lipgloss.Width(candidate) > width && row != "" {
			break
		}
		row = candidate
	}

	barStyle := lipgloss.NewStyle().
		Background(colorSurface).
		Width(width).
		PaddingLeft(1)
	return barStyle.Render(row)
}
