package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	tagCursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7f57b4")).
			Bold(true)
	tagSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#98c379")).
				Bold(true)
	tagIdleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#d7d9da"))
	tagHeadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#436b77")).
			Bold(true)
	tagDescStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#9ba0bf"))

	meterOkStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98c379"))
	meterWarnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e5c07b"))
	meterOverStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#e06c75")).
			Bold(true)
)

// TagRow describes one line of a category's tag list.
type TagRow struct {
	Label       string
	Description string
	Heading     bool
	Selected    bool
	Main        bool
	// Order is the 1-based position in an ordered category, 0 otherwise.
	Order int
}

// RenderTagRow renders a tag line with cursor, check mark and order badge.
func RenderTagRow(r TagRow, cursor bool, width int) string {
	if r.Heading {
		return tagHeadingStyle.Render(ClampTextWidth(r.Label, width))
	}

	pointer := "  "
	if cursor {
		pointer = tagCursorStyle.Render("› ")
	}
	check := "[ ]"
	if r.Selected {
		check = "[x]"
		if r.Order > 0 {
			check = fmt.Sprintf("[%d]", r.Order)
		}
	}

	label := r.Label
	if r.Main {
		label += " *"
	}
	prefix := 2 + len(check) + 1
	label = ClampTextWidth(label, width-prefix)

	style := tagIdleStyle
	if r.Selected {
		style = tagSelectedStyle
	}
	line := pointer + style.Render(check+" "+label)

	if r.Description != "" && width > 0 {
		room := width - lipgloss.Width(line) - 3
		if room > 4 {
			line += tagDescStyle.Render(" - " + ClampTextWidth(r.Description, room))
		}
	}
	return line
}

// LimitMeter renders "length/limit", or LIMIT! while a rejected click is
// flashing. A limit of zero or less shows only the length.
func LimitMeter(length, limit int, flash bool) string {
	if flash {
		return meterOverStyle.Render("LIMIT!")
	}
	if limit <= 0 {
		return meterOkStyle.Render(fmt.Sprintf("%d", length))
	}
	text := fmt.Sprintf("%d/%d", length, limit)
	switch {
	case length > limit:
		return meterOverStyle.Render(text)
	case length*5 >= limit*4:
		return meterWarnStyle.Render(text)
	default:
		return meterOkStyle.Render(text)
	}
}

// Chips renders selected names as a wrapped, comma separated block.
func Chips(names []string, width int) string {
	if len(names) == 0 {
		return tagDescStyle.Render("nothing selected")
	}
	var lines []string
	var cur strings.Builder
	for i, n := range names {
		piece := SanitizeOneLine(n)
		if i < len(names)-1 {
			piece += ","
		}
		if width > 0 && cur.Len() > 0 && lipgloss.Width(cur.String())+1+lipgloss.Width(piece) > width {
			lines = append(lines, cur.String())
			cur.Reset()
		}
		if cur.Len() > 0 {
			cur.WriteByte(' ')
		}
		cur.WriteString(piece)
	}
	if cur.Len() > 0 {
		lines = append(lines, cur.String())
	}
	for i, l := range lines {
		lines[i] = tagSelectedStyle.Render(l)
	}
	return strings.Join(lines, "\n")
}
