package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// renderReference renders the catalog's markdown reference for the theme.
func renderReference(markdown, theme string, width int) (string, error) {
	wrap := width - 8
	if wrap < 20 {
		wrap = 20
	}
	if wrap > 100 {
		wrap = 100
	}

	style := glamour.WithAutoStyle()
	switch theme {
	case "dark", "light":
		style = glamour.WithStylePath(theme)
	}

	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(wrap))
	if err != nil {
		return "", fmt.Errorf("reference renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("render reference: %w", err)
	}
	return strings.Trim(out, "\n"), nil
}
