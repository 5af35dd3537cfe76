package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const bannerArt = `
 ▀█▀ ▄▀█ █▀▀ █▄▄ █ █ █ █   █▀▄ █▀▀ █▀█
  █  █▀█ █▄█ █▄█ █▄█ █ █▄▄ █▄▀ ██▄ █▀▄`

const bannerSubtitle = "click tags or type them • both stay in sync"

// RenderBanner returns the styled banner with its subtitle.
func RenderBanner() string {
	lines := splitLines(bannerArt)
	var rendered strings.Builder

	maxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > maxWidth {
			maxWidth = w
		}
	}

	for _, line := range lines {
		if line == "" {
			continue
		}
		rendered.WriteString(BannerStyle.Render(line) + "\n")
	}

	blockWidth := maxWidth
	if w := lipgloss.Width(bannerSubtitle); w > blockWidth {
		blockWidth = w
	}
	subtitle := lipgloss.NewStyle().
		Foreground(ColorMuted).
		Width(blockWidth).
		Align(lipgloss.Center).
		Render(bannerSubtitle)

	return "\n" + rendered.String() + subtitle + "\n"
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
