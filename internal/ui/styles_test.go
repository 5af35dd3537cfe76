package ui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestApplyThemeSwitchesPalette(t *testing.T) {
	t.Cleanup(func() { ApplyTheme("auto") })

	ApplyTheme("light")
	assert.Equal(t, "light", ActiveTheme())
	assert.Equal(t, lightPalette.Primary, ColorPrimary)

	ApplyTheme("dark")
	assert.Equal(t, darkPalette.Primary, ColorPrimary)

	ApplyTheme("bogus")
	assert.Equal(t, "auto", ActiveTheme())
	assert.Equal(t, lipgloss.AdaptiveColor{Light: "#5b3a8c", Dark: "#7f57b4"}, ColorPrimary)
}
