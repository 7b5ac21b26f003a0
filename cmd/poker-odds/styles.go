package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/cynthiacxzhang/range-equity-agent/poker"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	handStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("14"))

	winStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	tieStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))

	loseStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))

	categoryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("8"))

	redSuitStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

// formatCards renders cards with suit glyphs, red suits coloured.
func formatCards(cards []poker.Card) string {
	if len(cards) == 0 {
		return mutedStyle.Render("-")
	}
	parts := make([]string, len(cards))
	for i, c := range cards {
		label := c.Symbol()
		if c.Suit().IsRed() {
			label = redSuitStyle.Render(label)
		}
		parts[i] = label
	}
	return strings.Join(parts, " ")
}
