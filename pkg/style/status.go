package style

import (
	"github.com/dotflex/dotflex/pkg/commands"
	"github.com/pterm/pterm"
)

// StatusStyle returns the pterm badge style for a feature state
func StatusStyle(active bool) *pterm.Style {
	if active {
		return pterm.NewStyle(pterm.BgGreen, pterm.FgBlack)
	}
	return pterm.NewStyle(pterm.FgGray)
}

// StatusWord is the word shown for a feature state
func StatusWord(active bool) string {
	if active {
		return "enabled"
	}
	return "disabled"
}

// longestName returns the widest feature name, for column alignment
func longestName(features []commands.FeatureStatus) int {
	width := 0
	for _, f := range features {
		if n := len([]rune(f.Name)); n > width {
			width = n
		}
	}
	return width
}
