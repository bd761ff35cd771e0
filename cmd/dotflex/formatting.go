package dotflex

import (
	"os"
	"strings"
	"text/template"

	"github.com/dotflex/dotflex/pkg/style"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

// helpFuncs returns the template functions used by the usage template.
// Emphasis is dropped when help is not going to a terminal.
func helpFuncs(format style.Format) template.FuncMap {
	bold := func(s string) string { return s }
	if format == style.FormatTerminal {
		bold = func(s string) string { return pterm.Bold.Sprint(s) }
	}
	return template.FuncMap{
		"bold":      bold,
		"upper":     strings.ToUpper,
		"boldUpper": func(s string) string { return bold(strings.ToUpper(s)) },
	}
}

// initTemplateFormatting registers the help template functions for stdout
func initTemplateFormatting() {
	cobra.AddTemplateFuncs(helpFuncs(style.DetectFormat(os.Stdout)))
}
