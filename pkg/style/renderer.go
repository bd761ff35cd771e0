package style

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotflex/dotflex/pkg/commands"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command results
type Renderer interface {
	RenderStatus(result *commands.StatusResult, verbose bool) string
	RenderSteps(steps []commands.Step) string
	RenderMarkdown(md string) string
	RenderError(err error) string
}

// NewRenderer returns the renderer for a concrete format
func NewRenderer(format Format) Renderer {
	if format == FormatTerminal {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct {
	theme    *Theme
	markup   *Markup
	markdown *MarkdownRenderer
}

// NewTerminalRenderer creates a terminal renderer using DefaultTheme
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{
		theme:    DefaultTheme,
		markup:   NewMarkup(DefaultTheme),
		markdown: NewMarkdownRenderer(),
	}
}

// RenderStatus renders the directories and a line per feature
func (r *TerminalRenderer) RenderStatus(result *commands.StatusResult, verbose bool) string {
	var b strings.Builder

	table, err := pterm.DefaultTable.WithData(pterm.TableData{
		{r.theme.Label.Render("Target directory"), r.theme.Path.Render(result.TargetDir)},
		{r.theme.Label.Render("Config directory"), r.theme.Path.Render(result.ConfigDir)},
	}).Srender()
	if err != nil {
		table = fmt.Sprintf("Target directory: %s\nConfig directory: %s", result.TargetDir, result.ConfigDir)
	}
	b.WriteString(table + "\n\n")

	for _, name := range result.Added {
		b.WriteString(r.markup.Expand("[info]"+GlyphInfo+"[/info] found unrecorded feature: [bold]{{name}}[/bold]",
			map[string]string{"name": name}) + "\n")
	}
	if len(result.Added) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(r.theme.Title.Render("Features") + "\n")
	if len(result.Features) == 0 {
		b.WriteString("  " + r.theme.Muted.Render("no features found.") + "\n")
		return b.String()
	}

	width := longestName(result.Features)
	for _, fs := range result.Features {
		b.WriteString(r.renderFeature(fs, width, verbose))
	}
	return b.String()
}

// renderFeature renders one feature line with a status badge, followed by
// its files when verbose is set
func (r *TerminalRenderer) renderFeature(fs commands.FeatureStatus, width int, verbose bool) string {
	var b strings.Builder
	name := lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("%-*s", width, fs.Name))
	badge := StatusStyle(fs.Active).Sprint(" " + StatusWord(fs.Active) + " ")
	fmt.Fprintf(&b, "  %s  %s\n", name, badge)

	if verbose {
		for _, file := range fs.Files {
			fmt.Fprintf(&b, "    %s %s\n", r.theme.Path.Render(file.Path), r.theme.Muted.Render("→ "+file.Resolved))
		}
	}
	return b.String()
}

// RenderSteps renders one line per executed operation
func (r *TerminalRenderer) RenderSteps(steps []commands.Step) string {
	var b strings.Builder
	for _, s := range steps {
		if s.OK() {
			fmt.Fprintf(&b, "  %s %s\n", r.theme.Success.Render(GlyphOK), r.theme.Kind(s.Kind).Render(s.Description))
			continue
		}
		fmt.Fprintf(&b, "  %s %s %s\n", r.theme.Error.Render(GlyphFailed), r.theme.Kind(s.Kind).Render(s.Description),
			r.theme.Muted.Render(errors.UserMessage(s.Err)))
	}
	return b.String()
}

// RenderMarkdown renders markdown with glamour
func (r *TerminalRenderer) RenderMarkdown(md string) string {
	return r.markdown.Render(md)
}

// RenderError renders an error message
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("%s %s", r.theme.Error.Render("Error:"), errors.UserMessage(err))
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderStatus renders the status report as plain text
func (r *PlainRenderer) RenderStatus(result *commands.StatusResult, verbose bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Target directory: %s\n", result.TargetDir)
	fmt.Fprintf(&b, "Config directory: %s\n\n", result.ConfigDir)

	for _, name := range result.Added {
		fmt.Fprintf(&b, "found unrecorded feature: %s!\n", name)
	}

	b.WriteString("Features:\n")
	if len(result.Features) == 0 {
		b.WriteString("  -- no features found.\n")
		return b.String()
	}

	width := longestName(result.Features)
	for _, fs := range result.Features {
		fmt.Fprintf(&b, "  %-*s: %s\n", width, fs.Name, StatusWord(fs.Active))
		if !verbose {
			continue
		}
		for _, file := range fs.Files {
			fmt.Fprintf(&b, "    %s (%s)\n", file.Path, file.Resolved)
		}
	}
	return b.String()
}

// RenderSteps renders "description... ok|failed" lines
func (r *PlainRenderer) RenderSteps(steps []commands.Step) string {
	var b strings.Builder
	for _, s := range steps {
		outcome := "ok"
		if !s.OK() {
			outcome = "failed"
		}
		fmt.Fprintf(&b, "  %s... %s\n", s.Description, outcome)
	}
	return b.String()
}

// RenderMarkdown returns the markdown source
func (r *PlainRenderer) RenderMarkdown(md string) string {
	return md
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %s", errors.UserMessage(err))
}
