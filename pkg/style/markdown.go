package style

import (
	"github.com/charmbracelet/glamour"
)

// MarkdownRenderer renders markdown for the terminal with glamour
type MarkdownRenderer struct {
	Style string // "dark", "light", "notty" or empty for auto-detection
	Width int    // word wrap width, 0 keeps glamour's default
}

// NewMarkdownRenderer creates a renderer with auto-detected style
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts markdown to styled terminal output. On any rendering
// error the markdown is returned unchanged.
func (r *MarkdownRenderer) Render(md string) string {
	var options []glamour.TermRendererOption
	if r.Style != "" {
		options = append(options, glamour.WithStandardStyle(r.Style))
	} else {
		options = append(options, glamour.WithAutoStyle())
	}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	renderer, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}
