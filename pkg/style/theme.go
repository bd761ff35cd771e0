package style

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/dotflex/dotflex/pkg/operations"
)

// Palette assigns an adaptive color to every role used in the output.
// Light and Dark variants are picked by lipgloss from the terminal
// background.
type Palette struct {
	Heading lipgloss.AdaptiveColor
	Text    lipgloss.AdaptiveColor
	Muted   lipgloss.AdaptiveColor
	Path    lipgloss.AdaptiveColor
	Code    lipgloss.AdaptiveColor
	Surface lipgloss.AdaptiveColor
	Success lipgloss.AdaptiveColor
	Error   lipgloss.AdaptiveColor
	Warning lipgloss.AdaptiveColor
	Info    lipgloss.AdaptiveColor
	Kinds   map[operations.Kind]lipgloss.AdaptiveColor
}

// DefaultPalette is used unless a caller builds its own theme
var DefaultPalette = Palette{
	Heading: lipgloss.AdaptiveColor{Light: "#1F2328", Dark: "#F0F3F6"},
	Text:    lipgloss.AdaptiveColor{Light: "#3D444D", Dark: "#D1D7E0"},
	Muted:   lipgloss.AdaptiveColor{Light: "#6E7781", Dark: "#9198A1"},
	Path:    lipgloss.AdaptiveColor{Light: "#0969DA", Dark: "#58A6FF"},
	Code:    lipgloss.AdaptiveColor{Light: "#8250DF", Dark: "#BC8CFF"},
	Surface: lipgloss.AdaptiveColor{Light: "#F6F8FA", Dark: "#262C36"},
	Success: lipgloss.AdaptiveColor{Light: "#1A7F37", Dark: "#3FB950"},
	Error:   lipgloss.AdaptiveColor{Light: "#CF222E", Dark: "#F85149"},
	Warning: lipgloss.AdaptiveColor{Light: "#9A6700", Dark: "#D29922"},
	Info:    lipgloss.AdaptiveColor{Light: "#0550AE", Dark: "#79C0FF"},
	Kinds: map[operations.Kind]lipgloss.AdaptiveColor{
		operations.KindCopyFile:     {Light: "#0E7490", Dark: "#22D3EE"},
		operations.KindAppendToFile: {Light: "#7C3AED", Dark: "#A78BFA"},
		operations.KindShellString:  {Light: "#C2410C", Dark: "#FB923C"},
		operations.KindShellFile:    {Light: "#047857", Dark: "#34D399"},
	},
}

// Theme is the set of lipgloss styles derived from a palette
type Theme struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Text    lipgloss.Style
	Muted   lipgloss.Style
	Path    lipgloss.Style
	Code    lipgloss.Style
	Success lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	kinds map[operations.Kind]lipgloss.Style
}

// NewTheme derives the styles for p
func NewTheme(p Palette) *Theme {
	t := &Theme{
		Title:   lipgloss.NewStyle().Foreground(p.Heading).Bold(true).Underline(true),
		Label:   lipgloss.NewStyle().Foreground(p.Heading).Bold(true),
		Text:    lipgloss.NewStyle().Foreground(p.Text),
		Muted:   lipgloss.NewStyle().Foreground(p.Muted),
		Path:    lipgloss.NewStyle().Foreground(p.Path),
		Code:    lipgloss.NewStyle().Foreground(p.Code).Background(p.Surface).Padding(0, 1),
		Success: lipgloss.NewStyle().Foreground(p.Success).Bold(true),
		Error:   lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Warning: lipgloss.NewStyle().Foreground(p.Warning).Bold(true),
		Info:    lipgloss.NewStyle().Foreground(p.Info),
		kinds:   make(map[operations.Kind]lipgloss.Style, len(p.Kinds)),
	}
	for k, c := range p.Kinds {
		t.kinds[k] = lipgloss.NewStyle().Foreground(c).Bold(true)
	}
	return t
}

// DefaultTheme is built from DefaultPalette
var DefaultTheme = NewTheme(DefaultPalette)

// Kind returns the style for an operation kind, falling back to plain text
func (t *Theme) Kind(k operations.Kind) lipgloss.Style {
	if s, ok := t.kinds[k]; ok {
		return s
	}
	return t.Text
}

// Tags maps markup tag names onto the theme's styles. Operation kinds are
// addressed by their manifest tag (copy_file, shell, ...).
func (t *Theme) Tags() map[string]lipgloss.Style {
	tags := map[string]lipgloss.Style{
		"title":   t.Title,
		"label":   t.Label,
		"muted":   t.Muted,
		"path":    t.Path,
		"code":    t.Code,
		"success": t.Success,
		"error":   t.Error,
		"warning": t.Warning,
		"info":    t.Info,
		"bold":    lipgloss.NewStyle().Bold(true),
		"italic":  lipgloss.NewStyle().Italic(true),
	}
	for k, s := range t.kinds {
		tags[k.String()] = s
	}
	return tags
}

// Indicator glyphs
const (
	GlyphOK      = "✓"
	GlyphFailed  = "✗"
	GlyphWarning = "!"
	GlyphInfo    = "•"
)

// KindStyle returns the default theme's style for an operation kind
func KindStyle(k operations.Kind) lipgloss.Style {
	return DefaultTheme.Kind(k)
}
