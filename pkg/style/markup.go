package style

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// markupTag matches an innermost tag pair. The body may hold ANSI color
// sequences left by an earlier pass but no other brackets.
var markupTag = regexp.MustCompile(`\[([a-z_]+)\]((?:[^\[\x1b]|\x1b\[[0-9;]*m)*)\[/([a-z_]+)\]`)

// Markup renders inline [tag]text[/tag] markup with a theme's styles.
// Unknown or mismatched tags are left as they are.
type Markup struct {
	tags map[string]lipgloss.Style
}

// NewMarkup returns a markup renderer for theme t
func NewMarkup(t *Theme) *Markup {
	return &Markup{tags: t.Tags()}
}

// Render replaces innermost tags first, so nested markup works
func (m *Markup) Render(text string) string {
	for {
		changed := false
		text = markupTag.ReplaceAllStringFunc(text, func(match string) string {
			sub := markupTag.FindStringSubmatch(match)
			open, body, closing := sub[1], sub[2], sub[3]
			style, ok := m.tags[open]
			if !ok || open != closing {
				return match
			}
			changed = true
			return style.Render(body)
		})
		if !changed {
			return text
		}
	}
}

// Expand substitutes {{name}} placeholders and then renders the markup.
// Values are inserted verbatim and are not themselves parsed for tags.
func (m *Markup) Expand(tmpl string, vars map[string]string) string {
	pairs := make([]string, 0, 2*len(vars))
	protected := make(map[string]string, len(vars))
	for name, value := range vars {
		token := "\x00" + name + "\x00"
		pairs = append(pairs, "{{"+name+"}}", token)
		protected[token] = value
	}
	out := m.Render(strings.NewReplacer(pairs...).Replace(tmpl))
	for token, value := range protected {
		out = strings.ReplaceAll(out, token, value)
	}
	return out
}
