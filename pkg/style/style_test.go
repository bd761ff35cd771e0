package style

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/dotflex/dotflex/pkg/commands"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected Format
		wantErr  bool
	}{
		{in: "", expected: FormatAuto},
		{in: "auto", expected: FormatAuto},
		{in: "TERM", expected: FormatTerminal},
		{in: "plain", expected: FormatText},
		{in: "json", expected: FormatAuto, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	var b strings.Builder
	assert.Equal(t, FormatText, DetectFormat(&b), "non-file writers are plain")

	t.Setenv("NO_COLOR", "1")
	assert.Equal(t, FormatText, DetectFormat(&b))
}

func TestMarkup(t *testing.T) {
	m := NewMarkup(DefaultTheme)

	out := m.Render("[bold]vim[/bold] is [success]enabled[/success]")
	assert.Equal(t, "vim is enabled", out)

	assert.Equal(t, "x", m.Render("[bold][path]x[/path][/bold]"), "nested tags")
	assert.Equal(t, "[nope]x[/nope]", m.Render("[nope]x[/nope]"), "unknown tags are kept")
	assert.Equal(t, "[bold]x[/path]", m.Render("[bold]x[/path]"), "mismatched tags are kept")
	assert.Equal(t, "copy_file", m.Render("[copy_file]copy_file[/copy_file]"))
}

func TestMarkupExpand(t *testing.T) {
	m := NewMarkup(DefaultTheme)

	out := m.Expand("copying [path]{{from}}[/path]", map[string]string{"from": "@t/.vimrc"})
	assert.Equal(t, "copying @t/.vimrc", out)

	out = m.Expand("feature [bold]{{name}}[/bold]", map[string]string{"name": "[x]odd[/x]"})
	assert.Equal(t, "feature [x]odd[/x]", out, "values are not parsed as markup")
}

func TestThemeKind(t *testing.T) {
	for _, k := range []operations.Kind{
		operations.KindCopyFile,
		operations.KindAppendToFile,
		operations.KindShellString,
		operations.KindShellFile,
	} {
		assert.Equal(t, k.String(), KindStyle(k).Render(k.String()))
		assert.Contains(t, DefaultTheme.Tags(), k.String())
	}
	assert.Equal(t, "plain", DefaultTheme.Kind(operations.Kind(99)).Render("plain"))
}

func statusResult() *commands.StatusResult {
	return &commands.StatusResult{
		TargetDir: "/home/me",
		ConfigDir: "/home/me/.dotflex",
		Added:     []string{"tools"},
		Features: []commands.FeatureStatus{
			{Name: "shell", Active: true, Files: []commands.FileStatus{
				{Path: "@t/.zshrc", Resolved: "/home/me/.zshrc"},
			}},
			{Name: "tools"},
		},
	}
}

func TestPlainRenderStatus(t *testing.T) {
	r := NewPlainRenderer()

	assert.Equal(t, "Target directory: /home/me\n"+
		"Config directory: /home/me/.dotflex\n\n"+
		"found unrecorded feature: tools!\n"+
		"Features:\n"+
		"  shell: enabled\n"+
		"  tools: disabled\n", r.RenderStatus(statusResult(), false))

	verbose := r.RenderStatus(statusResult(), true)
	assert.Contains(t, verbose, "  shell: enabled\n    @t/.zshrc (/home/me/.zshrc)\n")

	empty := r.RenderStatus(&commands.StatusResult{TargetDir: "/t", ConfigDir: "/c"}, true)
	assert.Contains(t, empty, "  -- no features found.\n")
}

func TestTerminalRenderStatus(t *testing.T) {
	r := NewTerminalRenderer()
	out := r.RenderStatus(statusResult(), true)

	for _, want := range []string{"/home/me/.dotflex", "shell", "enabled", "disabled", "@t/.zshrc", "found unrecorded feature"} {
		assert.Contains(t, out, want)
	}
}

func TestRenderSteps(t *testing.T) {
	steps := []commands.Step{
		{Kind: operations.KindCopyFile, Description: "copying @t/.zshrc to @r/features/shell/.zshrc"},
		{Kind: operations.KindShellString, Description: "executing shell command", Err: errors.New(errors.ErrActionExecute, "command failed")},
	}

	assert.Equal(t, "  copying @t/.zshrc to @r/features/shell/.zshrc... ok\n"+
		"  executing shell command... failed\n", NewPlainRenderer().RenderSteps(steps))

	out := NewTerminalRenderer().RenderSteps(steps)
	assert.Contains(t, out, "✓")
	assert.Contains(t, out, "✗")
	assert.Contains(t, out, "command failed")
}

func TestRenderError(t *testing.T) {
	inner := errors.New(errors.ErrNotViable, "not viable")
	err := errors.Wrap(inner, errors.ErrInstallFailed, "failed to install feature vim")

	assert.Equal(t, "Error: failed to install feature vim: not viable", NewPlainRenderer().RenderError(err))
	assert.Equal(t, "Error: plain", NewPlainRenderer().RenderError(fmt.Errorf("plain")))
	assert.Empty(t, NewTerminalRenderer().RenderError(nil))
}

func TestRenderMarkdown(t *testing.T) {
	md := "# vim\n\n1. **copy** `@r/features/vim/.vimrc` → `@t/.vimrc`\n"
	assert.Equal(t, md, NewPlainRenderer().RenderMarkdown(md))

	r := &MarkdownRenderer{Style: "notty", Width: 80}
	out := r.Render(md)
	require.NotEmpty(t, out)
	assert.Contains(t, out, "@t/.vimrc")
}

func TestRenderErrorKeepsContext(t *testing.T) {
	err := fmt.Errorf("failed to show feature: %w",
		errors.Newf(errors.ErrFeatureNotFound, "no such feature: %s", "vim"))

	assert.Equal(t, "Error: failed to show feature: no such feature: vim", NewPlainRenderer().RenderError(err))
}
