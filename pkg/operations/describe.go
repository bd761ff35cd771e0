package operations

import (
	"fmt"
	"strings"
)

// Describe renders op as a progress line. Concrete paths under a known root
// are shown in virtual form so output reads the same on every machine.
// res may be nil, in which case paths are shown as given.
func Describe(res Unresolver, op Operation) string {
	d := &describer{res: res}
	_ = op.Accept(d)
	return d.out
}

type describer struct {
	res Unresolver
	out string
}

func (d *describer) VisitCopyFile(op CopyFile) error {
	d.out = fmt.Sprintf("copying %s to %s", virtualPath(d.res, op.From), virtualPath(d.res, op.To))
	return nil
}

func (d *describer) VisitAppendToFile(op AppendToFile) error {
	d.out = fmt.Sprintf("appending %s to %s", virtualPath(d.res, op.From), virtualPath(d.res, op.To))
	return nil
}

func (d *describer) VisitShellString(ShellString) error {
	d.out = "executing shell command"
	return nil
}

func (d *describer) VisitShellFile(op ShellFile) error {
	inv := op.Cmd.WithFile(virtualPath(d.res, op.Cmd.File()))
	d.out = fmt.Sprintf("executing file: %s", inv)
	return nil
}

// Markdown renders a feature's operations as a markdown document: one list
// entry per operation, followed by its effects when it has any
func Markdown(res Unresolver, title string, ops []Operation) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", title)
	if len(ops) == 0 {
		sb.WriteString("_No install operations._\n")
		return sb.String()
	}

	md := &markdowner{res: res, sb: &sb}
	for i, op := range ops {
		md.index = i + 1
		_ = op.Accept(md)
	}
	return sb.String()
}

type markdowner struct {
	res   Unresolver
	sb    *strings.Builder
	index int
}

func (m *markdowner) VisitCopyFile(op CopyFile) error {
	fmt.Fprintf(m.sb, "%d. **copy** `%s` → `%s`\n", m.index, virtualPath(m.res, op.From), virtualPath(m.res, op.To))
	return nil
}

func (m *markdowner) VisitAppendToFile(op AppendToFile) error {
	fmt.Fprintf(m.sb, "%d. **append** `%s` → `%s`\n", m.index, virtualPath(m.res, op.From), virtualPath(m.res, op.To))
	return nil
}

func (m *markdowner) VisitShellString(op ShellString) error {
	fmt.Fprintf(m.sb, "%d. **shell** `%s`\n", m.index, op.Cmd)
	m.effects(op.Effects)
	return nil
}

func (m *markdowner) VisitShellFile(op ShellFile) error {
	inv := op.Cmd.WithFile(virtualPath(m.res, op.Cmd.File()))
	fmt.Fprintf(m.sb, "%d. **script** `%s`\n", m.index, inv)
	m.effects(op.Effects)
	return nil
}

func (m *markdowner) effects(e *Effects) {
	if e.IsZero() {
		return
	}
	section := func(label string, items []string) {
		for _, p := range items {
			fmt.Fprintf(m.sb, "    - %s `%s`\n", label, p)
		}
	}
	section("generates", e.Generates)
	section("clobbers", e.Clobbers)
	section("deletes", e.Deletes)
}
