package operations

import (
	"github.com/dotflex/dotflex/pkg/paths"
)

// Resolver turns virtual paths into concrete ones
type Resolver interface {
	Resolve(def paths.Root, p string) string
}

// Unresolver turns concrete paths into virtual ones
type Unresolver interface {
	Unresolve(p string) (string, bool)
}

// ResolveForInstall makes every path in op concrete for installing onto
// the target machine. Sources and scripts default to the repository and
// destinations default to the target root.
func ResolveForInstall(res Resolver, op Operation) Operation {
	return mapPaths(op, pathMapping{
		from: func(p string) string { return res.Resolve(paths.Repo, p) },
		to:   func(p string) string { return res.Resolve(paths.Target, p) },
		exec: func(p string) string { return res.Resolve(paths.Repo, p) },
	})
}

// Virtualize rewrites every concrete path in op to its virtual form so
// the operation can be stored in a manifest
func Virtualize(res Unresolver, op Operation) Operation {
	virtual := func(p string) string { return virtualPath(res, p) }
	return mapPaths(op, pathMapping{from: virtual, to: virtual, exec: virtual})
}

func virtualPath(res Unresolver, p string) string {
	if res == nil {
		return p
	}
	if v, ok := res.Unresolve(p); ok {
		return v
	}
	return p
}

type pathMapping struct {
	from func(string) string
	to   func(string) string
	exec func(string) string
	out  Operation
}

func mapPaths(op Operation, m pathMapping) Operation {
	_ = op.Accept(&m)
	return m.out
}

func (m *pathMapping) VisitCopyFile(op CopyFile) error {
	m.out = CopyFile{From: m.from(op.From), To: m.to(op.To)}
	return nil
}

func (m *pathMapping) VisitAppendToFile(op AppendToFile) error {
	m.out = AppendToFile{From: m.from(op.From), To: m.to(op.To)}
	return nil
}

func (m *pathMapping) VisitShellString(op ShellString) error {
	m.out = ShellString{Cmd: op.Cmd, Effects: op.Effects.Clone()}
	return nil
}

func (m *pathMapping) VisitShellFile(op ShellFile) error {
	m.out = ShellFile{Cmd: op.Cmd.WithFile(m.exec(op.Cmd.File())), Effects: op.Effects.Clone()}
	return nil
}
