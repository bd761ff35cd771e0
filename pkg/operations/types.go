package operations

import (
	"strings"
)

// Kind identifies the variant of an Operation
type Kind int

const (
	// KindCopyFile copies a file or a directory tree
	KindCopyFile Kind = iota

	// KindAppendToFile appends a file's bytes to another file
	KindAppendToFile

	// KindShellString runs a command line through the shell
	KindShellString

	// KindShellFile runs an executable directly
	KindShellFile
)

// Manifest tags for each kind
const (
	TagCopyFile     = "copy_file"
	TagAppendToFile = "append_file"
	TagShellString  = "shell"
	TagShellFile    = "script"
)

// String returns the manifest tag of the kind
func (k Kind) String() string {
	switch k {
	case KindCopyFile:
		return TagCopyFile
	case KindAppendToFile:
		return TagAppendToFile
	case KindShellString:
		return TagShellString
	case KindShellFile:
		return TagShellFile
	default:
		return "unknown"
	}
}

// Operation is one of CopyFile, AppendToFile, ShellString or ShellFile.
// The interface is sealed; use Accept to handle each variant.
type Operation interface {
	Kind() Kind
	Accept(v Visitor) error
	isOperation()
}

// Visitor handles every operation kind. Implementations are the only way
// to branch on the concrete variant.
type Visitor interface {
	VisitCopyFile(op CopyFile) error
	VisitAppendToFile(op AppendToFile) error
	VisitShellString(op ShellString) error
	VisitShellFile(op ShellFile) error
}

// CopyFile copies From to To. A directory is copied recursively.
type CopyFile struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// AppendToFile appends the contents of From to To, creating To if needed
type AppendToFile struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ShellString runs Cmd through the configured shell interpreter
type ShellString struct {
	Cmd     string   `yaml:"cmd"`
	Effects *Effects `yaml:"effects,omitempty"`
}

// ShellFile runs an executable with its arguments
type ShellFile struct {
	Cmd     Invocation `yaml:"cmd"`
	Effects *Effects   `yaml:"effects,omitempty"`
}

func (CopyFile) Kind() Kind     { return KindCopyFile }
func (AppendToFile) Kind() Kind { return KindAppendToFile }
func (ShellString) Kind() Kind  { return KindShellString }
func (ShellFile) Kind() Kind    { return KindShellFile }

func (op CopyFile) Accept(v Visitor) error     { return v.VisitCopyFile(op) }
func (op AppendToFile) Accept(v Visitor) error { return v.VisitAppendToFile(op) }
func (op ShellString) Accept(v Visitor) error  { return v.VisitShellString(op) }
func (op ShellFile) Accept(v Visitor) error    { return v.VisitShellFile(op) }

func (CopyFile) isOperation()     {}
func (AppendToFile) isOperation() {}
func (ShellString) isOperation()  {}
func (ShellFile) isOperation()    {}

// Effects lists the paths a shell operation touches. Advisory only.
type Effects struct {
	Generates []string `yaml:"generates"`
	Clobbers  []string `yaml:"clobbers"`
	Deletes   []string `yaml:"deletes"`
}

// IsZero reports whether no paths are listed
func (e *Effects) IsZero() bool {
	return e == nil || (len(e.Generates) == 0 && len(e.Clobbers) == 0 && len(e.Deletes) == 0)
}

// Clone returns a deep copy, or nil for nil
func (e *Effects) Clone() *Effects {
	if e == nil {
		return nil
	}
	return &Effects{
		Generates: cloneStrings(e.Generates),
		Clobbers:  cloneStrings(e.Clobbers),
		Deletes:   cloneStrings(e.Deletes),
	}
}

// Invocation is an executable plus its arguments. It cannot be changed
// after construction.
type Invocation struct {
	file string
	args []string
}

// NewInvocation builds an invocation of file with args
func NewInvocation(file string, args ...string) Invocation {
	return Invocation{file: file, args: cloneStrings(args)}
}

// File returns the executable path
func (i Invocation) File() string {
	return i.file
}

// Args returns a copy of the arguments
func (i Invocation) Args() []string {
	return cloneStrings(i.args)
}

// WithFile returns a copy of the invocation running a different executable
func (i Invocation) WithFile(file string) Invocation {
	return NewInvocation(file, i.args...)
}

func (i Invocation) String() string {
	if len(i.args) == 0 {
		return i.file
	}
	return i.file + " " + strings.Join(i.args, " ")
}

func cloneStrings(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
