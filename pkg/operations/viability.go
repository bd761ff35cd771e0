package operations

import (
	"github.com/spf13/afero"
)

// Viable reports whether op can run given the current filesystem state.
// It only checks existence and never touches anything:
//
//   - CopyFile and AppendToFile need From to exist
//   - ShellString is always viable
//   - ShellFile needs its executable to exist
//
// Paths must already be concrete.
func Viable(fs afero.Fs, op Operation) bool {
	v := &viability{fs: fs}
	_ = op.Accept(v)
	return v.ok
}

type viability struct {
	fs afero.Fs
	ok bool
}

func (v *viability) exists(path string) bool {
	_, err := v.fs.Stat(path)
	return err == nil
}

func (v *viability) VisitCopyFile(op CopyFile) error {
	v.ok = v.exists(op.From)
	return nil
}

func (v *viability) VisitAppendToFile(op AppendToFile) error {
	v.ok = v.exists(op.From)
	return nil
}

func (v *viability) VisitShellString(ShellString) error {
	v.ok = true
	return nil
}

func (v *viability) VisitShellFile(op ShellFile) error {
	v.ok = v.exists(op.Cmd.File())
	return nil
}
