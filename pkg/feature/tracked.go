package feature

import (
	"github.com/dotflex/dotflex/pkg/operations"
)

// InstalledFile is a file deposited on the target by a CopyFile operation.
// Both paths are as written in the manifest, usually virtual.
type InstalledFile struct {
	RepoPath  string
	LocalPath string
}

// HasLocalPath reports whether the target location is known
func (f InstalledFile) HasLocalPath() bool {
	return f.LocalPath != ""
}

// FilesFromSchema lists one InstalledFile per CopyFile install operation,
// in schema order. Other kinds deposit nothing trackable.
func FilesFromSchema(s Schema) []InstalledFile {
	var files []InstalledFile
	for _, op := range s.Install {
		if cp, ok := op.(operations.CopyFile); ok {
			files = append(files, InstalledFile{RepoPath: cp.From, LocalPath: cp.To})
		}
	}
	return files
}

// TrackedFeature is a feature known on this machine
type TrackedFeature struct {
	name   string
	active bool
	schema Schema
}

// New creates a tracked feature
func New(name string, active bool, schema Schema) *TrackedFeature {
	return &TrackedFeature{name: name, active: active, schema: schema}
}

func (f *TrackedFeature) Name() string {
	return f.name
}

func (f *TrackedFeature) Active() bool {
	return f.active
}

// MarkActive flips the flag only; it installs nothing
func (f *TrackedFeature) MarkActive() {
	f.active = true
}

// MarkInactive flips the flag only; it removes nothing
func (f *TrackedFeature) MarkInactive() {
	f.active = false
}

func (f *TrackedFeature) Schema() Schema {
	return f.schema
}

// InsertSchema replaces the schema
func (f *TrackedFeature) InsertSchema(s Schema) {
	f.schema = s
}

// AppendInstall adds operations to the end of the install list
func (f *TrackedFeature) AppendInstall(ops ...operations.Operation) {
	f.schema.Install = append(cloneList(f.schema.Install), ops...)
}

// Files derives the installed files from the current schema
func (f *TrackedFeature) Files() []InstalledFile {
	return FilesFromSchema(f.schema)
}
