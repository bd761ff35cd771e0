// Package filesystem provides the filesystem helpers used by dotflex.
//
// Everything works on an afero.Fs so callers can run against the real disk
// (NewOS) or an in-memory filesystem in tests (NewMemory). The helpers cover
// the file-level side effects of operations: copying files and directory
// trees, appending one file to another, and creating parent directories.
package filesystem
