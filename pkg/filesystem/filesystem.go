package filesystem

import (
	"io"
	"os"
	"path/filepath"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/spf13/afero"
)

// DirPerm is the mode used for directories created by dotflex
const DirPerm os.FileMode = 0755

// NewOS returns a filesystem backed by the real disk
func NewOS() afero.Fs {
	return afero.NewOsFs()
}

// NewMemory returns an empty in-memory filesystem
func NewMemory() afero.Fs {
	return afero.NewMemMapFs()
}

// Exists reports whether anything exists at path
func Exists(fs afero.Fs, path string) bool {
	_, err := fs.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory
func IsDir(fs afero.Fs, path string) bool {
	info, err := fs.Stat(path)
	return err == nil && info.IsDir()
}

// EnsureParent creates the parent directory tree of path
func EnsureParent(fs afero.Fs, path string) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", dir).
			WithDetail("path", dir)
	}
	return nil
}

// Copy copies src to dst. Directories are copied recursively, regular files
// byte for byte. Parent directories of dst are created as needed.
func Copy(fs afero.Fs, src, dst string) error {
	info, err := fs.Stat(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", src).
			WithDetail("path", src)
	}
	if err := EnsureParent(fs, dst); err != nil {
		return err
	}
	if info.IsDir() {
		return CopyTree(fs, src, dst)
	}
	return CopyFile(fs, src, dst, info.Mode().Perm())
}

// CopyFile copies a single regular file, truncating dst
func CopyFile(fs afero.Fs, src, dst string, perm os.FileMode) error {
	in, err := fs.Open(src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot open %s", src).
			WithDetail("path", src)
	}
	defer func() { _ = in.Close() }()

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot open %s for writing", dst).
			WithDetail("path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to copy %s to %s", src, dst).
			WithDetail("source", src).
			WithDetail("destination", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", dst).
			WithDetail("path", dst)
	}
	return nil
}

// CopyTree copies the directory src into dst, keeping file modes.
// Existing files in dst are overwritten; extra files are left alone.
func CopyTree(fs afero.Fs, src, dst string) error {
	return afero.Walk(fs, src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", path).
				WithDetail("path", path)
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return errors.Wrap(err, errors.ErrInternal, "walk escaped source tree")
		}
		target := filepath.Join(dst, rel)

		if info.IsDir() {
			if err := fs.MkdirAll(target, info.Mode().Perm()|0700); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create directory %s", target).
					WithDetail("path", target)
			}
			return nil
		}
		return CopyFile(fs, path, target, info.Mode().Perm())
	})
}

// Append writes the full contents of src to the end of dst, creating dst
// if it does not exist
func Append(fs afero.Fs, src, dst string) error {
	data, err := afero.ReadFile(fs, src)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read %s", src).
			WithDetail("path", src)
	}

	out, err := fs.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "cannot open %s for appending", dst).
			WithDetail("path", dst)
	}

	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to append to %s", dst).
			WithDetail("path", dst)
	}
	if err := out.Close(); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to close %s", dst).
			WithDetail("path", dst)
	}
	return nil
}

// WriteFile writes data to path, creating parent directories first
func WriteFile(fs afero.Fs, path string, data []byte) error {
	if err := EnsureParent(fs, path); err != nil {
		return err
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", path).
			WithDetail("path", path)
	}
	return nil
}
