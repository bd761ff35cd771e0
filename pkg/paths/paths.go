package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/dotflex/dotflex/pkg/errors"
	homedir "github.com/mitchellh/go-homedir"
)

// Default directories
// IMPORTANT: these are the fallbacks used when the configuration leaves a
// value empty. User-facing overrides live in pkg/config.
const (
	// DefaultConfigDirName is the config root created under the home directory
	DefaultConfigDirName = ".dotflex"

	// DefaultLocalDir is the subdirectory of the config root for local state
	DefaultLocalDir = "LOCAL"

	// DefaultRepoDir is the subdirectory of the config root for the repository
	DefaultRepoDir = "REPO"
)

// Root names one of the three well-known base directories
type Root int

const (
	Repo Root = iota
	Local
	Target
)

// unresolveOrder is the fixed priority used when roots are nested
var unresolveOrder = []Root{Repo, Local, Target}

// Marker returns the prefix used for the root in virtual paths
func (r Root) Marker() string {
	switch r {
	case Repo:
		return "@r"
	case Local:
		return "@l"
	case Target:
		return "@t"
	default:
		return ""
	}
}

func (r Root) String() string {
	switch r {
	case Repo:
		return "repo"
	case Local:
		return "local"
	case Target:
		return "target"
	default:
		return "unknown"
	}
}

// Options selects the root directories. Empty fields use the defaults.
type Options struct {
	ConfigRoot string
	TargetRoot string
	LocalDir   string
	RepoDir    string
}

// Roots holds the canonical root directories for this process
type Roots struct {
	config string
	repo   string
	local  string
	target string
}

// New resolves, creates and canonicalizes the root directories.
// Any failure is a configuration error: there is no way to proceed
// without a valid path namespace.
func New(opts Options) (*Roots, error) {
	configRoot := opts.ConfigRoot
	if configRoot == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigPaths, "no home directory found")
		}
		configRoot = filepath.Join(home, DefaultConfigDirName)
	}

	targetRoot := opts.TargetRoot
	if targetRoot == "" {
		home, err := homedir.Dir()
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigPaths, "no home directory found")
		}
		targetRoot = home
	}

	localDir := opts.LocalDir
	if localDir == "" {
		localDir = DefaultLocalDir
	}
	repoDir := opts.RepoDir
	if repoDir == "" {
		repoDir = DefaultRepoDir
	}

	r := &Roots{}
	var err error
	if r.config, err = ensureDir(configRoot); err != nil {
		return nil, err
	}
	if r.repo, err = ensureDir(filepath.Join(r.config, repoDir)); err != nil {
		return nil, err
	}
	if r.local, err = ensureDir(filepath.Join(r.config, localDir)); err != nil {
		return nil, err
	}
	if r.target, err = ensureDir(targetRoot); err != nil {
		return nil, err
	}
	return r, nil
}

// ensureDir expands ~, creates the directory if missing and returns its
// canonical absolute form
func ensureDir(dir string) (string, error) {
	expanded, err := homedir.Expand(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigPaths, "could not expand path %s", dir).
			WithDetail("path", dir)
	}

	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigPaths, "could not make path absolute: %s", expanded).
			WithDetail("path", expanded)
	}

	if _, err := os.Stat(abs); os.IsNotExist(err) {
		if err := os.MkdirAll(abs, 0755); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigPaths, "directory %s does not exist and cannot be created", abs).
				WithDetail("path", abs)
		}
	}

	canonical, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigPaths, "could not canonicalize path %s", abs).
			WithDetail("path", abs)
	}
	return canonical, nil
}

// ConfigDir returns the config root holding the local and repo roots
func (r *Roots) ConfigDir() string {
	return r.config
}

// Dir returns the concrete directory for a root
func (r *Roots) Dir(root Root) string {
	switch root {
	case Repo:
		return r.repo
	case Local:
		return r.local
	case Target:
		return r.target
	default:
		return ""
	}
}

// RepoPath joins elements onto the repository root
func (r *Roots) RepoPath(elem ...string) string {
	return filepath.Join(append([]string{r.repo}, elem...)...)
}

// LocalPath joins elements onto the local-state root
func (r *Roots) LocalPath(elem ...string) string {
	return filepath.Join(append([]string{r.local}, elem...)...)
}

// TargetPath joins elements onto the target root
func (r *Roots) TargetPath(elem ...string) string {
	return filepath.Join(append([]string{r.target}, elem...)...)
}

// Resolve turns a virtual path into a concrete one. Absolute paths are
// returned as-is, marked paths are rebased onto their root, and anything
// else is joined onto def.
func (r *Roots) Resolve(def Root, p string) string {
	if resolved, ok := r.ResolveMarked(p); ok {
		return resolved
	}
	return filepath.Join(r.Dir(def), p)
}

// ResolveMarked resolves absolute and marked paths only. Plain relative
// paths are ambiguous without a default root and report false.
func (r *Roots) ResolveMarked(p string) (string, bool) {
	if filepath.IsAbs(p) {
		return p, true
	}
	if root, rest, ok := SplitMarker(p); ok {
		return filepath.Join(r.Dir(root), rest), true
	}
	return "", false
}

// Unresolve turns an absolute path into its virtual form. The first root
// containing the path wins, in the order repo, local, target. Paths outside
// every root come back unchanged. Relative input reports false.
func (r *Roots) Unresolve(p string) (string, bool) {
	if !filepath.IsAbs(p) {
		return "", false
	}
	for _, root := range unresolveOrder {
		if rel, ok := within(r.Dir(root), p); ok {
			if rel == "." {
				return root.Marker(), true
			}
			return filepath.Join(root.Marker(), rel), true
		}
	}
	return p, true
}

// Virtual returns the virtual form of p when it is absolute and p itself
// otherwise. It is meant for display.
func (r *Roots) Virtual(p string) string {
	if v, ok := r.Unresolve(p); ok {
		return v
	}
	return p
}

// Contains reports whether p lies under the given root
func (r *Roots) Contains(root Root, p string) bool {
	_, ok := within(r.Dir(root), p)
	return ok
}

// RelativeTo returns p relative to the given root
func (r *Roots) RelativeTo(root Root, p string) (string, bool) {
	return within(r.Dir(root), p)
}

// SplitMarker splits a marked virtual path into its root and remainder
func SplitMarker(p string) (Root, string, bool) {
	for _, root := range unresolveOrder {
		marker := root.Marker()
		if p == marker {
			return root, "", true
		}
		if strings.HasPrefix(p, marker+"/") || strings.HasPrefix(p, marker+string(filepath.Separator)) {
			return root, p[len(marker)+1:], true
		}
	}
	return 0, "", false
}

// IsMarked reports whether p starts with a root marker
func IsMarked(p string) bool {
	_, _, ok := SplitMarker(p)
	return ok
}

// within reports whether p is base or lies under it, component-wise
func within(base, p string) (string, bool) {
	if base == "" || !filepath.IsAbs(p) {
		return "", false
	}
	rel, err := filepath.Rel(base, p)
	if err != nil {
		return "", false
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}
