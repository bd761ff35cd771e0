// Package paths provides the virtual path namespace for dotflex.
//
// dotflex knows three roots:
//
//   - Repo ("@r"): the version-controlled repository, <config root>/REPO
//   - Local ("@l"): machine-local state, <config root>/LOCAL
//   - Target ("@t"): where dotfiles are installed, the home directory by default
//
// The config root defaults to ~/.dotflex. All roots are resolved once, when
// New is called, created if missing and canonicalized.
//
// A virtual path is either absolute, or starts with a root marker followed
// by a path relative to that root:
//
//	@r/features/zsh/.zshrc
//	@t/.zshrc
//
// Manifests store virtual paths so they can be installed on any machine.
//
// # Usage
//
//	roots, err := paths.New(paths.Options{})
//	if err != nil {
//	    return err
//	}
//
//	concrete := roots.Resolve(paths.Target, "@t/.zshrc")  // /home/user/.zshrc
//	virtual, _ := roots.Unresolve(concrete)               // @t/.zshrc
//	relative := roots.Resolve(paths.Repo, "features/zsh") // <config root>/REPO/features/zsh
//
// Unresolve checks roots in a fixed order (repo, local, target) so a repo
// nested under the home directory still maps to "@r".
package paths
