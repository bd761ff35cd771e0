// Package testutil provides utilities for testing dotflex components.
//
// Key components:
//   - TestEnvironment: temporary roots, a filesystem, a datastore and an
//     App wired together, cleaned up with the test
//   - FileTree: declarative file layout for the target or repository
//   - file helpers for assertions against the real disk
//
// Roots are always real temporary directories because pkg/paths creates
// and canonicalizes them. EnvMemoryOnly keeps file contents in an afero
// memory filesystem under those paths; EnvIsolated writes to disk, which
// tests running shell operations need.
package testutil
