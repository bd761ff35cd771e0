// Package executor runs resolved operations.
//
// The executor takes an operation whose paths are already concrete (see
// operations.ResolveForInstall), checks its viability and performs the side
// effect: copying or appending files through an afero.Fs, or starting a
// child process. Every failure is returned as an error; nothing in this
// package terminates the process. Effects attached to shell operations are
// never consulted.
package executor
