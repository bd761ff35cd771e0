// Package operations defines the declarative actions a feature performs.
//
// There are exactly four kinds of operation:
//
//   - CopyFile: copy a file or directory tree
//   - AppendToFile: append the contents of one file to another
//   - ShellString: run a command line through the shell interpreter
//   - ShellFile: run an executable with arguments
//
// Operations are values. They carry virtual paths (see pkg/paths) while
// stored in a manifest and concrete paths once resolved for execution.
// ShellString and ShellFile may carry Effects, advisory metadata describing
// which paths the command generates, clobbers or deletes. Nothing reads
// Effects to decide behavior; they feed dry-run output and summaries.
//
// The set of kinds is closed. Code that must treat every kind implements
// Visitor, so adding a kind is a compile-time change for all of them.
// This package implements viability checks, descriptions, path
// resolution and the manifest codec as visitors; pkg/executor does the
// same for execution.
package operations
