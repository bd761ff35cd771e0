// Package sync keeps the repository root in step with a git remote.
//
// Init creates the repository and registers the remote. Upsync stages every
// change, commits when there is something to commit and pushes. Downsync
// pulls and then runs a hook, which the CLI uses to install the active
// features; a failing hook fails the sync.
//
// Everything goes through go-git, so no git binary is required for local
// operations. Remote access uses go-git's transports.
package sync
