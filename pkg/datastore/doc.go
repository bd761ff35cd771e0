// Package datastore persists dotflex state on the filesystem.
//
// Two documents are managed:
//
//   - the registry, <local root>/features.yml, holding the active flag of
//     every feature on this machine
//   - one manifest per feature, <repo root>/features/<name>/manifest.yml,
//     holding the feature's operation schema
//
// Both are YAML. A missing registry reads as an empty one. Any other read,
// parse or write failure is returned with the offending path in its
// details; the CLI treats these as fatal.
package datastore
