// Package feature models features: named groups of install operations.
//
// A Schema is the ordered list of operations stored in a feature's manifest.
// A TrackedFeature pairs a schema with the machine-local active flag, and a
// Registry holds every tracked feature by name.
//
// The active flag is bookkeeping only. Marking a feature active does not
// install it; callers run Schema.InstallFeature first and flip the flag on
// success. The list of installed files is always derived from the schema on
// read, so it cannot drift out of date.
package feature
