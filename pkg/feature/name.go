package feature

import (
	"strings"

	"github.com/dotflex/dotflex/pkg/errors"
)

// ValidateName rejects names that cannot be used as a single directory
// under the features directory.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return errors.New(errors.ErrFeatureInvalid, "feature name is empty")
	case name == "." || name == "..":
		return errors.Newf(errors.ErrFeatureInvalid, "invalid feature name: %s", name).
			WithDetail("feature", name)
	case strings.ContainsAny(name, `/\`):
		return errors.Newf(errors.ErrFeatureInvalid, "feature name %s must not contain a path separator", name).
			WithDetail("feature", name)
	}
	return nil
}
