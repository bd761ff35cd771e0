package feature

import (
	"context"
	"reflect"

	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/operations"
)

// Schema is the manifest content of one feature
type Schema struct {
	Install   operations.List `yaml:"install"`
	Uninstall operations.List `yaml:"uninstall"`
}

// NewSchema builds a schema with the given install operations
func NewSchema(install ...operations.Operation) Schema {
	return Schema{Install: operations.List(install)}
}

// Runner executes a single operation
type Runner interface {
	Run(ctx context.Context, op operations.Operation) error
}

// RunnerFunc adapts a function to Runner
type RunnerFunc func(ctx context.Context, op operations.Operation) error

// Run implements Runner
func (f RunnerFunc) Run(ctx context.Context, op operations.Operation) error {
	return f(ctx, op)
}

// InstallFeature runs the install operations in order and stops at the
// first failure. Operations that already ran are not rolled back.
func (s Schema) InstallFeature(ctx context.Context, run Runner) error {
	for i, op := range s.Install {
		if err := run.Run(ctx, op); err != nil {
			return errors.Wrapf(err, errors.ErrInstallFailed, "install step %d (%s) failed", i+1, op.Kind()).
				WithDetail("step", i+1).
				WithDetail("kind", op.Kind().String())
		}
	}
	return nil
}

// UninstallFeature is not supported. It always fails so callers can tell
// it apart from a successful no-op.
func (s Schema) UninstallFeature(ctx context.Context, run Runner) error {
	return errors.New(errors.ErrNotSupported, "uninstalling a feature is not supported").
		WithDetail("operations", len(s.Uninstall))
}

// Clone returns a copy whose operation lists can be changed independently
func (s Schema) Clone() Schema {
	return Schema{
		Install:   cloneList(s.Install),
		Uninstall: cloneList(s.Uninstall),
	}
}

// Equal compares two schemas operation by operation. Nil and empty lists
// are equal.
func (s Schema) Equal(other Schema) bool {
	return listEqual(s.Install, other.Install) && listEqual(s.Uninstall, other.Uninstall)
}

func cloneList(in operations.List) operations.List {
	if len(in) == 0 {
		return nil
	}
	out := make(operations.List, len(in))
	copy(out, in)
	return out
}

func listEqual(a, b operations.List) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !reflect.DeepEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}
