// Package runner provides the install runner shared by the commands.
package runner

import (
	"context"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/executor"
	"github.com/dotflex/dotflex/pkg/operations"
)

// Step is the outcome of one executed operation
type Step struct {
	Kind        operations.Kind
	Description string
	Err         error
}

// OK reports whether the step succeeded
func (s Step) OK() bool {
	return executor.Succeeded(s.Err)
}

// Failed reports whether any step failed
func Failed(steps []Step) bool {
	for _, s := range steps {
		if !s.OK() {
			return true
		}
	}
	return false
}

// Runner executes operations for an app and records a Step for each one
type Runner struct {
	app   *app.App
	exec  *executor.Executor
	steps []Step
}

// New creates a runner using the app's executor
func New(a *app.App) *Runner {
	return &Runner{app: a, exec: a.Executor()}
}

// Run resolves op for installation and executes it. It implements
// feature.Runner.
func (r *Runner) Run(ctx context.Context, op operations.Operation) error {
	return r.Execute(ctx, operations.ResolveForInstall(r.app.Roots, op))
}

// Execute runs an already concrete operation
func (r *Runner) Execute(ctx context.Context, op operations.Operation) error {
	err := r.exec.Execute(ctx, op)
	r.steps = append(r.steps, Step{
		Kind:        op.Kind(),
		Description: operations.Describe(r.app.Roots, op),
		Err:         err,
	})
	return err
}

// Steps returns the steps recorded so far
func (r *Runner) Steps() []Step {
	return r.steps
}

// Reset clears the recorded steps
func (r *Runner) Reset() {
	r.steps = nil
}
