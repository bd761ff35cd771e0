// Package commands provides high-level command implementations for dotflex.
//
// This package contains the command orchestration layer that coordinates
// between the CLI interface and the feature, datastore and executor
// packages.
//
// Each command is implemented in its own subdirectory:
//   - status/   - Status command
//   - bind/     - Bind command
//   - rebind/   - Rebind command
//   - enable/   - Enable command
//   - disable/  - Disable command
//   - show/     - Show command
//   - sync/     - Init, Upsync and Downsync commands
//   - internal/ - Shared install runner
//
// This file serves as the main entry point and re-exports all command functions.
package commands

import (
	"context"

	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/commands/bind"
	"github.com/dotflex/dotflex/pkg/commands/disable"
	"github.com/dotflex/dotflex/pkg/commands/enable"
	"github.com/dotflex/dotflex/pkg/commands/internal/runner"
	"github.com/dotflex/dotflex/pkg/commands/rebind"
	"github.com/dotflex/dotflex/pkg/commands/show"
	"github.com/dotflex/dotflex/pkg/commands/status"
	synccmd "github.com/dotflex/dotflex/pkg/commands/sync"
)

// Step is the outcome of one executed operation.
type Step = runner.Step

// Status reconciles and reports every tracked feature.
type StatusOptions = status.StatusOptions
type StatusResult = status.StatusResult
type FeatureStatus = status.FeatureStatus
type FileStatus = status.FileStatus

// NoTargetPath is shown for installed files without a known target.
const NoTargetPath = status.NoTargetPath

func Status(a *app.App, opts StatusOptions) (*StatusResult, error) {
	return status.Status(a, opts)
}

// Bind copies target files into a feature.
type Binding = bind.Binding
type BindOptions = bind.BindOptions
type BindResult = bind.BindResult

func Bind(ctx context.Context, a *app.App, opts BindOptions) (*BindResult, error) {
	return bind.Bind(ctx, a, opts)
}

// Rebind copies changed target files back into their feature.
type RebindOptions = rebind.RebindOptions
type RebindResult = rebind.RebindResult

func Rebind(ctx context.Context, a *app.App, opts RebindOptions) (*RebindResult, error) {
	return rebind.Rebind(ctx, a, opts)
}

// Enable installs features and marks them active.
type EnableOptions = enable.EnableOptions
type EnableResult = enable.EnableResult
type FeatureInstall = enable.FeatureInstall

func Enable(ctx context.Context, a *app.App, opts EnableOptions) (*EnableResult, error) {
	return enable.Enable(ctx, a, opts)
}

// Disable marks features inactive.
type DisableOptions = disable.DisableOptions
type DisableResult = disable.DisableResult

func Disable(a *app.App, opts DisableOptions) (*DisableResult, error) {
	return disable.Disable(a, opts)
}

// Show summarizes a feature's install operations.
type ShowOptions = show.ShowOptions
type ShowResult = show.ShowResult

func Show(a *app.App, opts ShowOptions) (*ShowResult, error) {
	return show.Show(a, opts)
}

// Init, Upsync and Downsync synchronize the repository through git.
type InitOptions = synccmd.InitOptions
type DownsyncResult = synccmd.DownsyncResult

func Init(ctx context.Context, a *app.App, opts InitOptions) error {
	return synccmd.Init(ctx, a, opts)
}

func Upsync(ctx context.Context, a *app.App) error {
	return synccmd.Upsync(ctx, a)
}

func Downsync(ctx context.Context, a *app.App) (*DownsyncResult, error) {
	return synccmd.Downsync(ctx, a)
}
