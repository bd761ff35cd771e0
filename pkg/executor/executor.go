package executor

import (
	"bytes"
	"context"
	stderrors "errors"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/filesystem"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/operations"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// Options contains configuration for the executor
type Options struct {
	// FS is used for file operations and viability checks
	FS afero.Fs
	// Shell selects the interpreter for ShellString operations
	Shell config.Shell
	// DryRun logs operations without performing them
	DryRun bool
	// Verbose echoes child process output to Out
	Verbose bool
	Out     io.Writer
	Logger  zerolog.Logger
}

// Executor performs concrete operations
type Executor struct {
	fs      afero.Fs
	shell   config.Shell
	dryRun  bool
	verbose bool
	out     io.Writer
	logger  zerolog.Logger
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := opts.Logger
	if logger.GetLevel() == zerolog.Disabled {
		logger = logging.GetLogger("executor")
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	shell := opts.Shell
	if shell.Interpreter == "" {
		shell = config.Default().Shell
	}

	out := opts.Out
	if out == nil {
		out = io.Discard
	}

	return &Executor{
		fs:      fs,
		shell:   shell,
		dryRun:  opts.DryRun,
		verbose: opts.Verbose,
		out:     out,
		logger:  logger,
	}
}

// Execute performs op. A non-viable operation returns an ErrNotViable error
// without anything being attempted.
func (e *Executor) Execute(ctx context.Context, op operations.Operation) error {
	start := time.Now()

	e.logger.Debug().
		Str("kind", op.Kind().String()).
		Str("description", operations.Describe(nil, op)).
		Bool("dry_run", e.dryRun).
		Msg("Executing operation")

	if !operations.Viable(e.fs, op) {
		e.logger.Warn().
			Str("kind", op.Kind().String()).
			Str("description", operations.Describe(nil, op)).
			Msg("Operation is not viable")
		return errors.Newf(errors.ErrNotViable, "%s is not viable", op.Kind()).
			WithDetail("operation", operations.Describe(nil, op))
	}

	if e.dryRun {
		e.logger.Info().
			Str("kind", op.Kind().String()).
			Msg("Dry run - no changes made")
		return nil
	}

	run := &runner{ctx: ctx, e: e}
	if err := op.Accept(run); err != nil {
		e.logger.Error().
			Err(err).
			Str("kind", op.Kind().String()).
			Msg("Operation execution failed")
		return err
	}

	e.logger.Info().
		Str("kind", op.Kind().String()).
		Dur("duration", time.Since(start)).
		Msg("Operation executed successfully")
	return nil
}

// Succeeded is the boolean view of an Execute result
func Succeeded(err error) bool {
	return err == nil
}

// runner dispatches each operation kind to its side effect
type runner struct {
	ctx context.Context
	e   *Executor
}

func (r *runner) VisitCopyFile(op operations.CopyFile) error {
	return filesystem.Copy(r.e.fs, op.From, op.To)
}

func (r *runner) VisitAppendToFile(op operations.AppendToFile) error {
	return filesystem.Append(r.e.fs, op.From, op.To)
}

func (r *runner) VisitShellString(op operations.ShellString) error {
	args := []string{}
	if r.e.shell.Flag != "" {
		args = append(args, r.e.shell.Flag)
	}
	args = append(args, op.Cmd)
	return r.e.runProcess(r.ctx, r.e.shell.Interpreter, args...)
}

func (r *runner) VisitShellFile(op operations.ShellFile) error {
	return r.e.runProcess(r.ctx, op.Cmd.File(), op.Cmd.Args()...)
}

// runProcess runs a child process to completion. Success is exit status 0.
func (e *Executor) runProcess(ctx context.Context, name string, args ...string) error {
	logging.LogCommand(e.logger, name, args)
	done := logging.LogOperationStart(e.logger, name)
	defer done()

	cmd := exec.CommandContext(ctx, name, args...)

	var output bytes.Buffer
	if e.verbose {
		cmd.Stdout = io.MultiWriter(&output, e.out)
		cmd.Stderr = io.MultiWriter(&output, e.out)
	} else {
		cmd.Stdout = &output
		cmd.Stderr = &output
	}

	err := cmd.Run()

	e.logger.Debug().
		Str("command", name).
		Str("output", strings.TrimSpace(output.String())).
		Msg("Process finished")

	if err == nil {
		return nil
	}

	wrapped := errors.Wrapf(err, errors.ErrActionExecute, "command %s failed", name).
		WithDetail("command", name).
		WithDetail("args", args)

	var exitErr *exec.ExitError
	if stderrors.As(err, &exitErr) {
		wrapped = wrapped.WithDetail("exit_code", exitErr.ExitCode())
	}
	return wrapped
}
