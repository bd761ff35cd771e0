package dotflex

import (
	"fmt"
	"io"

	"github.com/dotflex/dotflex/internal/version"
	"github.com/dotflex/dotflex/pkg/app"
	"github.com/dotflex/dotflex/pkg/config"
	"github.com/dotflex/dotflex/pkg/logging"
	"github.com/dotflex/dotflex/pkg/reconcile"
	"github.com/dotflex/dotflex/pkg/style"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags of the root command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configRoot string
	target     string
	settings   string
	format     string
	closeLog   func()
}

// loadConfig reads the layered configuration with the root flags applied
// last
func (g *globalFlags) loadConfig() (*config.Config, error) {
	return config.Load(config.LoadOptions{
		File: g.settings,
		Overrides: map[string]interface{}{
			"paths.config": g.configRoot,
			"paths.target": g.target,
		},
	})
}

// session is what a command needs to run and report
type session struct {
	app      *app.App
	renderer style.Renderer
	out      io.Writer
	errOut   io.Writer
	verbose  bool
}

func (g *globalFlags) newSession(cmd *cobra.Command) (*session, error) {
	format, err := style.ParseFormat(g.format)
	if err != nil {
		return nil, fmt.Errorf(MsgErrBadFormat, err)
	}

	cfg, err := g.loadConfig()
	if err != nil {
		return nil, err
	}

	out := cmd.OutOrStdout()
	a, err := app.New(app.Options{
		Config:  cfg,
		Out:     out,
		Verbose: g.verbosity > 0,
		DryRun:  g.dryRun,
	})
	if err != nil {
		return nil, err
	}

	return &session{
		app:      a,
		renderer: style.NewRenderer(style.Resolve(format, out)),
		out:      out,
		errOut:   cmd.ErrOrStderr(),
		verbose:  g.verbosity > 0,
	}, nil
}

func (s *session) line(format string, args ...interface{}) {
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *session) warn(format string, args ...interface{}) {
	fmt.Fprintf(s.errOut, format+"\n", args...)
}

func (s *session) dryRunNotice() {
	if s.app.DryRun {
		fmt.Fprintln(s.out, MsgDryRunNotice)
	}
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "dotflex",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			g.closeLog = logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if g.closeLog != nil {
				g.closeLog()
			}
		},
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, g)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&g.configRoot, "config-root", "", MsgFlagConfigRoot)
	pf.StringVar(&g.target, "target", "", MsgFlagTarget)
	pf.StringVar(&g.settings, "settings", "", MsgFlagSettings)
	pf.StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "sync", Title: "SYNC:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newStatusCmd(g))
	rootCmd.AddCommand(newBindCmd(g))
	rootCmd.AddCommand(newRebindCmd(g))
	rootCmd.AddCommand(newFeatureCmd(g))
	rootCmd.AddCommand(newShowCmd(g))
	rootCmd.AddCommand(newInitCmd(g))
	rootCmd.AddCommand(newUpsyncCmd(g))
	rootCmd.AddCommand(newDownsyncCmd(g))
	rootCmd.AddCommand(newConfigCmd(g))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	return rootCmd
}

// featureNamesCompletion provides shell completion for feature names
func featureNamesCompletion(g *globalFlags) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		s, err := g.newSession(cmd)
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		// completion must never write to the repository
		merged, err := reconcile.New(s.app.Store, reconcile.Options{DryRun: true}).Reconcile()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		given := make(map[string]bool, len(args))
		for _, arg := range args {
			given[arg] = true
		}

		var names []string
		for _, name := range merged.Registry.Names() {
			if !given[name] {
				names = append(names, name)
			}
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	}
}
