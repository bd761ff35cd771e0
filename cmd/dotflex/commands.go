package dotflex

import (
	"fmt"
	"strings"

	"github.com/dotflex/dotflex/internal/version"
	"github.com/dotflex/dotflex/pkg/commands"
	"github.com/dotflex/dotflex/pkg/errors"
	"github.com/dotflex/dotflex/pkg/paths"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func runStatus(cmd *cobra.Command, g *globalFlags) error {
	s, err := g.newSession(cmd)
	if err != nil {
		return err
	}

	result, err := commands.Status(s.app, commands.StatusOptions{})
	if err != nil {
		return fmt.Errorf(MsgErrStatus, err)
	}

	fmt.Fprint(s.out, s.renderer.RenderStatus(result, s.verbose))
	s.dryRunNotice()
	return nil
}

func newStatusCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, g)
		},
	}
}

// parseBindings turns TARGET or TARGET=REPO values into bindings
func parseBindings(values []string) ([]commands.Binding, error) {
	bindings := make([]commands.Binding, 0, len(values))
	for _, v := range values {
		target, repo, hasRepo := strings.Cut(v, "=")
		if target == "" || (hasRepo && repo == "") {
			return nil, errors.Newf(errors.ErrInvalidInput, MsgErrBadBinding, v)
		}
		bindings = append(bindings, commands.Binding{Target: target, Repo: repo})
	}
	return bindings, nil
}

func newBindCmd(g *globalFlags) *cobra.Command {
	var files []string

	cmd := &cobra.Command{
		Use:               "bind FEATURE",
		Short:             MsgBindShort,
		Long:              MsgBindLong,
		Example:           MsgBindExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: featureNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			bindings, err := parseBindings(files)
			if err != nil {
				return err
			}

			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			log.Info().Str("feature", args[0]).Int("files", len(bindings)).Msg("Binding files")

			result, err := commands.Bind(cmd.Context(), s.app, commands.BindOptions{
				Feature:  args[0],
				Bindings: bindings,
			})
			if result != nil && len(result.Steps) > 0 {
				s.line(MsgBinding)
				fmt.Fprint(s.out, s.renderer.RenderSteps(result.Steps))
			}
			if err != nil {
				return fmt.Errorf(MsgErrBind, err)
			}
			if result.Created {
				s.line(MsgCreatingFeature, result.Feature)
			}

			s.dryRunNotice()
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&files, "file", "f", nil, MsgFlagFile)
	return cmd
}

func newRebindCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "rebind FEATURE FILE...",
		Short:             MsgRebindShort,
		GroupID:           "core",
		Args:              cobra.MinimumNArgs(2),
		ValidArgsFunction: featureNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Rebind(cmd.Context(), s.app, commands.RebindOptions{
				Feature: args[0],
				Files:   args[1:],
			})
			if err != nil {
				return fmt.Errorf(MsgErrRebind, err)
			}

			s.line(MsgRebinding)
			fmt.Fprint(s.out, s.renderer.RenderSteps(result.Steps))
			for _, file := range result.Unbound {
				s.line(MsgCouldNotRebind, file)
			}

			s.dryRunNotice()
			if result.Failed() {
				return fmt.Errorf(MsgErrRebind, fmt.Errorf(MsgErrSteps, countFailed(result.Steps)))
			}
			return nil
		},
	}
}

func countFailed(steps []commands.Step) int {
	n := 0
	for _, st := range steps {
		if !st.OK() {
			n++
		}
	}
	return n
}

func newFeatureCmd(g *globalFlags) *cobra.Command {
	var enables, disables []string

	cmd := &cobra.Command{
		Use:     "feature",
		Short:   MsgFeatureShort,
		Long:    MsgFeatureLong,
		Example: MsgFeatureExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(enables) == 0 && len(disables) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgNothingToEnable)
			}

			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			failed := 0
			if len(enables) > 0 {
				result, err := commands.Enable(cmd.Context(), s.app, commands.EnableOptions{Features: enables})
				if err != nil {
					return fmt.Errorf(MsgErrEnable, err)
				}
				for _, fi := range result.Installed {
					s.line(MsgEnablingFeature, fi.Name)
					fmt.Fprint(s.out, s.renderer.RenderSteps(fi.Steps))
					if fi.Err != nil {
						failed++
						s.warn("%s", s.renderer.RenderError(fi.Err))
					}
				}
				for _, name := range result.AlreadyActive {
					s.line(MsgFeatureActive, name)
				}
				for _, name := range result.Unknown {
					s.warn(MsgNoSuchFeature, name)
				}
			}

			if len(disables) > 0 {
				result, err := commands.Disable(s.app, commands.DisableOptions{Features: disables})
				if err != nil {
					return fmt.Errorf(MsgErrDisable, err)
				}
				for _, name := range result.Disabled {
					s.line(MsgFeatureDisabled, name)
				}
				for _, name := range result.Unknown {
					s.warn(MsgNoSuchFeature, name)
				}
			}

			s.dryRunNotice()
			if failed > 0 {
				return fmt.Errorf(MsgErrEnable, fmt.Errorf(MsgErrFeatures, failed))
			}
			return nil
		},
	}

	cmd.Flags().StringArrayVarP(&enables, "enable", "e", nil, MsgFlagEnable)
	cmd.Flags().StringArrayVarP(&disables, "disable", "d", nil, MsgFlagDisable)
	_ = cmd.RegisterFlagCompletionFunc("enable", featureNamesCompletion(g))
	_ = cmd.RegisterFlagCompletionFunc("disable", featureNamesCompletion(g))
	return cmd
}

func newShowCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:               "show FEATURE",
		Short:             MsgShowShort,
		GroupID:           "core",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: featureNamesCompletion(g),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Show(s.app, commands.ShowOptions{Feature: args[0]})
			if err != nil {
				return fmt.Errorf(MsgErrShow, err)
			}

			fmt.Fprint(s.out, s.renderer.RenderMarkdown(result.Markdown))
			return nil
		},
	}
}

func newInitCmd(g *globalFlags) *cobra.Command {
	var remote string

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgSyncLong,
		GroupID: "sync",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if remote == "" {
				return errors.New(errors.ErrInvalidInput, MsgErrNoGitRemote)
			}

			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			if err := commands.Init(cmd.Context(), s.app, commands.InitOptions{Remote: remote}); err != nil {
				return fmt.Errorf(MsgErrInit, err)
			}
			s.line(MsgRepoInitialized, s.app.Roots.Dir(paths.Repo))
			return nil
		},
	}

	cmd.Flags().StringVar(&remote, "git", "", MsgFlagGit)
	return cmd
}

func newUpsyncCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "upsync",
		Short:   MsgUpsyncShort,
		Long:    MsgSyncLong,
		GroupID: "sync",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			if err := commands.Upsync(cmd.Context(), s.app); err != nil {
				return fmt.Errorf(MsgErrUpsync, err)
			}
			s.line(MsgUpsynced)
			return nil
		},
	}
}

func newDownsyncCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "downsync",
		Short:   MsgDownsyncShort,
		Long:    MsgSyncLong,
		GroupID: "sync",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := g.newSession(cmd)
			if err != nil {
				return err
			}

			result, err := commands.Downsync(cmd.Context(), s.app)
			if result != nil && len(result.Steps) > 0 {
				s.line(MsgDownsyncing)
				fmt.Fprint(s.out, s.renderer.RenderSteps(result.Steps))
			}
			if err != nil {
				return fmt.Errorf(MsgErrDownsync, err)
			}

			s.line(MsgDownsyncComplete)
			s.dryRunNotice()
			return nil
		},
	}
}

func newConfigCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			out, err := cfg.TOML()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(cmd.OutOrStdout(), true)
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
		},
	}
}

func newManCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "man [DIR]",
		Short:   MsgManShort,
		GroupID: "misc",
		Hidden:  true,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) == 1 {
				dir = args[0]
			}
			header := &doc.GenManHeader{
				Title:   "DOTFLEX",
				Section: "1",
			}
			return doc.GenManTree(cmd.Root(), header, dir)
		},
	}
}
