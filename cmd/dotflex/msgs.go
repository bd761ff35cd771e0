package dotflex

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Manages your dotfiles across machines"
	MsgStatusShort     = "Show the target and config directories and every feature"
	MsgBindShort       = "Bind files on this machine into a feature"
	MsgRebindShort     = "Copy changed bound files back into their feature"
	MsgFeatureShort    = "Enable or disable features"
	MsgShowShort       = "Summarize what installing a feature would do"
	MsgInitShort       = "Set up the repository and its remote"
	MsgUpsyncShort     = "Commit and push the repository"
	MsgDownsyncShort   = "Pull the repository and reinstall enabled features"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgDryRunNotice     = "\nDRY RUN MODE - No changes were made"
	MsgBinding          = "binding..."
	MsgRebinding        = "rebinding..."
	MsgCreatingFeature  = "creating new feature %s..."
	MsgEnablingFeature  = "Enabling feature %s:"
	MsgFeatureActive    = "feature %s is already enabled"
	MsgFeatureDisabled  = "disabled feature %s"
	MsgNoSuchFeature    = "no such feature: %s"
	MsgCouldNotRebind   = "-- couldn't rebind: %s"
	MsgRepoInitialized  = "initialized repository at %s"
	MsgUpsynced         = "upsync complete"
	MsgDownsyncing      = "installing enabled features..."
	MsgNothingToEnable  = "no features given: use -e to enable or -d to disable"
	MsgDownsyncComplete = "downsync complete"

	// Error messages
	MsgErrStatus      = "failed to get status: %w"
	MsgErrBind        = "failed to bind files: %w"
	MsgErrRebind      = "failed to rebind files: %w"
	MsgErrEnable      = "failed to enable features: %w"
	MsgErrDisable     = "failed to disable features: %w"
	MsgErrShow        = "failed to show feature: %w"
	MsgErrInit        = "could not initialize git repository: %w"
	MsgErrUpsync      = "failed to upsync: %w"
	MsgErrDownsync    = "failed to downsync: %w"
	MsgErrSteps       = "%d operation(s) failed"
	MsgErrFeatures    = "%d feature(s) failed to install"
	MsgErrBadBinding  = "invalid binding %q: expected TARGET or TARGET=REPO"
	MsgErrBadFormat   = "invalid --format: %w"
	MsgErrNoGitRemote = "no value given for --git"

	// Flag descriptions
	MsgFlagVerbose    = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun     = "Preview changes without executing them"
	MsgFlagConfigRoot = "Config root holding the repository and local state (default ~/.dotflex)"
	MsgFlagTarget     = "Target root files are installed into (default the home directory)"
	MsgFlagSettings   = "Settings file (default $XDG_CONFIG_HOME/dotflex/config.toml)"
	MsgFlagFormat     = "Output format: auto, term or text"
	MsgFlagFile       = "File to bind, as TARGET or TARGET=REPO (repeatable)"
	MsgFlagEnable     = "Feature to enable (repeatable)"
	MsgFlagDisable    = "Feature to disable (repeatable)"
	MsgFlagGit        = "URL of the git remote"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/bind-long.txt
	msgBindLongRaw string
	MsgBindLong    = strings.TrimSpace(msgBindLongRaw)

	//go:embed msgs/bind-example.txt
	msgBindExampleRaw string
	MsgBindExample    = strings.TrimRight(msgBindExampleRaw, "\n")

	//go:embed msgs/feature-long.txt
	msgFeatureLongRaw string
	MsgFeatureLong    = strings.TrimSpace(msgFeatureLongRaw)

	//go:embed msgs/feature-example.txt
	msgFeatureExampleRaw string
	MsgFeatureExample    = strings.TrimRight(msgFeatureExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)
)

var (
	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
