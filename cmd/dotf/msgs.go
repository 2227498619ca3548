package dotf

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Simple dotfile management"
	MsgStatusShort     = "Display the current status between home and repository"
	MsgDiffShort       = "Show diff between files that do not match"
	MsgDiffLong        = "Runs the diff command on every tracked file whose content differs between home and repository."
	MsgSyncShort       = "Sync home and repository files, home to repository by default"
	MsgEditShort       = "Edit the configuration file"
	MsgEditLong        = "Opens the configuration file in --editor, $EDITOR or vim."
	MsgGitShort        = "Run an arbitrary git command in the repository"
	MsgInitShort       = "Write a starter configuration file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgBootstrapped  = "%s not found, created a new one. Edit it with `dotf edit`.\n"
	MsgInitWritten   = "Wrote %s\n"
	MsgSyncCommitted = "Committed changes to %s\n"

	// Error messages
	MsgErrInitPaths      = "failed to initialize paths: %w"
	MsgErrLoadConfig     = "failed to load configuration: %w"
	MsgErrPushNeedCommit = "--push requires --commit"
	MsgErrRegexNeedOnly  = "--regex requires --only"
	MsgErrCommandNeedDif = "--diff-command requires --diff"
	MsgErrCommitToHome   = "--commit is only valid when copying files to the repository"

	// Flag descriptions
	MsgFlagVerbose       = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagLog           = "Log level (trace, debug, info, warn, error)"
	MsgFlagConfig        = "Configuration file (default $XDG_CONFIG_HOME/dotfiles.toml)"
	MsgFlagOnly          = "Only include files matching patterns specified. Pattern uses glob by default. Set --regex to use regular expressions."
	MsgFlagRegex         = "Use regular expressions in patterns specified in --only."
	MsgFlagBrief         = "Only display files that are not up to date."
	MsgFlagDiffCommand   = "Use as diff command (default: diff -u --color)"
	MsgFlagHome          = "Sync files from repository to home."
	MsgFlagDryRun        = "Confirm and report without writing anything."
	MsgFlagDiff          = "Display inline diffs before confirming each write."
	MsgFlagNoConfirm     = "Skip confirmation prompt."
	MsgFlagNoBackup      = "Do not create backups when copying to home."
	MsgFlagInteractive   = "Choose the files to sync from a list."
	MsgFlagIgnoreInvalid = "Skip invalid entries and files missing from the source side."
	MsgFlagCommit        = "Create a git commit after syncing files. Only valid when copying files to repository."
	MsgFlagPush          = "Run git push after commit."
	MsgFlagEditor        = "Editor to open the configuration with."
	MsgFlagYAML          = "Write the configuration as YAML."
	MsgFlagRepository    = "Repository directory (default: current directory)."
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/sync-long.txt
	msgSyncLongRaw string
	MsgSyncLong    = strings.TrimSpace(msgSyncLongRaw)

	//go:embed msgs/sync-example.txt
	msgSyncExampleRaw string
	MsgSyncExample    = strings.TrimRight(msgSyncExampleRaw, "\n")

	//go:embed msgs/git-long.txt
	msgGitLongRaw string
	MsgGitLong    = strings.TrimSpace(msgGitLongRaw)

	//go:embed msgs/init-long.txt
	msgInitLongRaw string
	MsgInitLong    = strings.TrimSpace(msgInitLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
