package dotf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dotf/internal/version"
	"github.com/arthur-debert/dotf/pkg/commands"
	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// filterFlags are shared by status, diff and sync
type filterFlags struct {
	only  []string
	regex bool
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.only, "only", "o", nil, MsgFlagOnly)
	cmd.Flags().BoolVarP(&f.regex, "regex", "r", false, MsgFlagRegex)
}

func (f *filterFlags) filter() commands.Filter {
	filter := commands.Filter{Only: f.only}
	if f.regex {
		filter.Syntax = matchers.SyntaxRegex
	}
	return filter
}

func newStatusCmd(g *globalOptions) *cobra.Command {
	var (
		ff    filterFlags
		brief bool
	)

	cmd := &cobra.Command{
		Use:     "status",
		Aliases: []string{"st"},
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := loadEnv(cmd, g)
			if err != nil || !ok {
				return err
			}

			counts, err := commands.Status(env, commands.StatusOptions{Filter: ff.filter(), Brief: brief})
			if err != nil {
				return err
			}
			log.Info().Interface("counts", counts).Msg("Status shown")
			return nil
		},
	}

	ff.register(cmd)
	cmd.Flags().BoolVarP(&brief, "brief", "b", false, MsgFlagBrief)
	return cmd
}

func newDiffCmd(g *globalOptions) *cobra.Command {
	var (
		ff          filterFlags
		diffCommand string
	)

	cmd := &cobra.Command{
		Use:     "diff",
		Short:   MsgDiffShort,
		Long:    MsgDiffLong,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			var command []string
			if cmd.Flags().Changed("diff-command") {
				parsed, err := runner.ParseCommand(diffCommand)
				if err != nil {
					return err
				}
				command = parsed
			}

			env, ok, err := loadEnv(cmd, g)
			if err != nil || !ok {
				return err
			}
			return commands.Diff(env, commands.DiffOptions{Filter: ff.filter(), Command: command})
		},
	}

	ff.register(cmd)
	cmd.Flags().StringVar(&diffCommand, "diff-command", "", MsgFlagDiffCommand)
	return cmd
}

// syncFlags holds the sync command line
type syncFlags struct {
	filterFlags
	home          bool
	dryRun        bool
	showDiff      bool
	diffCommand   string
	noConfirm     bool
	noBackup      bool
	interactive   bool
	ignoreInvalid bool
	commit        string
	push          bool
}

// validate reports flag combinations that make no sense together
func (f *syncFlags) validate(cmd *cobra.Command) error {
	switch {
	case f.push && f.commit == "":
		return errors.New(MsgErrPushNeedCommit)
	case f.regex && len(f.only) == 0:
		return errors.New(MsgErrRegexNeedOnly)
	case cmd.Flags().Changed("diff-command") && !f.showDiff:
		return errors.New(MsgErrCommandNeedDif)
	case f.home && f.commit != "":
		return errors.New(MsgErrCommitToHome)
	}
	return nil
}

func (f *syncFlags) apply(cmd *cobra.Command, opts *commands.SyncOptions) error {
	opts.Filter = f.filter()
	opts.ToHome = f.home
	opts.DryRun = f.dryRun
	opts.ShowDiff = f.showDiff
	opts.Interactive = f.interactive
	opts.IgnoreInvalid = f.ignoreInvalid
	opts.Commit = f.commit
	opts.Push = f.push
	if f.noConfirm {
		opts.Confirm = false
	}
	if f.noBackup {
		opts.Backup = false
	}
	if cmd.Flags().Changed("diff-command") {
		command, err := runner.ParseCommand(f.diffCommand)
		if err != nil {
			return err
		}
		opts.DiffCommand = command
	}
	return nil
}

func newSyncCmd(g *globalOptions) *cobra.Command {
	f := &syncFlags{}

	cmd := &cobra.Command{
		Use:     "sync",
		Short:   MsgSyncShort,
		Long:    MsgSyncLong,
		Example: MsgSyncExample,
		Args:    cobra.NoArgs,
		GroupID: "core",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(cmd); err != nil {
				return err
			}

			env, ok, err := loadEnv(cmd, g)
			if err != nil || !ok {
				return err
			}

			opts := commands.SyncOptions{Options: commands.DefaultSyncOptions(env.Config)}
			if err := f.apply(cmd, &opts); err != nil {
				return err
			}

			logger := logging.GetLogger("cmd.sync")
			logger.Info().
				Bool("home", opts.ToHome).
				Bool("dryrun", opts.DryRun).
				Strs("only", f.only).
				Msg("Starting sync")

			result, err := commands.Sync(env, opts)
			if err != nil {
				return err
			}

			if result.Committed {
				env.Output.Printf(MsgSyncCommitted, env.Output.Path(env.Config.Repository))
			}
			log.Info().
				Int("written", len(result.Written)).
				Int("declined", len(result.Declined)).
				Int("ignored", len(result.Ignored)).
				Msg("Sync finished")
			return nil
		},
	}

	f.register(cmd)
	flags := cmd.Flags()
	flags.BoolVar(&f.home, "home", false, MsgFlagHome)
	flags.BoolVar(&f.dryRun, "dryrun", false, MsgFlagDryRun)
	flags.BoolVar(&f.showDiff, "diff", false, MsgFlagDiff)
	flags.StringVar(&f.diffCommand, "diff-command", "", MsgFlagDiffCommand)
	flags.BoolVarP(&f.noConfirm, "no-confirm", "y", false, MsgFlagNoConfirm)
	flags.BoolVar(&f.noBackup, "no-backup", false, MsgFlagNoBackup)
	flags.BoolVarP(&f.interactive, "interactive", "i", false, MsgFlagInteractive)
	flags.BoolVar(&f.ignoreInvalid, "ignore-invalid", false, MsgFlagIgnoreInvalid)
	flags.StringVarP(&f.commit, "commit", "C", "", MsgFlagCommit)
	flags.BoolVar(&f.push, "push", false, MsgFlagPush)
	cmd.MarkFlagsMutuallyExclusive("diff", "no-confirm")
	return cmd
}

func newEditCmd(g *globalOptions) *cobra.Command {
	var editor string

	cmd := &cobra.Command{
		Use:     "edit",
		Short:   MsgEditShort,
		Long:    MsgEditLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}
			path, ok, err := findConfig(cmd.OutOrStdout(), p, g)
			if err != nil || !ok {
				return err
			}

			if editor == "" {
				editor = os.Getenv("EDITOR")
			}
			return commands.Edit(newRunner(cmd), editor, path)
		},
	}

	cmd.Flags().StringVarP(&editor, "editor", "e", "", MsgFlagEditor)
	return cmd
}

func newGitCmd(g *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:                "git [args...]",
		Short:              MsgGitShort,
		Long:               MsgGitLong,
		Example:            "  dotf git status",
		GroupID:            "misc",
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, ok, err := loadEnv(cmd, g)
			if err != nil || !ok {
				return err
			}
			return commands.Git(env, args)
		},
	}
}

func newInitCmd(g *globalOptions) *cobra.Command {
	var (
		asYAML     bool
		repository string
	)

	cmd := &cobra.Command{
		Use:     "init",
		Short:   MsgInitShort,
		Long:    MsgInitLong,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := initPaths()
			if err != nil {
				return err
			}

			path, _, err := p.FindConfig(g.configPath)
			if err != nil {
				return err
			}
			if asYAML && config.FormatFromPath(path) != config.FormatYAML {
				path = strings.TrimSuffix(path, filepath.Ext(path)) + ".yaml"
			}

			if repository == "" {
				if repository, err = os.Getwd(); err != nil {
					return err
				}
			}
			repository, err = filepath.Abs(p.ExpandHome(repository))
			if err != nil {
				return err
			}

			if err := config.Bootstrap(path, repository); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgInitWritten, p.Display(path))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, MsgFlagYAML)
	cmd.Flags().StringVar(&repository, "repository", "", MsgFlagRepository)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		Args:    cobra.NoArgs,
		GroupID: "misc",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprint(cmd.OutOrStdout(), version.String())
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
				return cmd.Root().GenBashCompletion(cmd.OutOrStdout())
			case "zsh":
				return cmd.Root().GenZshCompletion(cmd.OutOrStdout())
			case "fish":
				return cmd.Root().GenFishCompletion(cmd.OutOrStdout(), true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(cmd.OutOrStdout())
			}
			return nil
		},
	}
}
