// Package commands provides the command implementations behind the dotf CLI.
//
// This package contains the orchestration layer that turns a loaded
// configuration into a resolver and hands it to the handlers.
//
// Each handler is implemented in its own subdirectory:
//   - status/ - per-group status listing
//   - diff/   - diff tool over differing files
//   - sync/   - copy engine in either direction
//
// This file re-exports the handler option types and runs each handler
// against an Env.
package commands

import (
	"github.com/arthur-debert/dotf/pkg/commands/diff"
	"github.com/arthur-debert/dotf/pkg/commands/status"
	"github.com/arthur-debert/dotf/pkg/commands/sync"
	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/index"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/prompt"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Env carries what every command needs
type Env struct {
	Config   *config.Config
	Home     string
	FS       types.FS
	Output   *style.Output
	Prompter prompt.Prompter
	Runner   runner.Runner
}

// Filter restricts a command to the entries matching Only. Syntax
// defaults to the configured pattern syntax.
type Filter struct {
	Only   []string
	Syntax matchers.Syntax
}

// NewResolver builds the indexer for env, applying the filter and the
// configured exclusions and worker count.
func NewResolver(env Env, filter Filter) (*index.Indexer, error) {
	var only *matchers.Set
	if len(filter.Only) > 0 {
		syntax := filter.Syntax
		if syntax == "" {
			syntax = env.Config.PatternSyntax()
		}
		set, err := matchers.NewSet(filter.Only, syntax)
		if err != nil {
			return nil, err
		}
		only = set
	}

	return index.New(index.Options{
		Home:    env.Home,
		Repo:    env.Config.Repository,
		FS:      env.FS,
		Only:    only,
		Exclude: env.Config.Settings.Exclude,
		Workers: env.Config.Settings.Workers,
	})
}

// StatusOptions controls the status command
type StatusOptions struct {
	Filter
	Brief bool
}

// Status prints the status of every tracked file and returns the counts
func Status(env Env, opts StatusOptions) (map[types.Status]int, error) {
	resolver, err := NewResolver(env, opts.Filter)
	if err != nil {
		return nil, err
	}
	return status.New(resolver, env.Config.Items, env.Output).Status(opts.Brief)
}

// DiffOptions controls the diff command
type DiffOptions struct {
	Filter
	// Command overrides the configured diff command
	Command []string
}

// Diff runs the diff command over every file that differs
func Diff(env Env, opts DiffOptions) error {
	resolver, err := NewResolver(env, opts.Filter)
	if err != nil {
		return err
	}

	command := opts.Command
	if len(command) == 0 {
		command = env.Config.DiffCommand()
	}
	return diff.New(resolver, env.Config.Items, env.Runner, command, env.Output).Diff()
}

// SyncOptions controls the sync command. Options is re-exported from
// the sync handler.
type SyncOptions struct {
	Filter
	sync.Options
	// ToHome copies repository files to the home directory
	ToHome bool
}

// SyncResult is re-exported from the sync handler
type SyncResult = sync.Result

// DefaultSyncOptions derives sync options from the configured settings
func DefaultSyncOptions(cfg *config.Config) sync.Options {
	opts := sync.DefaultOptions()
	opts.Backup = cfg.Settings.Backup
	opts.Confirm = cfg.Settings.Confirm
	opts.DefaultYes = cfg.Settings.DefaultYes
	opts.DiffCommand = cfg.DiffCommand()
	return opts
}

// Sync copies files between the home directory and the repository
func Sync(env Env, opts SyncOptions) (*SyncResult, error) {
	resolver, err := NewResolver(env, opts.Filter)
	if err != nil {
		return nil, err
	}

	h := sync.New(sync.Dependencies{
		Resolver: resolver,
		Items:    env.Config.Items,
		FS:       env.FS,
		Prompter: env.Prompter,
		Runner:   env.Runner,
		Output:   env.Output,
		RepoRoot: env.Config.Repository,
	}, opts.Options)

	if opts.ToHome {
		return h.CopyToHome()
	}
	return h.CopyToRepo()
}

// Git runs git with args in the repository
func Git(env Env, args []string) error {
	logging.LogCommand("git", args)
	return runner.NewGit(env.Runner, env.Config.Repository).Run(args...)
}

// DefaultEditor is used when neither --editor nor $EDITOR is set
const DefaultEditor = "vim"

// Edit opens path in editor. The editor may carry arguments.
func Edit(r runner.Runner, editor, path string) error {
	if editor == "" {
		editor = DefaultEditor
	}
	argv, err := runner.ParseCommand(editor)
	if err != nil {
		return errors.New(errors.ErrInvalidInput, "empty editor command")
	}

	logger := logging.GetLogger("commands.edit")
	logger.Debug().Strs("editor", argv).Str("path", path).Msg("Editing configuration")
	return r.Run("", argv[0], append(argv[1:], path)...)
}
