// Package sync implements the copy engine behind `dotf sync`.
//
// A sync resolves every item, decides per entry whether it is already in
// sync, must be copied, or blocks the run, and then copies the selected
// entries in order. Blocking entries (invalid specifications and entries
// whose copy source is absent) fail the run before anything is written,
// unless IgnoreInvalid is set. Copy failures abort immediately; files
// copied before the failure stay in place.
package sync

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/dotf/pkg/commands/diff"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/prompt"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/rs/zerolog"
)

// UpToDate is printed when there is nothing to copy
const UpToDate = "All up to date."

// BackupSuffix is appended to a home file's name to back it up before it
// is overwritten
const BackupSuffix = ".backup"

// Options controls a sync run
type Options struct {
	// Confirm asks before every write
	Confirm bool
	// DefaultYes is the answer preselected in confirmations
	DefaultYes bool
	// DryRun performs classification and confirmation but writes nothing
	DryRun bool
	// Backup copies an existing home file to <file>.backup before overwriting it
	Backup bool
	// IgnoreInvalid skips invalid entries and entries with a missing source
	IgnoreInvalid bool
	// ShowDiff runs the diff command before each confirmation of a Diff entry
	ShowDiff    bool
	DiffCommand []string
	// Interactive lets the user choose the entries to copy up front
	Interactive bool
	// Commit, when copying to the repository, commits with this message
	Commit string
	// Push pushes after committing
	Push bool
}

// DefaultOptions returns the options used when nothing is configured
func DefaultOptions() Options {
	return Options{
		Confirm:     true,
		Backup:      true,
		DiffCommand: runner.DefaultDiffCommand,
	}
}

// Dependencies are the collaborators of a Handler
type Dependencies struct {
	Resolver types.Resolver
	Items    []types.Item
	FS       types.FS
	Prompter prompt.Prompter
	Runner   runner.Runner
	Output   *style.Output
	// RepoRoot is the working directory for git
	RepoRoot string
}

// Result describes what a sync did
type Result struct {
	Target types.Target
	// Written lists the relative paths copied, or that would have been
	// copied in a dry run
	Written []string
	// Declined lists the relative paths refused at confirmation or not
	// selected in interactive mode
	Declined []string
	// Ignored lists the entries skipped because of IgnoreInvalid
	Ignored   []string
	Committed bool
}

// Handler copies files between the home directory and the repository
type Handler struct {
	deps   Dependencies
	opts   Options
	logger zerolog.Logger
}

// New creates a sync handler
func New(deps Dependencies, opts Options) *Handler {
	if len(opts.DiffCommand) == 0 {
		opts.DiffCommand = runner.DefaultDiffCommand
	}
	return &Handler{
		deps:   deps,
		opts:   opts,
		logger: logging.GetLogger("commands.sync"),
	}
}

// CopyToHome copies repository files into the home directory
func (h *Handler) CopyToHome() (*Result, error) {
	return h.copy(types.TargetHome)
}

// CopyToRepo copies home files into the repository and optionally commits
func (h *Handler) CopyToRepo() (*Result, error) {
	return h.copy(types.TargetRepo)
}

func (h *Handler) copy(target types.Target) (*Result, error) {
	logger := h.logger.With().Str("target", target.String()).Logger()
	defer logging.LogOperationStart(logger, "sync")()

	groups, err := h.deps.Resolver.Index(h.deps.Items)
	if err != nil {
		return nil, err
	}

	result := &Result{Target: target}

	eligible, err := h.plan(target, types.Flatten(groups), result)
	if err != nil {
		return result, err
	}

	if len(eligible) == 0 {
		h.deps.Output.Println(UpToDate)
		return result, nil
	}

	if h.opts.Interactive {
		eligible, err = h.choose(eligible, result)
		if err != nil {
			return result, err
		}
	}

	for _, fe := range eligible {
		if err := h.apply(target, fe, result); err != nil {
			return result, err
		}
	}

	if err := h.commit(target, result); err != nil {
		return result, err
	}

	logger.Info().
		Int("written", len(result.Written)).
		Int("declined", len(result.Declined)).
		Int("ignored", len(result.Ignored)).
		Bool("dryrun", h.opts.DryRun).
		Msg("Sync complete")
	return result, nil
}

// plan applies the decision table and returns the entries to copy
func (h *Handler) plan(target types.Target, entries []types.Entry, result *Result) ([]*types.FileEntry, error) {
	var eligible []*types.FileEntry

	for _, e := range entries {
		switch e := e.(type) {
		case *types.InvalidEntry:
			if !h.opts.IgnoreInvalid {
				return nil, errors.Newf(errors.ErrInvalidEntry, "invalid entry: %s", e.Reason).
					WithDetail("spec", e.Spec)
			}
			h.logger.Debug().Str("spec", e.Spec).Str("reason", e.Reason).Msg("Ignoring invalid entry")
			result.Ignored = append(result.Ignored, e.Spec)

		case *types.FileEntry:
			switch e.Status() {
			case types.StatusOk:
				h.logger.Debug().Str("path", e.RelPath).Msg("Already in sync")
			case target.MissingSource():
				if !h.opts.IgnoreInvalid {
					return nil, errors.Newf(errors.ErrMissingSource, "missing source: %s", e.RelPath).
						WithDetail("target", target.String())
				}
				h.deps.Output.Println(h.deps.Output.Warning("Ignoring missing source: " + e.RelPath))
				result.Ignored = append(result.Ignored, e.RelPath)
			default:
				eligible = append(eligible, e)
			}
		}
	}

	return eligible, nil
}

// choose narrows the eligible entries to the user's selection
func (h *Handler) choose(eligible []*types.FileEntry, result *Result) ([]*types.FileEntry, error) {
	options := make([]string, len(eligible))
	for i, fe := range eligible {
		options[i] = fe.RelPath
	}

	selected, err := h.deps.Prompter.MultiSelect("Select files to sync", options)
	if err != nil {
		return nil, err
	}

	picked := make(map[string]bool, len(selected))
	for _, s := range selected {
		picked[s] = true
	}

	var chosen []*types.FileEntry
	for _, fe := range eligible {
		if picked[fe.RelPath] {
			chosen = append(chosen, fe)
		} else {
			result.Declined = append(result.Declined, fe.RelPath)
		}
	}
	return chosen, nil
}

// apply confirms and copies a single entry
func (h *Handler) apply(target types.Target, fe *types.FileEntry, result *Result) error {
	src, dst := target.Endpoints(fe)
	out := h.deps.Output

	if h.opts.Confirm {
		if h.opts.ShowDiff && fe.Status() == types.StatusDiff {
			if err := diff.Run(h.deps.Runner, h.opts.DiffCommand, src, dst); err != nil {
				return err
			}
		}

		display := dst
		if target == types.TargetHome {
			display = "~/" + fe.RelPath
		}

		ok, err := h.deps.Prompter.Confirm(fmt.Sprintf("Write %s?", out.Path(display)), h.opts.DefaultYes)
		if err != nil {
			return err
		}
		if !ok {
			h.logger.Info().Str("path", src).Msg("Skipping")
			result.Declined = append(result.Declined, fe.RelPath)
			return nil
		}
	}

	if !h.opts.DryRun {
		if err := h.write(target, src, dst); err != nil {
			return err
		}
	}

	line := fmt.Sprintf("  %s %s", out.Glyph(types.StatusOk), fe.RelPath)
	if h.opts.DryRun {
		line += out.Muted(" (dry run)")
	}
	out.Println(line)

	result.Written = append(result.Written, fe.RelPath)
	return nil
}

func (h *Handler) write(target types.Target, src, dst string) error {
	fsys := h.deps.FS

	dir := filepath.Dir(dst)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, errors.ErrDirCreate, "failed to create directory").
			WithDetail("path", dir)
	}

	if target == types.TargetHome && h.opts.Backup {
		if _, err := fsys.Stat(dst); err == nil {
			backup := dst + BackupSuffix
			if err := CopyFile(fsys, dst, backup); err != nil {
				return err
			}
			h.logger.Debug().Str("path", dst).Str("backup", backup).Msg("Created backup")
		}
	}

	if err := CopyFile(fsys, src, dst); err != nil {
		return err
	}
	h.logger.Info().Str("src", src).Str("dst", dst).Msg("Copied file")
	return nil
}

// commit stages, commits and optionally pushes the repository
func (h *Handler) commit(target types.Target, result *Result) error {
	if target != types.TargetRepo || h.opts.Commit == "" {
		return nil
	}

	if h.opts.DryRun {
		h.logger.Info().Str("message", h.opts.Commit).Msg("Dry run, skipping commit")
		return nil
	}
	if len(result.Written) == 0 {
		h.logger.Info().Msg("Nothing written, skipping commit")
		return nil
	}

	if err := runner.NewGit(h.deps.Runner, h.deps.RepoRoot).CommitAll(h.opts.Commit, h.opts.Push); err != nil {
		return err
	}
	result.Committed = true
	return nil
}

// CopyFile copies src to dst, preserving the source's permission bits
func CopyFile(fsys types.FS, src, dst string) error {
	info, err := fsys.Stat(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "cannot access source").
			WithDetail("path", src)
	}

	data, err := fsys.ReadFile(src)
	if err != nil {
		return errors.Wrap(err, errors.ErrFileAccess, "failed to read source").
			WithDetail("path", src)
	}

	if err := fsys.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return errors.Wrap(err, errors.ErrFileWrite, "failed to write file").
			WithDetail("src", src).
			WithDetail("dst", dst)
	}
	return nil
}
