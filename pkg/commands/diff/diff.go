// Package diff implements the diff command by delegating to an external
// comparison tool for every entry whose content differs.
package diff

import (
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/runner"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
)

// UpToDate is printed when there is nothing to act on
const UpToDate = "All up to date."

// Handler shows diffs between home and repository files
type Handler struct {
	resolver types.Resolver
	items    []types.Item
	runner   runner.Runner
	command  []string
	out      *style.Output
}

// New creates a diff handler. An empty command uses runner.DefaultDiffCommand.
func New(resolver types.Resolver, items []types.Item, r runner.Runner, command []string, out *style.Output) *Handler {
	if len(command) == 0 {
		command = runner.DefaultDiffCommand
	}
	return &Handler{resolver: resolver, items: items, runner: r, command: command, out: out}
}

// Diff runs the diff command with the home and repository paths of every
// entry in Diff status.
func (h *Handler) Diff() error {
	groups, err := h.resolver.Index(h.items)
	if err != nil {
		return err
	}

	var diffs []*types.FileEntry
	for _, e := range types.Flatten(groups) {
		if fe, ok := e.(*types.FileEntry); ok && fe.Status() == types.StatusDiff {
			diffs = append(diffs, fe)
		}
	}

	if len(diffs) == 0 {
		h.out.Println(UpToDate)
		return nil
	}

	for _, fe := range diffs {
		if err := Run(h.runner, h.command, fe.HomePath, fe.RepoPath); err != nil {
			return err
		}
	}
	return nil
}

// Run invokes the diff command on two files. A non-zero exit status only
// means the files differ; failing to start the tool is an error.
func Run(r runner.Runner, command []string, a, b string) error {
	if len(command) == 0 {
		return errors.New(errors.ErrInvalidInput, "empty diff command")
	}

	args := make([]string, 0, len(command)+1)
	args = append(args, command[1:]...)
	args = append(args, a, b)

	err := r.Run("", command[0], args...)
	if err == nil {
		return nil
	}
	if code, ok := runner.ExitCode(err); ok {
		logger := logging.GetLogger("commands.diff")
		logger.Debug().
			Int("exit_code", code).
			Str("a", a).
			Str("b", b).
			Msg("diff tool reported differences")
		return nil
	}
	return err
}
