// Package prompt asks the user questions. Handlers depend on the Prompter
// interface so that tests can script the answers.
package prompt

import (
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/pterm/pterm"
)

// Prompter is the interactive capability used by the sync handler
type Prompter interface {
	// Confirm asks a yes/no question
	Confirm(msg string, defaultYes bool) (bool, error)

	// MultiSelect lets the user pick any subset of options
	MultiSelect(msg string, options []string) ([]string, error)
}

// Terminal prompts on the controlling terminal using pterm
type Terminal struct{}

// NewTerminal creates a terminal prompter
func NewTerminal() *Terminal {
	return &Terminal{}
}

func (t *Terminal) Confirm(msg string, defaultYes bool) (bool, error) {
	ok, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(defaultYes).
		Show(msg)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrPrompt, "failed to read confirmation")
	}
	logger := logging.GetLogger("prompt")
	logger.Debug().Str("question", msg).Bool("answer", ok).Msg("confirmation")
	return ok, nil
}

func (t *Terminal) MultiSelect(msg string, options []string) ([]string, error) {
	selected, err := pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithMaxHeight(15).
		Show(msg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrPrompt, "failed to read selection")
	}
	logger := logging.GetLogger("prompt")
	logger.Debug().Int("selected", len(selected)).Msg("selection")
	return selected, nil
}
