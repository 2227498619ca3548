package prompt

import (
	"github.com/arthur-debert/dotf/pkg/errors"
)

// Scripted answers prompts from a fixed script and records every question
type Scripted struct {
	// Answers are consumed in order by Confirm. When exhausted, Confirm
	// returns the default.
	Answers []bool

	// Selection is returned by MultiSelect, filtered to the offered options.
	// A nil Selection selects everything.
	Selection []string

	// Err is returned by every prompt when set
	Err error

	Questions []string
	Offered   [][]string
}

func (s *Scripted) Confirm(msg string, defaultYes bool) (bool, error) {
	s.Questions = append(s.Questions, msg)
	if s.Err != nil {
		return false, errors.Wrap(s.Err, errors.ErrPrompt, "failed to read confirmation")
	}
	if len(s.Answers) == 0 {
		return defaultYes, nil
	}
	answer := s.Answers[0]
	s.Answers = s.Answers[1:]
	return answer, nil
}

func (s *Scripted) MultiSelect(msg string, options []string) ([]string, error) {
	s.Questions = append(s.Questions, msg)
	s.Offered = append(s.Offered, options)
	if s.Err != nil {
		return nil, errors.Wrap(s.Err, errors.ErrPrompt, "failed to read selection")
	}
	if s.Selection == nil {
		return options, nil
	}

	offered := make(map[string]bool, len(options))
	for _, o := range options {
		offered[o] = true
	}
	var picked []string
	for _, o := range s.Selection {
		if offered[o] {
			picked = append(picked, o)
		}
	}
	return picked, nil
}
