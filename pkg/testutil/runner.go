package testutil

import (
	"github.com/arthur-debert/dotf/pkg/errors"
)

// RunnerCall records one external command invocation
type RunnerCall struct {
	Dir  string
	Name string
	Args []string
}

// RecordingRunner records commands instead of running them. When FailOn
// equals a command's first argument (or its name when there are no
// arguments) the call is recorded and fails.
type RecordingRunner struct {
	Calls  []RunnerCall
	FailOn string
}

// Run records the call
func (r *RecordingRunner) Run(dir, name string, args ...string) error {
	r.Calls = append(r.Calls, RunnerCall{Dir: dir, Name: name, Args: args})

	key := name
	if len(args) > 0 {
		key = args[0]
	}
	if r.FailOn != "" && r.FailOn == key {
		return errors.Newf(errors.ErrCommandFailed, "%s failed", name)
	}
	return nil
}

// Argv returns every recorded call as name followed by its arguments
func (r *RecordingRunner) Argv() [][]string {
	out := make([][]string, len(r.Calls))
	for i, c := range r.Calls {
		out[i] = append([]string{c.Name}, c.Args...)
	}
	return out
}
