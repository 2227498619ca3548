package runner

// Git runs git commands in a repository
type Git struct {
	runner Runner
	root   string
}

// NewGit creates a Git bound to the repository root
func NewGit(r Runner, root string) *Git {
	return &Git{runner: r, root: root}
}

// Run runs an arbitrary git command
func (g *Git) Run(args ...string) error {
	return g.runner.Run(g.root, "git", args...)
}

// CommitAll stages every change and commits it, optionally pushing afterwards
func (g *Git) CommitAll(message string, push bool) error {
	if err := g.Run("add", "."); err != nil {
		return err
	}
	if err := g.Run("commit", "-m", message); err != nil {
		return err
	}
	if push {
		return g.Run("push")
	}
	return nil
}
