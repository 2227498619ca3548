package types

// Target is the direction of a sync
type Target string

const (
	// TargetHome copies repository files into the home directory
	TargetHome Target = "home"

	// TargetRepo copies home files into the repository
	TargetRepo Target = "repo"
)

// Endpoints returns the source and destination of a copy for this target
func (t Target) Endpoints(e *FileEntry) (src, dst string) {
	if t == TargetHome {
		return e.RepoPath, e.HomePath
	}
	return e.HomePath, e.RepoPath
}

// MissingSource returns the status that means the copy source is absent
func (t Target) MissingSource() Status {
	if t == TargetHome {
		return StatusMissingRepo
	}
	return StatusMissingHome
}

func (t Target) String() string {
	return string(t)
}
