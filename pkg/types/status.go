package types

// Status classifies one resolved entry
type Status string

const (
	// StatusOk indicates the file exists on both sides with identical content
	StatusOk Status = "ok"

	// StatusDiff indicates the file exists on both sides with different content
	StatusDiff Status = "diff"

	// StatusMissingHome indicates the file only exists in the repository
	StatusMissingHome Status = "missing_home"

	// StatusMissingRepo indicates the file only exists in the home directory
	StatusMissingRepo Status = "missing_repo"

	// StatusInvalid indicates the path specification itself could not be resolved
	StatusInvalid Status = "invalid"
)

// Statuses lists every status in legend order
var Statuses = []Status{StatusOk, StatusDiff, StatusInvalid, StatusMissingHome, StatusMissingRepo}

// Description returns the legend label for a status
func (s Status) Description() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusDiff:
		return "diff"
	case StatusMissingHome:
		return "missing home"
	case StatusMissingRepo:
		return "missing repository"
	case StatusInvalid:
		return "invalid"
	default:
		return string(s)
	}
}

// IsMissing reports whether one side of the pair is absent
func (s Status) IsMissing() bool {
	return s == StatusMissingHome || s == StatusMissingRepo
}
