package index

import (
	stderrors "errors"
	"io/fs"
	"syscall"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/internal/hashutil"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Classify computes the status of a home/repository file pair. A missing
// side is a status; an unreadable file is an error.
func Classify(fsys types.FS, homePath, repoPath string) (types.Status, error) {
	homeExists, err := exists(fsys, homePath)
	if err != nil {
		return "", err
	}
	if !homeExists {
		return types.StatusMissingHome, nil
	}

	repoExists, err := exists(fsys, repoPath)
	if err != nil {
		return "", err
	}
	if !repoExists {
		return types.StatusMissingRepo, nil
	}

	same, err := hashutil.SameContent(fsys, homePath, repoPath)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrFileAccess, "failed to read file").
			WithDetail("home", homePath).
			WithDetail("repo", repoPath)
	}
	if same {
		return types.StatusOk, nil
	}
	return types.StatusDiff, nil
}

// stat returns nil info without error when the path does not exist,
// including when one of its parents is a regular file
func stat(fsys types.FS, path string) (fs.FileInfo, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) || stderrors.Is(err, syscall.ENOTDIR) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.ErrFileAccess, "cannot access file").
			WithDetail("path", path)
	}
	return info, nil
}

func exists(fsys types.FS, path string) (bool, error) {
	info, err := stat(fsys, path)
	return info != nil, err
}
