// Package index resolves configured items into classified file pairs.
//
// Each item yields one group. Literal specifications produce at most one
// entry; glob specifications are expanded independently under the home
// and repository roots and the two result sets are paired by relative
// path. Specifications that cannot be resolved become invalid entries so
// that they are reported alongside everything else instead of aborting
// the run. Only I/O failures and malformed ignore patterns are errors.
package index

import (
	"fmt"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"
)

// Options configures an Indexer
type Options struct {
	// Home and Repo are the absolute roots every relative path is joined to
	Home string
	Repo string

	FS types.FS

	// Only restricts the result to entries matching at least one pattern.
	// A nil set keeps everything.
	Only *matchers.Set

	// Exclude adds glob patterns to the built-in exclusions
	Exclude []string

	// Workers > 1 resolves items concurrently
	Workers int
}

// Indexer resolves items against the home and repository roots
type Indexer struct {
	home     string
	repo     string
	fs       types.FS
	only     *matchers.Set
	excluded *matchers.Set
	workers  int
}

// New creates an Indexer. It fails when an extra exclusion pattern is malformed.
func New(opts Options) (*Indexer, error) {
	if opts.FS == nil {
		return nil, errors.New(errors.ErrInternal, "indexer requires a filesystem")
	}

	excluded, err := matchers.BuiltinExclusions(opts.Exclude...)
	if err != nil {
		return nil, err
	}

	return &Indexer{
		home:     opts.Home,
		repo:     opts.Repo,
		fs:       opts.FS,
		only:     opts.Only,
		excluded: excluded,
		workers:  opts.Workers,
	}, nil
}

// Index resolves every item and returns the groups sorted by item name
func (x *Indexer) Index(items []types.Item) ([]types.Group, error) {
	logger := logging.GetLogger("index")
	defer logging.LogOperationStart(logger, "index")()

	groups := make([]types.Group, len(items))

	if x.workers <= 1 || len(items) < 2 {
		for i, item := range items {
			g, err := x.IndexItem(item)
			if err != nil {
				return nil, err
			}
			groups[i] = g
		}
	} else {
		size := (len(items) + x.workers - 1) / x.workers
		logger.Debug().Int("workers", x.workers).Int("chunk", size).Msg("resolving items concurrently")

		var eg errgroup.Group
		for start := 0; start < len(items); start += size {
			start, end := start, min(start+size, len(items))
			eg.Go(func() error {
				for i := start; i < end; i++ {
					g, err := x.IndexItem(items[i])
					if err != nil {
						return err
					}
					groups[i] = g
				}
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			return nil, err
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Name < groups[j].Name
	})

	logger.Debug().Int("groups", len(groups)).Msg("index complete")
	return groups, nil
}

// IndexItem resolves a single item
func (x *Indexer) IndexItem(item types.Item) (types.Group, error) {
	logger := logging.GetLogger("index").With().Str("item", item.Name).Logger()

	ignore, err := matchers.NewSet(item.Ignore, matchers.SyntaxGlob)
	if err != nil {
		return types.Group{}, errors.Wrapf(err, errors.ErrPatternInvalid, "invalid ignore pattern in %s", item.Name)
	}

	var entries []types.Entry
	seen := make(map[string]bool)
	add := func(e types.Entry) {
		if fe, ok := e.(*types.FileEntry); ok {
			if fe.IsBackup() || seen[fe.RelPath] {
				return
			}
			seen[fe.RelPath] = true
		}
		if !x.keep(e) {
			return
		}
		entries = append(entries, e)
	}

	for _, spec := range item.Specs() {
		if reason := types.ValidateSpec(spec); reason != "" {
			logger.Debug().Str("spec", spec).Str("reason", reason).Msg("invalid path specification")
			add(types.NewInvalidEntry(spec, reason))
			continue
		}

		if types.IsGlob(spec) {
			resolved, err := x.resolveGlob(spec, ignore)
			if err != nil {
				return types.Group{}, err
			}
			for _, e := range resolved {
				add(e)
			}
			continue
		}

		e, err := x.resolveLiteral(spec)
		if err != nil {
			return types.Group{}, err
		}
		add(e)
	}

	logger.Trace().Int("entries", len(entries)).Msg("item resolved")
	return types.Group{Name: item.Name, Entries: entries}, nil
}

func (x *Indexer) keep(e types.Entry) bool {
	if x.only == nil {
		return true
	}
	switch e := e.(type) {
	case *types.FileEntry:
		return x.only.Match(e.RelPath)
	case *types.InvalidEntry:
		return x.only.Match(e.Spec)
	}
	return false
}

func (x *Indexer) resolveLiteral(spec string) (types.Entry, error) {
	relPath := filepath.ToSlash(filepath.Clean(spec))
	homePath := filepath.Join(x.home, relPath)
	repoPath := filepath.Join(x.repo, relPath)

	homeInfo, err := stat(x.fs, homePath)
	if err != nil {
		return nil, err
	}
	repoInfo, err := stat(x.fs, repoPath)
	if err != nil {
		return nil, err
	}

	if (homeInfo != nil && homeInfo.IsDir()) || (repoInfo != nil && repoInfo.IsDir()) {
		return types.NewInvalidEntry(spec, fmt.Sprintf(
			"use glob pattern (fix: change %s to %s/*)", spec, strings.TrimSuffix(spec, "/"))), nil
	}
	if homeInfo == nil && repoInfo == nil {
		return types.NewInvalidEntry(spec, "does not exist in either home or repository"), nil
	}

	status, err := Classify(x.fs, homePath, repoPath)
	if err != nil {
		return nil, err
	}
	return types.NewFileEntry(relPath, status, homePath, repoPath), nil
}

func (x *Indexer) resolveGlob(spec string, ignore *matchers.Set) ([]types.Entry, error) {
	pattern := strings.TrimPrefix(filepath.ToSlash(spec), "./")
	if !doublestar.ValidatePattern(pattern) {
		return []types.Entry{types.NewInvalidEntry(spec, "invalid glob pattern: "+spec)}, nil
	}

	homeFiles, err := x.expand(x.home, pattern, ignore)
	if err != nil {
		return nil, err
	}
	repoFiles, err := x.expand(x.repo, pattern, ignore)
	if err != nil {
		return nil, err
	}

	inHome := make(map[string]bool, len(homeFiles))
	for _, p := range homeFiles {
		inHome[p] = true
	}
	inRepo := make(map[string]bool, len(repoFiles))
	for _, p := range repoFiles {
		inRepo[p] = true
	}

	var entries []types.Entry
	for _, rel := range homeFiles {
		if !inRepo[rel] {
			continue
		}
		homePath, repoPath := x.join(rel)
		status, err := Classify(x.fs, homePath, repoPath)
		if err != nil {
			return nil, err
		}
		entries = append(entries, types.NewFileEntry(rel, status, homePath, repoPath))
	}
	for _, rel := range homeFiles {
		if inRepo[rel] {
			continue
		}
		homePath, repoPath := x.join(rel)
		entries = append(entries, types.NewFileEntry(rel, types.StatusMissingRepo, homePath, repoPath))
	}
	for _, rel := range repoFiles {
		if inHome[rel] {
			continue
		}
		homePath, repoPath := x.join(rel)
		entries = append(entries, types.NewFileEntry(rel, types.StatusMissingHome, homePath, repoPath))
	}

	return entries, nil
}

// expand returns the slash-separated relative paths of regular files under
// root that match pattern and survive the exclusions.
func (x *Indexer) expand(root, pattern string, ignore *matchers.Set) ([]string, error) {
	if info, err := stat(x.fs, root); err != nil {
		return nil, err
	} else if info == nil || !info.IsDir() {
		return nil, nil
	}

	matches, err := doublestar.Glob(x.fs.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to expand %s", pattern).
			WithDetail("root", root)
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		rel := path.Clean(m)
		if x.excluded.Match(rel) || ignore.Match(rel) {
			continue
		}
		files = append(files, rel)
	}
	return files, nil
}

func (x *Indexer) join(rel string) (homePath, repoPath string) {
	native := filepath.FromSlash(rel)
	return filepath.Join(x.home, native), filepath.Join(x.repo, native)
}
