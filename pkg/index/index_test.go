package index

import (
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newIndexer(t *testing.T, env *testutil.TestEnvironment, opts Options) *Indexer {
	t.Helper()
	opts.Home = env.HomeDir
	opts.Repo = env.RepoDir
	opts.FS = env.FS
	x, err := New(opts)
	require.NoError(t, err)
	return x
}

// summary maps each entry to its status, keyed by relpath or spec
func summary(entries []types.Entry) map[string]types.Status {
	out := make(map[string]types.Status, len(entries))
	for _, e := range entries {
		switch e := e.(type) {
		case *types.FileEntry:
			out[e.RelPath] = e.Status()
		case *types.InvalidEntry:
			out[e.Spec] = e.Status()
		}
	}
	return out
}

func singleInvalid(t *testing.T, g types.Group) *types.InvalidEntry {
	t.Helper()
	require.Len(t, g.Entries, 1)
	inv, ok := g.Entries[0].(*types.InvalidEntry)
	require.True(t, ok, "expected invalid entry, got %T", g.Entries[0])
	return inv
}

func TestIndexLiteral(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithHomeTree(testutil.FileTree{".vimrc": "set nu", ".bashrc": "a"}).
		WithRepoTree(testutil.FileTree{".vimrc": "set nu", ".zshrc": "z"})
	x := newIndexer(t, env, Options{})

	t.Run("present_on_both_sides", func(t *testing.T) {
		g, err := x.IndexItem(types.NewItem("vim", ".vimrc"))
		require.NoError(t, err)
		require.Len(t, g.Entries, 1)

		fe := g.Entries[0].(*types.FileEntry)
		assert.Equal(t, ".vimrc", fe.RelPath)
		assert.Equal(t, types.StatusOk, fe.Status())
		assert.Equal(t, env.HomePath(".vimrc"), fe.HomePath)
		assert.Equal(t, env.RepoPath(".vimrc"), fe.RepoPath)
	})

	t.Run("missing_sides", func(t *testing.T) {
		g, err := x.IndexItem(types.Item{Name: "shell", Files: []string{".bashrc", ".zshrc"}})
		require.NoError(t, err)
		assert.Equal(t, map[string]types.Status{
			".bashrc": types.StatusMissingRepo,
			".zshrc":  types.StatusMissingHome,
		}, summary(g.Entries))
	})

	t.Run("declaration_order", func(t *testing.T) {
		g, err := x.IndexItem(types.Item{Name: "shell", Files: []string{".zshrc", ".bashrc"}})
		require.NoError(t, err)
		require.Len(t, g.Entries, 2)
		assert.Equal(t, ".zshrc", g.Entries[0].(*types.FileEntry).RelPath)
		assert.Equal(t, ".bashrc", g.Entries[1].(*types.FileEntry).RelPath)
	})

	t.Run("whitespace_is_trimmed", func(t *testing.T) {
		g, err := x.IndexItem(types.NewItem("vim", "  .vimrc "))
		require.NoError(t, err)
		require.Len(t, g.Entries, 1)
		assert.Equal(t, ".vimrc", g.Entries[0].(*types.FileEntry).RelPath)
	})

	t.Run("missing_everywhere", func(t *testing.T) {
		g, err := x.IndexItem(types.NewItem("ghost", ".ghostrc"))
		require.NoError(t, err)
		inv := singleInvalid(t, g)
		assert.Equal(t, ".ghostrc", inv.Spec)
		assert.Equal(t, "does not exist in either home or repository", inv.Reason)
	})
}

func TestIndexLiteralDirectory(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithHomeTree(testutil.FileTree{"notes.txt": testutil.FileTree{"a.md": "a"}}).
		WithRepoTree(testutil.FileTree{"config": testutil.FileTree{"b": "b"}})
	x := newIndexer(t, env, Options{})

	tests := []struct {
		spec string
		want string
	}{
		{"notes.txt", "use glob pattern (fix: change notes.txt to notes.txt/*)"},
		{"config", "use glob pattern (fix: change config to config/*)"},
		{"config/", "use glob pattern (fix: change config/ to config/*)"},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			g, err := x.IndexItem(types.NewItem("dir", tt.spec))
			require.NoError(t, err)
			inv := singleInvalid(t, g)
			assert.Equal(t, tt.want, inv.Reason)
			assert.Equal(t, types.StatusInvalid, inv.Status())
		})
	}
}

func TestIndexLiteralWithGlobCharacters(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithHomeTree(testutil.FileTree{"f[1].txt": "same", "what?": "home"}).
		WithRepoTree(testutil.FileTree{"f[1].txt": "same"})
	x := newIndexer(t, env, Options{})

	groups, err := x.Index([]types.Item{
		types.NewItem("brackets", "f[1].txt"),
		types.NewItem("question", "what?"),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.Status{
		"f[1].txt": types.StatusOk,
		"what?":    types.StatusMissingRepo,
	}, summary(types.Flatten(groups)))
}

func TestIndexLiteralUnderRegularFile(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{"a": testutil.FileTree{"b": "nested"}}).
		WithRepoTree(testutil.FileTree{"a": "plain file"})
	x := newIndexer(t, env, Options{})

	groups, err := x.Index([]types.Item{types.NewItem("ab", "a/b")})
	require.NoError(t, err)
	assert.Equal(t, map[string]types.Status{"a/b": types.StatusMissingRepo}, summary(types.Flatten(groups)))
}

func TestIndexInvalidSpecs(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly)
	x := newIndexer(t, env, Options{})

	for _, spec := range []string{"", "*", "**", "**/*", "**/.vimrc", "/etc/passwd", "../outside", "a/../../b"} {
		t.Run(spec, func(t *testing.T) {
			g, err := x.IndexItem(types.NewItem("bad", spec))
			require.NoError(t, err)
			inv := singleInvalid(t, g)
			assert.Equal(t, spec, inv.Spec)
			assert.NotEmpty(t, inv.Reason)
		})
	}
}

func TestIndexGlob(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{
			"config/a.txt": "home a",
			"config/b.txt": "home b",
		}).
		WithRepoTree(testutil.FileTree{
			"config/a.txt": "repo a",
		})
	x := newIndexer(t, env, Options{})

	g, err := x.IndexItem(types.NewItem("conf", "config/*"))
	require.NoError(t, err)
	assert.Equal(t, "conf", g.Name)
	assert.Equal(t, map[string]types.Status{
		"config/a.txt": types.StatusDiff,
		"config/b.txt": types.StatusMissingRepo,
	}, summary(g.Entries))
}

func TestIndexGlobPartition(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{
			".config/nvim/init.lua":        "same",
			".config/nvim/lua/plugins.lua": "home",
			".config/nvim/home-only.lua":   "h",
		}).
		WithRepoTree(testutil.FileTree{
			".config/nvim/init.lua":        "same",
			".config/nvim/lua/plugins.lua": "repo",
			".config/nvim/repo-only.lua":   "r",
		})
	x := newIndexer(t, env, Options{})

	t.Run("single_star_does_not_recurse", func(t *testing.T) {
		g, err := x.IndexItem(types.NewItem("nvim", ".config/nvim/*"))
		require.NoError(t, err)
		assert.Equal(t, map[string]types.Status{
			".config/nvim/init.lua":      types.StatusOk,
			".config/nvim/home-only.lua": types.StatusMissingRepo,
			".config/nvim/repo-only.lua": types.StatusMissingHome,
		}, summary(g.Entries))
	})

	t.Run("double_star_recurses", func(t *testing.T) {
		g, err := x.IndexItem(types.NewItem("nvim", ".config/nvim/**/*"))
		require.NoError(t, err)
		got := summary(g.Entries)
		assert.Len(t, got, 4)
		assert.Equal(t, types.StatusDiff, got[".config/nvim/lua/plugins.lua"])
	})

	t.Run("overlapping_specs_are_deduplicated", func(t *testing.T) {
		g, err := x.IndexItem(types.Item{
			Name:  "nvim",
			Files: []string{".config/nvim/init.lua", ".config/nvim/*"},
		})
		require.NoError(t, err)
		assert.Len(t, g.Entries, 3)
	})
}

func TestIndexGlobExclusions(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{
			"deepglob/config.yml":          "c",
			"deepglob/src/file.js":         "home",
			"deepglob/test.out":            "o",
			"deepglob/.git/config":         "g",
			"deepglob/.git/objects/abc123": "x",
			"deepglob/config.yml.backup":   "old",
			"deepglob/backup":              "bookkeeping",
		}).
		WithRepoTree(testutil.FileTree{
			"deepglob/src/file.js":         "repo",
			"deepglob/.git/objects/def456": "y",
		})

	t.Run("builtin_and_item_ignores", func(t *testing.T) {
		x := newIndexer(t, env, Options{})
		g, err := x.IndexItem(types.Item{
			Name:   "deep",
			Files:  []string{"deepglob/**/*"},
			Ignore: []string{"*.out"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]types.Status{
			"deepglob/config.yml":  types.StatusMissingRepo,
			"deepglob/src/file.js": types.StatusDiff,
		}, summary(g.Entries))
	})

	t.Run("extra_exclusions", func(t *testing.T) {
		x := newIndexer(t, env, Options{Exclude: []string{"**/src/**"}})
		g, err := x.IndexItem(types.Item{
			Name:   "deep",
			Files:  []string{"deepglob/**/*"},
			Ignore: []string{"*.out"},
		})
		require.NoError(t, err)
		assert.Equal(t, map[string]types.Status{
			"deepglob/config.yml": types.StatusMissingRepo,
		}, summary(g.Entries))
	})

	t.Run("malformed_ignore_is_an_error", func(t *testing.T) {
		x := newIndexer(t, env, Options{})
		_, err := x.IndexItem(types.Item{Name: "deep", Files: []string{"deepglob/*"}, Ignore: []string{"[oops"}})
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
	})

	t.Run("malformed_glob_is_an_invalid_entry", func(t *testing.T) {
		x := newIndexer(t, env, Options{})
		g, err := x.IndexItem(types.NewItem("deep", "deepglob/[oops*"))
		require.NoError(t, err)
		inv := singleInvalid(t, g)
		assert.Equal(t, "invalid glob pattern: deepglob/[oops*", inv.Reason)
	})
}

func TestIndexBackupSegmentDropped(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithHomeTree(testutil.FileTree{"tool/backup": "x"}).
		WithRepoTree(testutil.FileTree{"tool/backup": "x"})
	x := newIndexer(t, env, Options{})

	g, err := x.IndexItem(types.NewItem("tool", "tool/backup"))
	require.NoError(t, err)
	assert.Empty(t, g.Entries)
}

func TestIndexOnlyFilter(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{".vimrc": "v", ".bashrc": "b", ".config/fish/config.fish": "f"}).
		WithRepoTree(testutil.FileTree{".vimrc": "v", ".bashrc": "b2"})

	items := []types.Item{
		types.NewItem("vim", ".vimrc"),
		types.NewItem("bash", ".bashrc"),
		types.NewItem("fish", ".config/fish/*"),
		types.NewItem("broken", "/abs"),
	}

	tests := []struct {
		name     string
		patterns []string
		syntax   matchers.Syntax
		want     []string
	}{
		{"glob", []string{".vimrc", ".config/**"}, matchers.SyntaxGlob, []string{".vimrc", ".config/fish/config.fish"}},
		{"regex", []string{"rc$"}, matchers.SyntaxRegex, []string{".bashrc", ".vimrc"}},
		{"matches_invalid_spec", []string{"^/abs$"}, matchers.SyntaxRegex, []string{"/abs"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			only, err := matchers.NewSet(tt.patterns, tt.syntax)
			require.NoError(t, err)
			x := newIndexer(t, env, Options{Only: only})

			groups, err := x.Index(items)
			require.NoError(t, err)

			var got []string
			for p := range summary(types.Flatten(groups)) {
				got = append(got, p)
			}
			assert.ElementsMatch(t, tt.want, got)
		})
	}
}

func TestIndexGroupsSortedAndIdempotent(t *testing.T) {
	env := testutil.NewTestEnvironment(t, testutil.EnvIsolated).
		WithHomeTree(testutil.FileTree{".vimrc": "v", ".zshrc": "z", "bin/tool": "t"}).
		WithRepoTree(testutil.FileTree{".vimrc": "v", "bin/tool": "t2", "bin/other": "o"})

	items := []types.Item{
		types.NewItem("zsh", ".zshrc"),
		types.NewItem("bin", "bin/*"),
		types.NewItem("vim", ".vimrc"),
		types.NewItem("alpha", "missing"),
	}

	for _, workers := range []int{0, 3} {
		x := newIndexer(t, env, Options{Workers: workers})

		first, err := x.Index(items)
		require.NoError(t, err)
		second, err := x.Index(items)
		require.NoError(t, err)

		names := make([]string, len(first))
		for i, g := range first {
			names[i] = g.Name
		}
		assert.Equal(t, []string{"alpha", "bin", "vim", "zsh"}, names)

		require.Len(t, second, len(first))
		for i := range first {
			assert.Equal(t, summary(first[i].Entries), summary(second[i].Entries))
		}
	}
}

func TestNewRejectsMalformedExclusions(t *testing.T) {
	_, err := New(Options{FS: testutil.NewTestFS(), Exclude: []string{"[x"}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))

	_, err = New(Options{})
	assert.True(t, errors.IsErrorCode(err, errors.ErrInternal))
}
