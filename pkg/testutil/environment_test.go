package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTestEnvironment(t *testing.T) {
	for _, envType := range []EnvType{EnvMemoryOnly, EnvIsolated} {
		env := NewTestEnvironment(t, envType)
		env.WithHomeTree(FileTree{
			".vimrc": "set nu",
			".config": FileTree{
				"nvim": FileTree{"init.lua": "-- home"},
			},
		}).WithRepoTree(FileTree{
			".config/nvim/init.lua": "-- repo",
		})

		AssertFileContent(t, env.FS, env.HomePath(".vimrc"), "set nu")
		AssertFileContent(t, env.FS, env.HomePath(".config/nvim/init.lua"), "-- home")
		AssertFileContent(t, env.FS, env.RepoPath(".config/nvim/init.lua"), "-- repo")
		AssertNoFile(t, env.FS, env.RepoPath(".vimrc"))
		assert.True(t, FileExistsT(t, env.FS, env.ConfigDir))
	}
}

func TestNewTestFSIsEmpty(t *testing.T) {
	fs := NewTestFS()
	AssertNoFile(t, fs, "/virtual/home")

	CreateFileT(t, fs, "/a/b.txt", "b")
	assert.Equal(t, "b", ReadFileT(t, fs, "/a/b.txt"))
	AssertNoFile(t, NewTestFS(), "/a/b.txt")
}
