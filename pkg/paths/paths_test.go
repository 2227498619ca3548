package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPaths(t *testing.T) *Paths {
	t.Helper()
	root := t.TempDir()
	home := filepath.Join(root, "home")
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".config"), 0755))
	return NewAt(home, filepath.Join(home, ".config"), filepath.Join(home, ".local", "state", AppName))
}

func TestNewFollowsXDG(t *testing.T) {
	config := t.TempDir()
	state := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", config)
	t.Setenv("XDG_STATE_HOME", state)

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, config, p.ConfigDir())
	assert.Equal(t, filepath.Join(state, "dotf"), p.StateDir())
	assert.Equal(t, filepath.Join(state, "dotf", "dotf.log"), p.LogFilePath())
	assert.Equal(t, filepath.Join(config, "dotfiles.toml"), p.DefaultConfigPath())
	assert.NotEmpty(t, p.Home())
}

func TestConfigCandidates(t *testing.T) {
	p := NewAt("/home/u", "/home/u/.config", "/home/u/.local/state/dotf")

	assert.Equal(t, []string{
		"/home/u/.config/dotfiles.toml",
		"/home/u/.config/dotfiles.yaml",
		"/home/u/.config/dotfiles.yml",
	}, p.ConfigCandidates())
}

func TestFindConfig(t *testing.T) {
	t.Setenv(EnvConfig, "")

	t.Run("nothing_found_returns_default", func(t *testing.T) {
		p := testPaths(t)
		path, found, err := p.FindConfig("")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, p.DefaultConfigPath(), path)
	})

	t.Run("yaml_candidate", func(t *testing.T) {
		p := testPaths(t)
		want := filepath.Join(p.ConfigDir(), "dotfiles.yml")
		require.NoError(t, os.WriteFile(want, []byte("repository: ."), 0644))

		path, found, err := p.FindConfig("")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, want, path)
	})

	t.Run("toml_preferred", func(t *testing.T) {
		p := testPaths(t)
		for _, name := range []string{"dotfiles.yaml", "dotfiles.toml"} {
			require.NoError(t, os.WriteFile(filepath.Join(p.ConfigDir(), name), nil, 0644))
		}

		path, _, err := p.FindConfig("")
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(p.ConfigDir(), "dotfiles.toml"), path)
	})

	t.Run("env_overrides_candidates", func(t *testing.T) {
		p := testPaths(t)
		custom := filepath.Join(p.Home(), "custom.toml")
		require.NoError(t, os.WriteFile(custom, nil, 0644))
		require.NoError(t, os.WriteFile(p.DefaultConfigPath(), nil, 0644))
		t.Setenv(EnvConfig, custom)

		path, found, err := p.FindConfig("")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, custom, path)
	})

	t.Run("explicit_with_tilde", func(t *testing.T) {
		p := testPaths(t)
		t.Setenv(EnvConfig, "/elsewhere.toml")

		path, found, err := p.FindConfig("~/missing.toml")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Equal(t, filepath.Join(p.Home(), "missing.toml"), path)
	})

	t.Run("directory_is_an_error", func(t *testing.T) {
		p := testPaths(t)
		_, _, err := p.FindConfig(p.ConfigDir())
		assert.True(t, errors.IsErrorCode(err, errors.ErrConfigLoad))
	})
}

func TestExpandHome(t *testing.T) {
	p := NewAt("/home/u", "/home/u/.config", "/state")

	tests := []struct {
		in   string
		want string
	}{
		{"~", "/home/u"},
		{"~/dotfiles", "/home/u/dotfiles"},
		{"~other/dotfiles", "~other/dotfiles"},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, p.ExpandHome(tt.in))
		})
	}
}

func TestDisplay(t *testing.T) {
	p := NewAt("/home/u", "/home/u/.config", "/state")

	assert.Equal(t, "~/.vimrc", p.Display("/home/u/.vimrc"))
	assert.Equal(t, "~", p.Display("/home/u"))
	assert.Equal(t, "/home/other/.vimrc", p.Display("/home/other/.vimrc"))
	assert.Equal(t, "/etc/hosts", p.Display("/etc/hosts"))
}
