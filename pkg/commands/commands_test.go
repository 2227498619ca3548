package commands

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/dotf/pkg/config"
	"github.com/arthur-debert/dotf/pkg/errors"
	"github.com/arthur-debert/dotf/pkg/matchers"
	"github.com/arthur-debert/dotf/pkg/prompt"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/testutil"
	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	env    Env
	tenv   *testutil.TestEnvironment
	runner *testutil.RecordingRunner
	out    *bytes.Buffer
}

func newHarness(t *testing.T, mutate func(*config.Settings)) *harness {
	t.Helper()

	tenv := testutil.NewTestEnvironment(t, testutil.EnvMemoryOnly).
		WithHomeTree(testutil.FileTree{
			".vimrc":  "set nu",
			".zshrc":  "export A=1",
			".bashrc": "only home",
		}).
		WithRepoTree(testutil.FileTree{
			".vimrc":     "set nu",
			".zshrc":     "export A=2",
			".gitconfig": "[user]",
		})

	settings, err := config.DefaultSettings()
	require.NoError(t, err)
	if mutate != nil {
		mutate(&settings)
	}

	cfg, err := config.New(tenv.RepoDir, []types.Item{
		{Name: "git", Files: []string{".gitconfig"}},
		{Name: "shell", Files: []string{".zshrc", ".bashrc"}},
		{Name: "vim", Files: []string{".vimrc"}},
	}, settings)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	r := &testutil.RecordingRunner{}
	return &harness{
		env: Env{
			Config:   cfg,
			Home:     tenv.HomeDir,
			FS:       tenv.FS,
			Output:   style.NewPlainOutput(out),
			Prompter: &prompt.Scripted{},
			Runner:   r,
		},
		tenv:   tenv,
		runner: r,
		out:    out,
	}
}

func TestStatus(t *testing.T) {
	h := newHarness(t, nil)

	counts, err := Status(h.env, StatusOptions{Brief: true})
	require.NoError(t, err)

	assert.Equal(t, map[types.Status]int{
		types.StatusOk:          1,
		types.StatusDiff:        1,
		types.StatusMissingHome: 1,
		types.StatusMissingRepo: 1,
	}, counts)
	assert.NotContains(t, h.out.String(), ".vimrc")
}

func TestStatusFilter(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"glob", Filter{Only: []string{"*rc"}}, 3},
		{"regex", Filter{Only: []string{"^\\.z"}, Syntax: matchers.SyntaxRegex}, 1},
		{"none", Filter{}, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, nil)
			counts, err := Status(h.env, StatusOptions{Filter: tt.filter})
			require.NoError(t, err)

			total := 0
			for _, n := range counts {
				total += n
			}
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestStatusFilterUsesConfiguredSyntax(t *testing.T) {
	h := newHarness(t, func(s *config.Settings) { s.PatternSyntax = "regex" })

	_, err := Status(h.env, StatusOptions{Filter: Filter{Only: []string{"["}}})
	assert.True(t, errors.IsErrorCode(err, errors.ErrPatternInvalid))
}

func TestDiffUsesConfiguredCommand(t *testing.T) {
	h := newHarness(t, func(s *config.Settings) { s.DiffCommand = "colordiff -u" })

	require.NoError(t, Diff(h.env, DiffOptions{}))
	assert.Equal(t, [][]string{
		{"colordiff", "-u", h.tenv.HomePath(".zshrc"), h.tenv.RepoPath(".zshrc")},
	}, h.runner.Argv())
}

func TestDiffCommandOverride(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, Diff(h.env, DiffOptions{Command: []string{"delta"}}))
	require.Len(t, h.runner.Calls, 1)
	assert.Equal(t, "delta", h.runner.Calls[0].Name)
}

func TestSync(t *testing.T) {
	h := newHarness(t, nil)
	opts := SyncOptions{
		Filter:  Filter{Only: []string{".zshrc"}},
		Options: DefaultSyncOptions(h.env.Config),
	}
	opts.Confirm = false

	res, err := Sync(h.env, opts)
	require.NoError(t, err)
	assert.Equal(t, types.TargetRepo, res.Target)
	assert.Equal(t, []string{".zshrc"}, res.Written)
	testutil.AssertFileContent(t, h.tenv.FS, h.tenv.RepoPath(".zshrc"), "export A=1")
}

func TestSyncToHomeHonorsBackupSetting(t *testing.T) {
	h := newHarness(t, func(s *config.Settings) { s.Backup = false })
	opts := SyncOptions{
		Filter:  Filter{Only: []string{".zshrc"}},
		Options: DefaultSyncOptions(h.env.Config),
		ToHome:  true,
	}
	opts.Confirm = false

	_, err := Sync(h.env, opts)
	require.NoError(t, err)
	testutil.AssertFileContent(t, h.tenv.FS, h.tenv.HomePath(".zshrc"), "export A=2")
	testutil.AssertNoFile(t, h.tenv.FS, h.tenv.HomePath(".zshrc.backup"))
}

func TestGit(t *testing.T) {
	h := newHarness(t, nil)

	require.NoError(t, Git(h.env, []string{"log", "--oneline"}))
	require.Len(t, h.runner.Calls, 1)
	assert.Equal(t, testutil.RunnerCall{Dir: h.tenv.RepoDir, Name: "git", Args: []string{"log", "--oneline"}}, h.runner.Calls[0])
}

func TestEdit(t *testing.T) {
	tests := []struct {
		name   string
		editor string
		want   []string
	}{
		{"default", "", []string{"vim", "/cfg/dotfiles.toml"}},
		{"with_args", "code --wait", []string{"code", "--wait", "/cfg/dotfiles.toml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &testutil.RecordingRunner{}
			require.NoError(t, Edit(r, tt.editor, "/cfg/dotfiles.toml"))
			assert.Equal(t, [][]string{tt.want}, r.Argv())
		})
	}

	err := Edit(&testutil.RecordingRunner{}, "   ", "/cfg/dotfiles.toml")
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
}
