package style

import (
	"bytes"
	"os"
	"testing"

	"github.com/arthur-debert/dotf/pkg/types"
	"github.com/stretchr/testify/assert"
)

func TestGlyph(t *testing.T) {
	tests := []struct {
		status types.Status
		want   string
	}{
		{types.StatusOk, "✓"},
		{types.StatusDiff, "≠"},
		{types.StatusMissingHome, "⇠"},
		{types.StatusMissingRepo, "⇢"},
		{types.StatusInvalid, "✗"},
		{types.Status("bogus"), "?"},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			assert.Equal(t, tt.want, Glyph(tt.status))
			assert.Equal(t, tt.want, NewPlainOutput(&bytes.Buffer{}).Glyph(tt.status))
		})
	}
}

func TestEntryLine(t *testing.T) {
	out := NewPlainOutput(&bytes.Buffer{})

	assert.Equal(t, "≠ .vimrc",
		out.EntryLine(types.NewFileEntry(".vimrc", types.StatusDiff, "/h/.vimrc", "/r/.vimrc")))
	assert.Equal(t, "✗ /abs: path is not relative: /abs",
		out.EntryLine(types.NewInvalidEntry("/abs", "path is not relative: /abs")))
}

func TestLegend(t *testing.T) {
	out := NewPlainOutput(&bytes.Buffer{})
	assert.Equal(t, "✓ ok | ≠ diff | ✗ invalid | ⇠ missing home | ⇢ missing repository", out.Legend())
}

func TestDetectColor(t *testing.T) {
	assert.False(t, DetectColor(&bytes.Buffer{}), "non-file writers are never styled")

	t.Setenv("NO_COLOR", "1")
	assert.False(t, DetectColor(os.Stdout))
}

func TestPlainOutputWrites(t *testing.T) {
	buf := &bytes.Buffer{}
	out := NewPlainOutput(buf)

	out.Printf("%s %s\n", out.Header("vim"), out.Path("~/.vimrc"))
	out.Println(out.Error("boom"))

	assert.Equal(t, "vim ~/.vimrc\nboom\n", buf.String())
	assert.False(t, out.Color())
	assert.Same(t, buf, out.Writer())
}
