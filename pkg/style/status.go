package style

import (
	"strings"

	"github.com/arthur-debert/dotf/pkg/types"
)

// glyphs maps each status to its one-character indicator
var glyphs = map[types.Status]string{
	types.StatusOk:          "✓",
	types.StatusDiff:        "≠",
	types.StatusMissingHome: "⇠",
	types.StatusMissingRepo: "⇢",
	types.StatusInvalid:     "✗",
}

// Glyph returns the unstyled indicator of a status
func Glyph(status types.Status) string {
	if g, ok := glyphs[status]; ok {
		return g
	}
	return "?"
}

// Glyph returns the styled indicator of a status
func (o *Output) Glyph(status types.Status) string {
	g := Glyph(status)
	switch status {
	case types.StatusOk:
		return o.Success(g)
	case types.StatusInvalid:
		return o.Error(g)
	default:
		return o.Warning(g)
	}
}

// EntryLine renders one entry as a glyph followed by its path, and the
// reason for invalid entries
func (o *Output) EntryLine(e types.Entry) string {
	switch e := e.(type) {
	case *types.FileEntry:
		return o.Glyph(e.Status()) + " " + e.RelPath
	case *types.InvalidEntry:
		return o.Glyph(types.StatusInvalid) + " " + e.Spec + ": " + o.Muted(e.Reason)
	}
	return ""
}

// Legend lists every glyph with its meaning
func (o *Output) Legend() string {
	parts := make([]string, 0, len(types.Statuses))
	for _, s := range types.Statuses {
		parts = append(parts, o.Glyph(s)+" "+s.Description())
	}
	return strings.Join(parts, " | ")
}
