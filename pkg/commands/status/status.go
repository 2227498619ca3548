// Package status implements the status command: one line per resolved
// entry, grouped by item, with a glyph for its status.
package status

import (
	"github.com/arthur-debert/dotf/pkg/logging"
	"github.com/arthur-debert/dotf/pkg/style"
	"github.com/arthur-debert/dotf/pkg/types"
)

// Handler prints the reconciliation status of the configured items
type Handler struct {
	resolver types.Resolver
	items    []types.Item
	out      *style.Output
}

// New creates a status handler
func New(resolver types.Resolver, items []types.Item, out *style.Output) *Handler {
	return &Handler{resolver: resolver, items: items, out: out}
}

// Status prints every entry, or only entries needing attention when brief
// is set. It only fails when resolution fails.
func (h *Handler) Status(brief bool) (map[types.Status]int, error) {
	logger := logging.GetLogger("commands.status")
	logger.Debug().Bool("brief", brief).Int("items", len(h.items)).Msg("Showing status")

	groups, err := h.resolver.Index(h.items)
	if err != nil {
		return nil, err
	}

	counts := make(map[types.Status]int)
	for _, g := range groups {
		var lines []string
		for _, e := range g.Entries {
			counts[e.Status()]++
			if brief && e.Status() == types.StatusOk {
				continue
			}
			lines = append(lines, h.out.EntryLine(e))
		}

		if len(lines) == 0 {
			continue
		}

		h.out.Println(h.out.Header(g.Name))
		for _, l := range lines {
			h.out.Printf("  %s\n", l)
		}
	}

	if !brief {
		h.out.Printf("\n%s\n", h.out.Legend())
	}

	logger.Info().Interface("counts", counts).Msg("Status complete")
	return counts, nil
}
