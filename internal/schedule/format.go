package schedule

import (
	"commute-planner/internal/domain"
	"fmt"
	"io"
	"strings"
)

// Format renders a canonical schedule document: the header line followed by
// one line per route.
func Format(h domain.Header, routes []domain.Route) string {
	var b strings.Builder
	_ = Write(&b, h, routes)
	return b.String()
}

// Write writes the canonical document for h and routes to w.
func Write(w io.Writer, h domain.Header, routes []domain.Route) error {
	if _, err := fmt.Fprintln(w, h); err != nil {
		return fmt.Errorf("write schedule header: %w", err)
	}
	for _, r := range routes {
		if _, err := fmt.Fprintln(w, r); err != nil {
			return fmt.Errorf("write schedule route %s: %w", r, err)
		}
	}
	return nil
}
