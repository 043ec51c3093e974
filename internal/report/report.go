// Package report ranks itineraries and renders them for people.
package report

import (
	"cmp"
	"commute-planner/internal/domain"
	"fmt"
	"io"
	"slices"
	"strings"
)

// Arrow separates stops in a rendered itinerary.
const Arrow = " -> "

// Rank orders itineraries by total elapsed time, fastest first. Ties keep
// discovery order. The input slice is not modified.
func Rank(its []domain.Itinerary) []domain.Itinerary {
	ranked := slices.Clone(its)
	slices.SortStableFunc(ranked, func(a, b domain.Itinerary) int {
		return cmp.Compare(a.Elapsed(), b.Elapsed())
	})
	return ranked
}

// Line renders one itinerary as: elapsed, departure, stops.
// An itinerary without clock commitments departs "anytime".
func Line(it domain.Itinerary) string {
	departure := "anytime"
	if dep, ok := it.Departure(); ok {
		departure = dep.String()
	}

	stops := it.Stops()
	names := make([]string, 0, len(stops))
	for _, s := range stops {
		names = append(names, string(s))
	}

	return fmt.Sprintf("%s\t%s\t%s", domain.FormatDuration(it.Elapsed()), departure, strings.Join(names, Arrow))
}

// Write prints one line per itinerary, in the order given.
func Write(w io.Writer, its []domain.Itinerary) error {
	for i, it := range its {
		if _, err := fmt.Fprintln(w, Line(it)); err != nil {
			return fmt.Errorf("write itinerary %d: %w", i+1, err)
		}
	}
	return nil
}
