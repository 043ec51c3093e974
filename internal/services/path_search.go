package services

import (
	"commute-planner/internal/domain"
	"context"
	"fmt"
	"iter"
	"maps"
	"slices"
)

// PathSearch enumerates itineraries over a single graph.
//
// The search is a depth-first walk over simple paths. While the path holds
// only flex legs it is unconstrained. The first timed leg commits the path
// to the clock: every flex leg already taken is promoted backwards from that
// leg's departure, and from then on each leg must depart no earlier than the
// previous leg arrives (the floor). Flex legs taken after the commitment are
// promoted forwards from the floor.
type PathSearch struct {
	graph *domain.Graph
}

func NewPathSearch(g *domain.Graph) *PathSearch {
	return &PathSearch{graph: g}
}

// searchState is one pending branch. A nil floor means no timed commitment
// has been made yet. Branches never share mutable state: visited is cloned
// before it is extended and legs are always copied on append.
type searchState struct {
	location domain.Location
	visited  map[domain.Location]struct{}
	legs     []domain.Route
	floor    *domain.Clock
}

// Itineraries returns the itineraries from start to dest in discovery order.
// Branches are explored lowest priority key first. Each call to the returned
// sequence runs a fresh search.
func (s *PathSearch) Itineraries(start, dest domain.Location) iter.Seq[domain.Itinerary] {
	return s.ItinerariesContext(context.Background(), start, dest)
}

// ItinerariesContext is Itineraries bounded by ctx. The sequence ends early
// once ctx is done; callers tell a cut-short search apart by checking
// ctx.Err() afterwards.
func (s *PathSearch) ItinerariesContext(ctx context.Context, start, dest domain.Location) iter.Seq[domain.Itinerary] {
	return func(yield func(domain.Itinerary) bool) {
		stack := []searchState{{
			location: start,
			visited:  map[domain.Location]struct{}{},
		}}

		for len(stack) > 0 {
			if ctx.Err() != nil {
				return
			}

			st := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if _, seen := st.visited[st.location]; seen {
				continue
			}

			// dest may also be a waypoint, so the branch keeps going.
			if st.location == dest {
				if !yield(domain.Itinerary{Legs: slices.Clone(st.legs)}) {
					return
				}
			}

			visited := maps.Clone(st.visited)
			visited[st.location] = struct{}{}

			routes := s.graph.Routes(st.location)
			for i := len(routes) - 1; i >= 0; i-- {
				next, ok := advance(st, routes[i])
				if !ok {
					continue
				}
				next.visited = visited
				stack = append(stack, next)
			}
		}
	}
}

// FindItineraries collects every itinerary from start to dest.
func FindItineraries(g *domain.Graph, start, dest domain.Location) []domain.Itinerary {
	return slices.Collect(NewPathSearch(g).Itineraries(start, dest))
}

// advance takes route r from state st. It reports false when r cannot be
// taken: a timed leg that departs before the floor, or a flex leg that
// cannot be promoted.
func advance(st searchState, r domain.Route) (searchState, bool) {
	next := searchState{location: r.Destination()}

	switch r.Kind {
	case domain.KindFlex:
		if st.floor == nil {
			next.legs = appendLeg(st.legs, r)
			return next, true
		}

		promoted, err := r.Flex.PromoteFrom(*st.floor)
		if err != nil {
			return searchState{}, false
		}
		next.legs = appendLeg(st.legs, domain.Timed(promoted))
		floor := promoted.DestTime
		next.floor = &floor
		return next, true

	case domain.KindTimed:
		if st.floor == nil {
			prefix, err := PromotePrefix(st.legs, r.Timed.StartTime)
			if err != nil {
				return searchState{}, false
			}
			next.legs = append(prefix, r)
		} else {
			if r.Timed.StartTime.Before(*st.floor) {
				return searchState{}, false
			}
			next.legs = appendLeg(st.legs, r)
		}
		floor := r.Timed.DestTime
		next.floor = &floor
		return next, true

	default:
		return searchState{}, false
	}
}

// PromotePrefix pins a run of legs to the clock so that the last one arrives
// at anchor. It walks backwards: each flex leg is promoted to end where the
// following leg begins. Timed legs are kept and must arrive by the time the
// following leg departs. The input is not modified.
func PromotePrefix(legs []domain.Route, anchor domain.Clock) ([]domain.Route, error) {
	out := make([]domain.Route, len(legs), len(legs)+1)
	end := anchor

	for i := len(legs) - 1; i >= 0; i-- {
		leg := legs[i]
		switch leg.Kind {
		case domain.KindFlex:
			t, err := leg.Flex.PromoteUntil(end)
			if err != nil {
				return nil, fmt.Errorf("promote prefix: leg %d: %w", i+1, err)
			}
			out[i] = domain.Timed(t)
			end = t.StartTime
		case domain.KindTimed:
			if end.Before(leg.Timed.DestTime) {
				return nil, fmt.Errorf("promote prefix: leg %d arrives %s after %s: %w", i+1, leg.Timed.DestTime, end, domain.ErrInvalidTimeOrder)
			}
			out[i] = leg
			end = leg.Timed.StartTime
		}
	}

	return out, nil
}

func appendLeg(legs []domain.Route, r domain.Route) []domain.Route {
	out := make([]domain.Route, len(legs), len(legs)+1)
	copy(out, legs)
	return append(out, r)
}
