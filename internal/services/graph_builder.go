package services

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/schedule"
	"fmt"
	"slices"
)

// BuildGraph validates the document structure and groups routes by origin.
//
// The header must come before any route and appear exactly once. Each
// location's routes keep input order until they are stable-sorted by
// priority, so routes of equal priority stay in the order they were written.
// On error no graph is returned.
func BuildGraph(entries []schedule.Entry) (*domain.Graph, error) {
	headerIdx := -1
	for i, e := range entries {
		if e.Kind == schedule.EntryHeader {
			headerIdx = i
			break
		}
		if e.Kind == schedule.EntryRoute {
			return nil, fmt.Errorf("build graph: %s: %w", position(i, e), domain.ErrRoutesBeforeHeader)
		}
	}

	if headerIdx < 0 {
		return nil, fmt.Errorf("build graph: %w", domain.ErrMissingHeader)
	}

	header := entries[headerIdx].Header
	edges := make(map[domain.Location][]domain.Route)

	for i := headerIdx + 1; i < len(entries); i++ {
		e := entries[i]
		switch e.Kind {
		case schedule.EntryRoute:
			origin := e.Route.Origin()
			edges[origin] = append(edges[origin], e.Route)
		case schedule.EntryBlank, schedule.EntryComment:
			continue
		case schedule.EntryHeader:
			return nil, fmt.Errorf("build graph: %s: %w", position(i, e), domain.ErrDuplicateHeader)
		default:
			return nil, fmt.Errorf("build graph: %s: %s: %w", position(i, e), e.Kind, domain.ErrUnexpectedEntry)
		}
	}

	for _, routes := range edges {
		slices.SortStableFunc(routes, domain.CompareRoutes)
	}

	return &domain.Graph{
		Start: header.Start,
		Dest:  header.Dest,
		Edges: edges,
	}, nil
}

// BuildGraphFromLines parses a schedule document and builds its graph.
func BuildGraphFromLines(lines []string) (*domain.Graph, error) {
	entries, err := schedule.ParseDocument(lines)
	if err != nil {
		return nil, err
	}
	return BuildGraph(entries)
}

func position(i int, e schedule.Entry) string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d", e.Line)
	}
	return fmt.Sprintf("entry %d", i+1)
}
