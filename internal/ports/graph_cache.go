package ports

import "commute-planner/internal/domain"

// Contract for caching built graphs by schedule version.
// Graphs are immutable, so a cached graph may be shared by concurrent searches.
type GraphCache interface {
	Get(version string) (*domain.Graph, bool)
	Put(version string, g *domain.Graph)
}
