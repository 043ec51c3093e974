package domain

// Graph is the commute network of one schedule: the declared start and
// destination plus, for every location, its outgoing routes sorted by
// priority. A Graph is read-only once built.
type Graph struct {
	Start Location
	Dest  Location
	Edges map[Location][]Route
}

// Routes returns the prioritized routes leaving loc.
func (g *Graph) Routes(loc Location) []Route {
	if g == nil {
		return nil
	}
	return g.Edges[loc]
}

// Has reports whether loc appears as an endpoint of any route or in the header.
func (g *Graph) Has(loc Location) bool {
	if g == nil {
		return false
	}
	if loc == g.Start || loc == g.Dest {
		return true
	}
	if _, ok := g.Edges[loc]; ok {
		return true
	}
	for _, routes := range g.Edges {
		for _, r := range routes {
			if r.Destination() == loc {
				return true
			}
		}
	}
	return false
}

// RouteCount is the number of edges in the graph.
func (g *Graph) RouteCount() int {
	n := 0
	for _, routes := range g.Edges {
		n += len(routes)
	}
	return n
}
