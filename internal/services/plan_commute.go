package services

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/platform/obs"
	"commute-planner/internal/ports"
	"commute-planner/internal/report"
	"context"
	"errors"
	"fmt"
	"strings"
)

// CommutePlan is the ranked outcome of one planning run.
type CommutePlan struct {
	Schedule    string
	From        domain.Location
	To          domain.Location
	Itineraries []domain.Itinerary
}

type PlanCommuteRequest struct {
	// Schedule document lines.
	Lines []string
	// Optional overrides of the header's start and destination.
	From domain.Location
	To   domain.Location
}

// PlanCommute parses a schedule document, builds its graph and returns every
// itinerary ranked by elapsed time.
func PlanCommute(ctx context.Context, req PlanCommuteRequest) (_ *CommutePlan, err error) {
	defer obs.Time(ctx, "services.PlanCommute")(&err)

	g, err := BuildGraphFromLines(req.Lines)
	if err != nil {
		return nil, fmt.Errorf("plan commute: %w", err)
	}

	return PlanGraph(ctx, g, req.From, req.To)
}

// PlanGraph searches g between from and to, falling back to the graph's
// header for either end left empty.
//
// Explicit endpoints must name a location of the graph. An unreachable
// destination is not an error: the plan simply has no itineraries.
func PlanGraph(ctx context.Context, g *domain.Graph, from, to domain.Location) (*CommutePlan, error) {
	if g == nil {
		return nil, errors.New("plan graph: graph must be non-nil")
	}

	from = domain.Location(strings.TrimSpace(string(from)))
	to = domain.Location(strings.TrimSpace(string(to)))

	if from == "" {
		from = g.Start
	} else if !g.Has(from) {
		return nil, fmt.Errorf("plan graph: from %q: %w", from, domain.ErrUnknownLocation)
	}

	if to == "" {
		to = g.Dest
	} else if !g.Has(to) {
		return nil, fmt.Errorf("plan graph: to %q: %w", to, domain.ErrUnknownLocation)
	}

	found := make([]domain.Itinerary, 0)
	for it := range NewPathSearch(g).ItinerariesContext(ctx, from, to) {
		found = append(found, it)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("plan graph: %w", err)
	}

	obs.Logger(ctx).Debug("search finished",
		"from", from,
		"to", to,
		"routes", g.RouteCount(),
		"itineraries", len(found),
	)

	return &CommutePlan{
		From:        from,
		To:          to,
		Itineraries: report.Rank(found),
	}, nil
}

// LoadGraph returns the graph of a stored schedule, building and caching it
// when the cache has no entry for this version.
func LoadGraph(ctx context.Context, s *domain.Schedule, cache ports.GraphCache) (*domain.Graph, error) {
	if s == nil {
		return nil, errors.New("load graph: schedule must be non-nil")
	}

	if cache != nil {
		if g, ok := cache.Get(s.Version()); ok {
			return g, nil
		}
	}

	g, err := BuildGraphFromLines(strings.Split(s.Source, "\n"))
	if err != nil {
		return nil, fmt.Errorf("load graph %q: %w", s.Name, err)
	}

	if cache != nil {
		cache.Put(s.Version(), g)
	}

	return g, nil
}

// PlanStoredSchedule plans a commute over a schedule held in repo.
func PlanStoredSchedule(
	ctx context.Context,
	name string,
	from domain.Location,
	to domain.Location,
	repo ports.ScheduleRepository,
	cache ports.GraphCache,
) (_ *CommutePlan, err error) {
	defer obs.Time(ctx, "services.PlanStoredSchedule")(&err)

	s, err := repo.GetSchedule(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("plan stored schedule: %w", err)
	}

	g, err := LoadGraph(ctx, s, cache)
	if err != nil {
		return nil, fmt.Errorf("plan stored schedule: %w", err)
	}

	plan, err := PlanGraph(ctx, g, from, to)
	if err != nil {
		return nil, fmt.Errorf("plan stored schedule %q: %w", name, err)
	}
	plan.Schedule = s.Name

	return plan, nil
}
