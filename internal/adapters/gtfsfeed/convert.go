// Package gtfsfeed turns a GTFS static feed into a commute schedule: every
// pair of consecutive stops on a trip becomes one timed route.
package gtfsfeed

import (
	"commute-planner/internal/domain"
	"commute-planner/internal/schedule"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/jamespfennell/gtfs"
)

var nonWordRe = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Options selects what part of a feed is converted.
type Options struct {
	// From and To become the schedule header. They are stop IDs and are
	// sanitised the same way as every other stop.
	From string
	To   string
	// RouteIDs limits conversion to trips of these GTFS routes. Empty means
	// every trip.
	RouteIDs []string
}

// Stats counts what the conversion kept and what it had to drop.
type Stats struct {
	Trips        int
	Routes       int
	PastMidnight int
	OutOfOrder   int
	Duplicates   int
	// Collisions counts stop IDs that sanitise onto a location already
	// claimed by a different stop ID. Their routes are merged.
	Collisions int
}

// LocationFor maps a GTFS stop ID onto a location word. Runs of characters
// that are not letters, digits or underscores become a single underscore.
func LocationFor(stopID string) domain.Location {
	s := nonWordRe.ReplaceAllString(strings.TrimSpace(stopID), "_")
	return domain.Location(s)
}

// stopLocations remembers which stop ID first claimed each location.
type stopLocations struct {
	owner    map[domain.Location]string
	collided map[string]struct{}
	stats    *Stats
}

func newStopLocations(stats *Stats) *stopLocations {
	return &stopLocations{
		owner:    map[domain.Location]string{},
		collided: map[string]struct{}{},
		stats:    stats,
	}
}

func (l *stopLocations) of(stopID string) domain.Location {
	id := strings.TrimSpace(stopID)
	loc := LocationFor(id)

	owner, ok := l.owner[loc]
	switch {
	case !ok:
		l.owner[loc] = id
	case owner != id:
		if _, counted := l.collided[id]; !counted {
			l.collided[id] = struct{}{}
			l.stats.Collisions++
		}
	}
	return loc
}

// Convert builds the header and timed routes of a schedule from static.
//
// Schedules cover a single day, so hops departing or arriving at 24:00 or
// later are dropped, as are hops whose departure is not strictly before the
// arrival once truncated to whole minutes.
func Convert(static *gtfs.Static, opts Options) (domain.Header, []domain.Route, Stats, error) {
	var stats Stats

	if static == nil {
		return domain.Header{}, nil, stats, errors.New("convert feed: static data is nil")
	}

	locations := newStopLocations(&stats)

	h := domain.Header{Start: locations.of(opts.From), Dest: locations.of(opts.To)}
	if h.Start == "" || h.Dest == "" || h.Start == "_" || h.Dest == "_" {
		return domain.Header{}, nil, stats, errors.New("convert feed: from and to stops are required")
	}

	var wanted map[string]struct{}
	if len(opts.RouteIDs) > 0 {
		wanted = make(map[string]struct{}, len(opts.RouteIDs))
		for _, id := range opts.RouteIDs {
			wanted[strings.TrimSpace(id)] = struct{}{}
		}
	}

	seen := map[domain.TimedRoute]struct{}{}
	routes := make([]domain.Route, 0, 256)

	for _, trip := range static.Trips {
		if wanted != nil {
			if trip.Route == nil {
				continue
			}
			if _, ok := wanted[trip.Route.Id]; !ok {
				continue
			}
		}
		stats.Trips++

		stopTimes := slices.Clone(trip.StopTimes)
		slices.SortFunc(stopTimes, func(a, b gtfs.ScheduledStopTime) int {
			return a.StopSequence - b.StopSequence
		})

		for i := 1; i < len(stopTimes); i++ {
			from, to := stopTimes[i-1], stopTimes[i]
			if from.Stop == nil || to.Stop == nil {
				continue
			}

			if from.DepartureTime >= 24*time.Hour || to.ArrivalTime >= 24*time.Hour {
				stats.PastMidnight++
				continue
			}

			tr, err := domain.MakeTimedRoute(
				locations.of(from.Stop.Id), clockOf(from.DepartureTime),
				locations.of(to.Stop.Id), clockOf(to.ArrivalTime),
			)
			if err != nil {
				stats.OutOfOrder++
				continue
			}

			if _, dup := seen[tr]; dup {
				stats.Duplicates++
				continue
			}
			seen[tr] = struct{}{}
			routes = append(routes, domain.Timed(tr))
		}
	}

	slices.SortStableFunc(routes, func(a, b domain.Route) int {
		if c := strings.Compare(string(a.Origin()), string(b.Origin())); c != 0 {
			return c
		}
		return domain.CompareRoutes(a, b)
	})
	stats.Routes = len(routes)

	return h, routes, stats, nil
}

// Import loads, parses and converts the feed at source and renders it as a
// schedule document.
func Import(ctx context.Context, f *Fetcher, source string, opts Options) (string, Stats, error) {
	b, err := f.Load(ctx, source)
	if err != nil {
		return "", Stats{}, fmt.Errorf("import feed: %w", err)
	}

	static, err := gtfs.ParseStatic(b, gtfs.ParseStaticOptions{})
	if err != nil {
		return "", Stats{}, fmt.Errorf("import feed: parse static data: %w", err)
	}

	h, routes, stats, err := Convert(static, opts)
	if err != nil {
		return "", stats, fmt.Errorf("import feed: %w", err)
	}

	return schedule.Format(h, routes), stats, nil
}

// clockOf truncates a time since midnight to whole minutes.
func clockOf(d time.Duration) domain.Clock {
	return domain.Clock(0).Add(d)
}
