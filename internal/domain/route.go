package domain

import (
	"cmp"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DurationPattern is the lexical shape of a flex duration: whole minutes.
const DurationPattern = `\d+`

var durationRe = regexp.MustCompile(`^` + DurationPattern + `$`)

// MaxFlexMinutes is the longest flex duration that fits in a time.Duration.
const MaxFlexMinutes = math.MaxInt64 / int64(time.Minute)

// Location is an opaque word token naming a place in the commute graph.
type Location string

// Header declares the overall start and destination of a schedule.
type Header struct {
	Start Location
	Dest  Location
}

func (h Header) String() string {
	return fmt.Sprintf("%s %s", h.Start, h.Dest)
}

// FlexRoute is an edge that can be taken at any time. Cycling from home to
// the train takes 15 minutes whenever it happens.
type FlexRoute struct {
	Start    Location
	Dest     Location
	Duration time.Duration
}

// NewFlexRoute builds a FlexRoute from a whole-minute duration token.
func NewFlexRoute(start, dest Location, durationToken string) (FlexRoute, error) {
	tok := strings.TrimSpace(durationToken)
	if !durationRe.MatchString(tok) {
		return FlexRoute{}, fmt.Errorf("new flex route %s -> %s: duration %q: %w", start, dest, durationToken, ErrInvalidDuration)
	}
	minutes, err := strconv.ParseInt(tok, 10, 64)
	if err != nil || minutes > MaxFlexMinutes {
		return FlexRoute{}, fmt.Errorf("new flex route %s -> %s: duration %q: %w", start, dest, durationToken, ErrInvalidDuration)
	}

	return FlexRoute{
		Start:    start,
		Dest:     dest,
		Duration: time.Duration(minutes) * time.Minute,
	}, nil
}

func (f FlexRoute) String() string {
	return fmt.Sprintf("f %s %s %d", f.Start, f.Dest, int(f.Duration/time.Minute))
}

// Anchor pins a flex route to the clock. Exactly one of Begin or End must be set.
type Anchor struct {
	Begin *Clock
	End   *Clock
}

// Promote converts the flex route into the equivalent timed route anchored at
// the given clock time.
func (f FlexRoute) Promote(a Anchor) (TimedRoute, error) {
	switch {
	case a.Begin != nil && a.End == nil:
		begin := *a.Begin
		return MakeTimedRoute(f.Start, begin, f.Dest, begin.Add(f.Duration))
	case a.End != nil && a.Begin == nil:
		end := *a.End
		return MakeTimedRoute(f.Start, end.Add(-f.Duration), f.Dest, end)
	default:
		return TimedRoute{}, fmt.Errorf("promote %s: %w", f, ErrAmbiguousAnchor)
	}
}

// PromoteFrom anchors the flex route so it departs at begin.
func (f FlexRoute) PromoteFrom(begin Clock) (TimedRoute, error) {
	return f.Promote(Anchor{Begin: &begin})
}

// PromoteUntil anchors the flex route so it arrives at end.
func (f FlexRoute) PromoteUntil(end Clock) (TimedRoute, error) {
	return f.Promote(Anchor{End: &end})
}

// TimedRoute is an edge with fixed departure and arrival times, like a
// scheduled bus or train. StartTime is always strictly before DestTime.
type TimedRoute struct {
	Start     Location
	StartTime Clock
	Dest      Location
	DestTime  Clock
}

// NewTimedRoute builds a TimedRoute from H:MM clock tokens.
func NewTimedRoute(start Location, startTimeToken string, dest Location, destTimeToken string) (TimedRoute, error) {
	startTime, err := ParseClock(startTimeToken)
	if err != nil {
		return TimedRoute{}, fmt.Errorf("new timed route %s -> %s: start time: %w", start, dest, err)
	}

	destTime, err := ParseClock(destTimeToken)
	if err != nil {
		return TimedRoute{}, fmt.Errorf("new timed route %s -> %s: dest time: %w", start, dest, err)
	}

	return MakeTimedRoute(start, startTime, dest, destTime)
}

// MakeTimedRoute builds a TimedRoute from clock values.
func MakeTimedRoute(start Location, startTime Clock, dest Location, destTime Clock) (TimedRoute, error) {
	if !startTime.Before(destTime) {
		return TimedRoute{}, fmt.Errorf("new timed route %s %s -> %s %s: %w", start, startTime, dest, destTime, ErrInvalidTimeOrder)
	}

	return TimedRoute{
		Start:     start,
		StartTime: startTime,
		Dest:      dest,
		DestTime:  destTime,
	}, nil
}

func (t TimedRoute) Duration() time.Duration {
	return t.DestTime.Sub(t.StartTime)
}

func (t TimedRoute) String() string {
	return fmt.Sprintf("t %s %s %s %s", t.Start, t.StartTime, t.Dest, t.DestTime)
}

type RouteKind uint8

const (
	KindFlex RouteKind = iota
	KindTimed
)

func (k RouteKind) String() string {
	switch k {
	case KindFlex:
		return "flex"
	case KindTimed:
		return "timed"
	default:
		return fmt.Sprintf("RouteKind(%d)", uint8(k))
	}
}

// Route is one edge of the commute graph: either a flex or a timed route,
// selected by Kind. Only the field matching Kind is meaningful, so two Routes
// of different kinds never compare equal.
type Route struct {
	Kind  RouteKind
	Flex  FlexRoute
	Timed TimedRoute
}

func Flex(f FlexRoute) Route { return Route{Kind: KindFlex, Flex: f} }

func Timed(t TimedRoute) Route { return Route{Kind: KindTimed, Timed: t} }

func (r Route) Origin() Location {
	if r.Kind == KindTimed {
		return r.Timed.Start
	}
	return r.Flex.Start
}

func (r Route) Destination() Location {
	if r.Kind == KindTimed {
		return r.Timed.Dest
	}
	return r.Flex.Dest
}

// Duration is the travel time of the leg.
func (r Route) Duration() time.Duration {
	if r.Kind == KindTimed {
		return r.Timed.Duration()
	}
	return r.Flex.Duration
}

func (r Route) String() string {
	if r.Kind == KindTimed {
		return r.Timed.String()
	}
	return r.Flex.String()
}

// CompareRoutes orders routes by priority: flex before timed, shorter flex
// first, earlier-departing timed first. Routes that tie compare equal so a
// stable sort keeps input order.
func CompareRoutes(a, b Route) int {
	if a.Kind != b.Kind {
		return cmp.Compare(a.Kind, b.Kind)
	}

	switch a.Kind {
	case KindFlex:
		return cmp.Compare(a.Flex.Duration, b.Flex.Duration)
	case KindTimed:
		return cmp.Compare(a.Timed.StartTime, b.Timed.StartTime)
	default:
		return 0
	}
}
