package domain

import (
	"strings"
	"time"
)

// Itinerary is a contiguous sequence of legs: the dest of each leg is the
// start of the next. Once a timed leg is present every leg is timed.
type Itinerary struct {
	Legs []Route
}

// Committed reports whether the itinerary is pinned to the clock.
func (it Itinerary) Committed() bool {
	for _, leg := range it.Legs {
		if leg.Kind == KindTimed {
			return true
		}
	}
	return false
}

// Departure is the start time of the first leg, if the itinerary is timed.
func (it Itinerary) Departure() (Clock, bool) {
	if len(it.Legs) == 0 || it.Legs[0].Kind != KindTimed {
		return 0, false
	}
	return it.Legs[0].Timed.StartTime, true
}

// Arrival is the dest time of the last leg, if the itinerary is timed.
func (it Itinerary) Arrival() (Clock, bool) {
	if len(it.Legs) == 0 || it.Legs[len(it.Legs)-1].Kind != KindTimed {
		return 0, false
	}
	return it.Legs[len(it.Legs)-1].Timed.DestTime, true
}

// Elapsed is the wall time from the first departure to the last arrival.
// An itinerary of flex legs only has no clock anchor, so its elapsed time is
// the sum of its durations. The empty itinerary takes no time.
func (it Itinerary) Elapsed() time.Duration {
	dep, okDep := it.Departure()
	arr, okArr := it.Arrival()
	if okDep && okArr {
		return arr.Sub(dep)
	}

	var total time.Duration
	for _, leg := range it.Legs {
		total += leg.Duration()
	}
	return total
}

// Stops lists the destination of every leg, in travel order.
func (it Itinerary) Stops() []Location {
	stops := make([]Location, 0, len(it.Legs))
	for _, leg := range it.Legs {
		stops = append(stops, leg.Destination())
	}
	return stops
}

func (it Itinerary) String() string {
	parts := make([]string, 0, len(it.Legs))
	for _, leg := range it.Legs {
		parts = append(parts, leg.String())
	}
	return strings.Join(parts, "; ")
}
