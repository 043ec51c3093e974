package domain

import (
	"slices"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustFlex(t *testing.T, start, dest Location, minutes string) FlexRoute {
	t.Helper()
	f, err := NewFlexRoute(start, dest, minutes)
	require.NoError(t, err)
	return f
}

func mustTimed(t *testing.T, start Location, startTime string, dest Location, destTime string) TimedRoute {
	t.Helper()
	r, err := NewTimedRoute(start, startTime, dest, destTime)
	require.NoError(t, err)
	return r
}

func TestNewFlexRoute(t *testing.T) {
	f := mustFlex(t, "home", "train", "15")
	assert.Equal(t, FlexRoute{Start: "home", Dest: "train", Duration: 15 * time.Minute}, f)
	assert.Equal(t, "f home train 15", f.String())

	zero := mustFlex(t, "home", "porch", "0")
	assert.Equal(t, time.Duration(0), zero.Duration)

	longest := mustFlex(t, "home", "train", strconv.FormatInt(MaxFlexMinutes, 10))
	assert.Positive(t, longest.Duration)

	for _, tok := range []string{"-5", "+5", "1.5", "ten", "", "200000000", "99999999999999999999"} {
		_, err := NewFlexRoute("home", "train", tok)
		assert.ErrorIs(t, err, ErrInvalidDuration, "token %q", tok)
	}
}

func TestNewTimedRoute(t *testing.T) {
	r := mustTimed(t, "north_berkeley", "7:15", "millbrae", "8:11")
	assert.Equal(t, NewClock(7, 15), r.StartTime)
	assert.Equal(t, NewClock(8, 11), r.DestTime)
	assert.Equal(t, 56*time.Minute, r.Duration())
	assert.Equal(t, "t north_berkeley 7:15 millbrae 8:11", r.String())

	t.Run("start equal to dest is rejected", func(t *testing.T) {
		_, err := NewTimedRoute("a", "7:15", "b", "7:15")
		assert.ErrorIs(t, err, ErrInvalidTimeOrder)
	})

	t.Run("start after dest is rejected", func(t *testing.T) {
		_, err := NewTimedRoute("a", "9:00", "b", "8:00")
		assert.ErrorIs(t, err, ErrInvalidTimeOrder)
	})

	t.Run("malformed time is rejected", func(t *testing.T) {
		_, err := NewTimedRoute("a", "7h15", "b", "8:00")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})

	t.Run("out of range time is rejected", func(t *testing.T) {
		_, err := NewTimedRoute("a", "7:15", "b", "99:99")
		assert.ErrorIs(t, err, ErrInvalidTimeFormat)
	})
}

func TestRouteEquality(t *testing.T) {
	a := Flex(mustFlex(t, "home", "bart", "15"))
	b := Flex(mustFlex(t, "home", "bart", "15"))
	c := Flex(mustFlex(t, "home", "bart", "20"))
	timed := Timed(mustTimed(t, "home", "7:00", "bart", "7:15"))

	assert.True(t, a == b)
	assert.False(t, a == c)
	assert.False(t, a == timed)
	assert.Equal(t, Location("home"), timed.Origin())
	assert.Equal(t, Location("bart"), timed.Destination())
	assert.Equal(t, KindTimed, timed.Kind)
}

func TestPromote(t *testing.T) {
	f := mustFlex(t, "home", "bart", "15")
	noon := NewClock(12, 0)

	t.Run("from begin", func(t *testing.T) {
		got, err := f.PromoteFrom(noon)
		require.NoError(t, err)
		assert.Equal(t, mustTimed(t, "home", "12:00", "bart", "12:15"), got)
	})

	t.Run("until end", func(t *testing.T) {
		got, err := f.PromoteUntil(noon)
		require.NoError(t, err)
		assert.Equal(t, mustTimed(t, "home", "11:45", "bart", "12:00"), got)
	})

	t.Run("both anchors", func(t *testing.T) {
		_, err := f.Promote(Anchor{Begin: &noon, End: &noon})
		assert.ErrorIs(t, err, ErrAmbiguousAnchor)
	})

	t.Run("no anchor", func(t *testing.T) {
		_, err := f.Promote(Anchor{})
		assert.ErrorIs(t, err, ErrAmbiguousAnchor)
	})

	t.Run("zero duration violates order", func(t *testing.T) {
		z := mustFlex(t, "home", "porch", "0")
		_, err := z.PromoteFrom(noon)
		assert.ErrorIs(t, err, ErrInvalidTimeOrder)
	})
}

func TestPromoteRoundTrip(t *testing.T) {
	flexes := []FlexRoute{
		mustFlex(t, "a", "b", "1"),
		mustFlex(t, "a", "b", "15"),
		mustFlex(t, "a", "b", "90"),
	}
	for _, f := range flexes {
		for _, at := range []Clock{NewClock(0, 0), NewClock(6, 59), NewClock(12, 30), NewClock(22, 0)} {
			begin, err := f.PromoteFrom(at)
			require.NoError(t, err)
			assert.Equal(t, at, begin.StartTime)
			assert.Equal(t, f.Duration, begin.DestTime.Sub(at))

			end, err := f.PromoteUntil(at)
			require.NoError(t, err)
			assert.Equal(t, at, end.DestTime)
			assert.Equal(t, f.Duration, at.Sub(end.StartTime))
		}
	}
}

func TestCompareRoutes(t *testing.T) {
	t.Run("flex by duration", func(t *testing.T) {
		l := []Route{Flex(mustFlex(t, "home", "bart", "15")), Flex(mustFlex(t, "home", "ferry", "25"))}
		assert.True(t, slices.IsSortedFunc(l, CompareRoutes))
	})

	t.Run("timed by start time", func(t *testing.T) {
		l := []Route{
			Timed(mustTimed(t, "north_berkeley", "7:15", "millbrae", "8:11")),
			Timed(mustTimed(t, "north_berkeley", "8:15", "millbrae", "9:11")),
		}
		assert.True(t, slices.IsSortedFunc(l, CompareRoutes))
	})

	t.Run("flex before timed", func(t *testing.T) {
		l := []Route{
			Timed(mustTimed(t, "north_berkeley", "0:15", "millbrae", "0:20")),
			Flex(mustFlex(t, "home", "bart", "600")),
		}
		slices.SortStableFunc(l, CompareRoutes)
		assert.Equal(t, KindFlex, l[0].Kind)
		assert.Equal(t, KindTimed, l[1].Kind)
	})

	t.Run("sort is stable and idempotent", func(t *testing.T) {
		l := []Route{
			Timed(mustTimed(t, "s", "8:00", "x", "9:00")),
			Flex(mustFlex(t, "s", "y", "10")),
			Timed(mustTimed(t, "s", "7:00", "z", "7:30")),
			Flex(mustFlex(t, "s", "w", "10")),
			Timed(mustTimed(t, "s", "7:00", "q", "8:30")),
			Flex(mustFlex(t, "s", "v", "5")),
		}
		slices.SortStableFunc(l, CompareRoutes)

		want := []Location{"v", "y", "w", "z", "q", "x"}
		got := make([]Location, 0, len(l))
		for _, r := range l {
			got = append(got, r.Destination())
		}
		assert.Equal(t, want, got)

		again := slices.Clone(l)
		slices.SortStableFunc(again, CompareRoutes)
		assert.Equal(t, l, again)
	})
}

func TestItineraryElapsed(t *testing.T) {
	assert.Equal(t, time.Duration(0), Itinerary{}.Elapsed())

	flexOnly := Itinerary{Legs: []Route{
		Flex(mustFlex(t, "a", "b", "5")),
		Flex(mustFlex(t, "b", "c", "10")),
	}}
	assert.Equal(t, 15*time.Minute, flexOnly.Elapsed())
	_, ok := flexOnly.Departure()
	assert.False(t, ok)
	assert.False(t, flexOnly.Committed())

	timed := Itinerary{Legs: []Route{
		Timed(mustTimed(t, "a", "6:55", "b", "7:00")),
		Timed(mustTimed(t, "b", "7:00", "c", "7:35")),
		Timed(mustTimed(t, "c", "7:35", "d", "7:50")),
	}}
	assert.Equal(t, 55*time.Minute, timed.Elapsed())
	dep, ok := timed.Departure()
	require.True(t, ok)
	assert.Equal(t, NewClock(6, 55), dep)
	assert.Equal(t, []Location{"b", "c", "d"}, timed.Stops())
}
