package report

import (
	"bytes"
	"commute-planner/internal/domain"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timed(t *testing.T, start domain.Location, startTime string, dest domain.Location, destTime string) domain.Route {
	t.Helper()
	r, err := domain.NewTimedRoute(start, startTime, dest, destTime)
	require.NoError(t, err)
	return domain.Timed(r)
}

func TestRank(t *testing.T) {
	slow := domain.Itinerary{Legs: []domain.Route{timed(t, "a", "7:00", "b", "8:00")}}
	fast := domain.Itinerary{Legs: []domain.Route{timed(t, "a", "7:30", "b", "7:40")}}
	alsoFast := domain.Itinerary{Legs: []domain.Route{timed(t, "a", "9:00", "c", "9:10")}}

	in := []domain.Itinerary{slow, fast, alsoFast}
	got := Rank(in)

	assert.Equal(t, []domain.Itinerary{fast, alsoFast, slow}, got)
	assert.Equal(t, slow, in[0], "input must not be reordered")
}

func TestWrite(t *testing.T) {
	flex, err := domain.NewFlexRoute("home", "park", "20")
	require.NoError(t, err)

	its := []domain.Itinerary{
		{Legs: []domain.Route{
			timed(t, "home", "6:55", "busstop", "7:00"),
			timed(t, "busstop", "7:00", "legislature", "7:35"),
			timed(t, "legislature", "7:35", "macewan", "7:50"),
		}},
		{Legs: []domain.Route{domain.Flex(flex)}},
		{},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, its))

	want := "0:55\t6:55\tbusstop -> legislature -> macewan\n" +
		"0:20\tanytime\tpark\n" +
		"0:00\tanytime\t\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteNothing(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}
