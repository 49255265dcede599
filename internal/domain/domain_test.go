package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	start := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)
	w := NewWindow(start, end)

	assert.True(t, w.Valid())
	assert.True(t, NewWindow(start, start).Valid())
	assert.False(t, NewWindow(end, start).Valid())

	assert.True(t, w.Contains(start))
	assert.True(t, w.Contains(end))
	assert.False(t, w.Contains(end.Add(time.Nanosecond)))
	assert.True(t, w.NotStarted(start.Add(-time.Nanosecond)))
	assert.False(t, w.NotStarted(start))

	checkIn := CheckInWindow(start, end)
	assert.True(t, checkIn.Contains(start.Add(-time.Hour)))
	assert.False(t, checkIn.Contains(start.Add(-time.Hour-time.Second)))
	assert.True(t, checkIn.Contains(end))
}

func TestEventSearchCriteria_Matches(t *testing.T) {
	start := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	ev := &Event{CategoryID: "c1", Title: "Jazz Night", Description: "Live music", StartTime: start, Status: EventStatusScheduled, Tags: []string{"jazz", "outdoor"}}
	before, after := start.Add(-time.Hour), start.Add(time.Hour)
	draft := EventStatusDraft

	assert.True(t, EventSearchCriteria{}.Matches(ev))
	assert.True(t, EventSearchCriteria{CategoryID: "c1", Keyword: "MUSIC", StartFrom: &before, StartTo: &after}.Matches(ev))
	assert.False(t, EventSearchCriteria{CategoryID: "c2"}.Matches(ev))
	assert.False(t, EventSearchCriteria{Keyword: "rock"}.Matches(ev))
	assert.False(t, EventSearchCriteria{StartFrom: &after}.Matches(ev))
	assert.False(t, EventSearchCriteria{Status: &draft}.Matches(ev))

	assert.True(t, EventSearchCriteria{Tags: []string{"outdoor", "jazz"}}.Matches(ev))
	assert.False(t, EventSearchCriteria{Tags: []string{"jazz", "indoor"}}.Matches(ev))
	assert.True(t, ev.HasAllTags([]string{"jazz"}))
	assert.False(t, ev.HasAllTags([]string{"jazz", "indoor"}))
}

func TestSummarize(t *testing.T) {
	empty := Summarize("ev-1", nil)
	assert.Zero(t, empty.TotalRatings)
	assert.Empty(t, empty.Distribution)
	assert.Nil(t, empty.CategoryAverages)

	s := Summarize("ev-1", []*EventRating{
		{Rating: 5, Categories: map[string]int{"venue": 4}},
		{Rating: 3, Categories: map[string]int{"venue": 2, "speakers": 5}},
		{Rating: 5},
	})
	assert.Equal(t, 3, s.TotalRatings)
	assert.InDelta(t, 13.0/3.0, s.AverageRating, 1e-9)
	assert.Equal(t, map[int]int{5: 2, 3: 1}, s.Distribution)
	assert.Equal(t, map[string]float64{"venue": 3, "speakers": 5}, s.CategoryAverages)
}

func TestCanRateAndValidRating(t *testing.T) {
	end := time.Date(2025, 6, 15, 20, 0, 0, 0, time.UTC)
	assert.False(t, CanRate(end, end, true))
	assert.True(t, CanRate(end, end.Add(time.Second), true))
	assert.False(t, CanRate(end, end.Add(time.Second), false))

	assert.True(t, ValidRating(MinRating))
	assert.True(t, ValidRating(MaxRating))
	assert.False(t, ValidRating(MaxRating+1))
}
