package main

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func march2025() time.Time {
	return time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local)
}

func TestPrepareChart_FiltersAndSorts(t *testing.T) {
	records := []Record{
		moodRow("2025-03-02", "Evening", 1, "7", ""),
		moodRow("2025-03-02", "Morning", -1, "6", ""),
		moodRow("2025-02-28", "Morning", 3, "8", "previous month"),
		moodRow("2024-03-02", "Morning", 3, "8", "previous year"),
		moodRow("2025-03-01", "Evening", 0, "", ""),
		{Date: "garbage", TimeOfDay: "Morning", Mood: "1"},
		{Date: "2025-03-05", TimeOfDay: "Morning", Mood: "7"},
	}

	data := PrepareChart(records, march2025(), StyleLine)
	require.Len(t, data.Points, 3)
	assert.Equal(t, 2, data.Dropped)

	assert.Equal(t, 1, data.Points[0].Entry.Date.Day())
	assert.Equal(t, 2, data.Points[1].Entry.Date.Day())
	assert.Equal(t, Morning, data.Points[1].Entry.TimeOfDay)
	assert.Equal(t, Evening, data.Points[2].Entry.TimeOfDay)

	for i := 1; i < len(data.Points); i++ {
		prev, cur := data.Points[i-1], data.Points[i]
		ordered := prev.Entry.Date.Before(cur.Entry.Date) ||
			(prev.Entry.Date.Equal(cur.Entry.Date) && prev.SortKey <= cur.SortKey)
		assert.True(t, ordered, "points %d and %d out of order", i-1, i)
	}
	for _, p := range data.Points {
		assert.Equal(t, time.March, p.Entry.Date.Month())
		assert.Equal(t, 2025, p.Entry.Date.Year())
		assert.Equal(t, Gradient[p.ColorIndex], p.Color)
	}
}

func TestPrepareChart_LineXPositions(t *testing.T) {
	records := []Record{
		moodRow("2025-03-10", "Evening", 2, "7", ""),
		moodRow("2025-03-10", "Morning", 1, "7", ""),
		moodRow("2025-03-11", "Night", -2, "5", ""),
	}

	data := PrepareChart(records, march2025(), StyleLine)
	require.Len(t, data.Points, 3)
	assert.Equal(t, 10.0, data.Points[0].X)
	assert.Equal(t, 10.5, data.Points[1].X)
	assert.Equal(t, 11.5, data.Points[2].X, "unknown labels sort and sit like Evening")
}

func TestPrepareChart_DotsXPositions(t *testing.T) {
	records := []Record{
		moodRow("2025-03-10", "Evening", 2, "7", ""),
		moodRow("2025-03-10", "Morning", 1, "7", ""),
	}

	data := PrepareChart(records, march2025(), StyleDots)
	require.Len(t, data.Points, 2)
	assert.InDelta(t, 9.8, data.Points[0].X, 1e-9)
	assert.InDelta(t, 10.2, data.Points[1].X, 1e-9)
}

func TestPrepareChart_StableForDuplicates(t *testing.T) {
	records := []Record{
		moodRow("2025-03-03", "Morning", 1, "", "first"),
		moodRow("2025-03-03", "Morning", 2, "", "second"),
	}

	data := PrepareChart(records, march2025(), StyleLine)
	require.Len(t, data.Points, 2)
	assert.Equal(t, "first", data.Points[0].Entry.Note)
	assert.Equal(t, "second", data.Points[1].Entry.Note)
}

func TestPrepareChart_Empty(t *testing.T) {
	data := PrepareChart(nil, march2025(), StyleLine)
	assert.Empty(t, data.Points)
	assert.Zero(t, data.Dropped)
	assert.Equal(t, Summary{}, data.Summary())
}

func TestChartData_Summary(t *testing.T) {
	records := []Record{
		moodRow("2025-03-01", "Morning", 2, "8", ""),
		moodRow("2025-03-01", "Evening", -1, "6", ""),
		moodRow("2025-03-02", "Morning", 2, "7", ""),
	}

	s := PrepareChart(records, march2025(), StyleLine).Summary()
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, 2, s.Mornings)
	assert.Equal(t, 1, s.Evenings)
	assert.InDelta(t, 1.0, s.AvgMood, 1e-9)
	assert.InDelta(t, 7.0, s.AvgSleep, 1e-9)
}

func TestParseMonth(t *testing.T) {
	m, err := ParseMonth("", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, time.October, 1, 0, 0, 0, 0, time.Local), m)

	m, err = ParseMonth("2025-12", testNow)
	require.NoError(t, err)
	assert.Equal(t, time.December, m.Month())
	assert.Equal(t, 1, m.Day())

	_, err = ParseMonth("12/2025", testNow)
	assert.ErrorIs(t, err, ErrInvalidMonth)
}

func TestWindow(t *testing.T) {
	day := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.Local) }

	start, end, err := Window("day", testNow)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 19), start)
	assert.Equal(t, day(2026, time.October, 20), end)

	// testNow is a Monday
	start, end, err = Window("week", testNow)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 19), start)
	assert.Equal(t, day(2026, time.October, 26), end)

	sunday := time.Date(2026, time.October, 25, 22, 0, 0, 0, time.Local)
	start, _, err = Window("week", sunday)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 19), start)

	start, end, err = Window("month", testNow)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.October, 1), start)
	assert.Equal(t, day(2026, time.November, 1), end)

	start, end, err = Window("year", testNow)
	require.NoError(t, err)
	assert.Equal(t, day(2026, time.January, 1), start)
	assert.Equal(t, day(2027, time.January, 1), end)

	_, _, err = Window("decade", testNow)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
}

func TestFilterWindow(t *testing.T) {
	records := []Record{
		moodRow("2026-10-20", "Morning", 1, "", ""),
		moodRow("2026-10-19", "Evening", 2, "", ""),
		moodRow("2026-10-19", "Morning", 3, "", ""),
		moodRow("2026-10-18", "Evening", 4, "", ""),
		{Date: "bad"},
	}

	start, end, err := Window("day", testNow)
	require.NoError(t, err)

	entries := FilterWindow(records, start, end)
	require.Len(t, entries, 2)
	assert.Equal(t, Morning, entries[0].TimeOfDay)
	assert.Equal(t, Evening, entries[1].TimeOfDay)
}

func TestChartData_Entries(t *testing.T) {
	records := []Record{
		moodRow("2025-03-09", "Evening", 1, "6.5", "late"),
		moodRow("2025-03-09", "Morning", 0, "", ""),
	}

	got := PrepareChart(records, march2025(), StyleLine).Entries()
	want := []Entry{
		{Date: time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local), TimeOfDay: Morning},
		{Date: time.Date(2025, time.March, 9, 0, 0, 0, 0, time.Local), TimeOfDay: Evening, Mood: 1, SleepHours: 6.5, Note: "late"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}
}
