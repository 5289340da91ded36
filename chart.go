package main

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

type ChartStyle string

const (
	StyleLine ChartStyle = "line"
	StyleDots ChartStyle = "dots"
)

var (
	ErrInvalidMonth  = errors.New("month must look like 2006-01")
	ErrInvalidPeriod = errors.New("period must be one of day, week, month, year")
)

// ChartPoint is one entry placed on the month chart.
type ChartPoint struct {
	Entry      Entry
	SortKey    int
	X          float64
	ColorIndex int
	Color      string
}

type ChartData struct {
	Month   time.Time
	Style   ChartStyle
	Points  []ChartPoint
	Dropped int
}

type Summary struct {
	Count    int
	AvgMood  float64
	AvgSleep float64
	Mornings int
	Evenings int
}

// PrepareChart keeps the rows of month, orders them by (date, time of day) and
// places each on the x axis so morning and evening entries of a day do not overlap.
// Rows with an unparseable date or a mood outside the gradient are dropped and counted.
func PrepareChart(records []Record, month time.Time, style ChartStyle) ChartData {
	data := ChartData{Month: MonthOf(month), Style: style}

	for _, r := range records {
		entry, err := ParseRecord(r)
		if err != nil {
			data.Dropped++
			continue
		}
		if !sameMonth(entry.Date, data.Month) {
			continue
		}
		idx, err := ColorIndex(entry.Mood)
		if err != nil {
			data.Dropped++
			continue
		}
		key := entry.TimeOfDay.SortKey()
		data.Points = append(data.Points, ChartPoint{
			Entry:      entry,
			SortKey:    key,
			X:          xPosition(entry.Date.Day(), key, style),
			ColorIndex: idx,
			Color:      Gradient[idx],
		})
	}

	slices.SortStableFunc(data.Points, func(a, b ChartPoint) int {
		if c := a.Entry.Date.Compare(b.Entry.Date); c != 0 {
			return c
		}
		return a.SortKey - b.SortKey
	})

	return data
}

func xPosition(day, sortKey int, style ChartStyle) float64 {
	if style == StyleDots {
		if sortKey == 0 {
			return float64(day) - 0.2
		}
		return float64(day) + 0.2
	}
	return float64(day) + float64(sortKey)*0.5
}

func (d ChartData) Summary() Summary {
	var s Summary
	var moodSum, sleepSum float64
	for _, p := range d.Points {
		s.Count++
		moodSum += float64(p.Entry.Mood)
		sleepSum += p.Entry.SleepHours
		if p.SortKey == 0 {
			s.Mornings++
		} else {
			s.Evenings++
		}
	}
	if s.Count > 0 {
		s.AvgMood = moodSum / float64(s.Count)
		s.AvgSleep = sleepSum / float64(s.Count)
	}
	return s
}

func (d ChartData) Entries() []Entry {
	entries := make([]Entry, len(d.Points))
	for i, p := range d.Points {
		entries[i] = p.Entry
	}
	return entries
}

// MonthOf returns the first day of t's month.
func MonthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// ParseMonth parses "2006-01"; empty selects the month of now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return MonthOf(now), nil
	}
	t, err := time.ParseInLocation("2006-01", s, now.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t, nil
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}

// Window returns the [start, end) range of a display period around now.
func Window(period string, now time.Time) (time.Time, time.Time, error) {
	var start, end time.Time

	switch period {
	case "day":
		start = startOfDay(now)
		end = start.AddDate(0, 0, 1)
	case "week":
		// weeks start on Monday
		offset := (int(now.Weekday()) + 6) % 7
		start = startOfDay(now).AddDate(0, 0, -offset)
		end = start.AddDate(0, 0, 7)
	case "month":
		start = MonthOf(now)
		end = start.AddDate(0, 1, 0)
	case "year":
		start = time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(1, 0, 0)
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("%w: %q", ErrInvalidPeriod, period)
	}

	return start, end, nil
}

// FilterWindow parses records, keeps those within [start, end) and sorts them
// the same way the chart does.
func FilterWindow(records []Record, start, end time.Time) []Entry {
	var entries []Entry
	for _, r := range records {
		e, err := ParseRecord(r)
		if err != nil {
			continue
		}
		if e.Date.Before(start) || !e.Date.Before(end) {
			continue
		}
		entries = append(entries, e)
	}
	slices.SortStableFunc(entries, func(a, b Entry) int {
		if c := a.Date.Compare(b.Date); c != 0 {
			return c
		}
		return a.TimeOfDay.SortKey() - b.TimeOfDay.SortKey()
	})
	return entries
}
