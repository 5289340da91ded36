package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntry(day int, tod TimeOfDay, mood int) Entry {
	return Entry{
		Date:       time.Date(2025, time.March, day, 0, 0, 0, 0, time.Local),
		TimeOfDay:  tod,
		Mood:       mood,
		SleepHours: 7.5,
		Note:       "note, with comma",
	}
}

func TestCSVStore_MissingFileIsEmpty(t *testing.T) {
	store, err := NewCSVStore(filepath.Join(t.TempDir(), "nested", "moods.csv"))
	require.NoError(t, err)

	records, err := store.Records(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCSVStore_AppendGrowsByOne(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "moods.csv")
	store, err := NewCSVStore(path)
	require.NoError(t, err)

	for i, e := range []Entry{sampleEntry(1, Morning, 2), sampleEntry(1, Evening, -3), sampleEntry(2, Morning, 0)} {
		require.NoError(t, store.Append(ctx, e))
		records, err := store.Records(ctx)
		require.NoError(t, err)
		assert.Len(t, records, i+1)
	}

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(raw)), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "date,time_of_day,mood,sleep_hours,note", lines[0])
	assert.Equal(t, `2025-03-01,Evening,-3,7.5,"note, with comma"`, lines[2])

	records, err := store.Records(ctx)
	require.NoError(t, err)
	assert.Equal(t, Record{Date: "2025-03-01", TimeOfDay: "Morning", Mood: "2", SleepHours: "7.5", Note: "note, with comma"}, records[0])
}

func TestCSVStore_ReadsByHeaderName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "moods.csv")
	content := "note,mood,date,time_of_day\nhi,3,2025-03-04,Evening\nshort row\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	store, err := NewCSVStore(path)
	require.NoError(t, err)

	records, err := store.Records(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, Record{Date: "2025-03-04", TimeOfDay: "Evening", Mood: "3", Note: "hi"}, records[0])
	assert.Equal(t, Record{Note: "short row"}, records[1])

	// appending to an existing file does not repeat the header
	require.NoError(t, store.Append(context.Background(), sampleEntry(5, Morning, 1)))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(raw), "time_of_day"))
}

func TestCSVStore_RequiresPath(t *testing.T) {
	_, err := NewCSVStore("")
	assert.Error(t, err)
}
