package schedule

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeWorkingHoursNilFallsBackToDefault(t *testing.T) {
	hours := NormalizeWorkingHours(nil, 30)
	require.Equal(t, DefaultWorkingHours(), hours)
}

func TestNormalizeWorkingHoursMalformedJSONFallsBackToDefault(t *testing.T) {
	hours := NormalizeWorkingHours([]byte(`{"not":"an array"`), 30)
	require.Equal(t, DefaultWorkingHours(), hours)
}

func TestDefaultWorkingHoursIsMondayToFriday(t *testing.T) {
	hours := DefaultWorkingHours()
	require.Len(t, hours, 5)

	for i, window := range hours {
		require.Equal(t, i+1, window.Day)
		require.Equal(t, []TimeRange{{
			StartTime: ClockTime{Hours: 9, Minutes: 0},
			EndTime:   ClockTime{Hours: 17, Minutes: 0},
		}}, window.Times)
	}
}

func TestNormalizeWorkingHoursParsesAndSortsByDay(t *testing.T) {
	raw := []byte(`[
        {"day": 5, "times": ["14:00-16:00"]},
        {"day": 1, "times": ["09:00-12:00"]}
    ]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 2)
	require.Equal(t, 1, hours[0].Day)
	require.Equal(t, 5, hours[1].Day)
	require.Equal(t, TimeRange{
		StartTime: ClockTime{Hours: 9, Minutes: 0},
		EndTime:   ClockTime{Hours: 12, Minutes: 0},
	}, hours[0].Times[0])
}

func TestNormalizeWorkingHoursSkipsInvalidDays(t *testing.T) {
	raw := []byte(`[
        {"day": -1, "times": ["09:00-12:00"]},
        {"day": 7, "times": ["09:00-12:00"]},
        {"day": 3, "times": ["09:00-12:00"]}
    ]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, 3, hours[0].Day)
}

func TestNormalizeWorkingHoursDropsOnlyEntriesWithNonArrayTimes(t *testing.T) {
	raw := []byte(`[
        {"day": 1, "times": "oops"},
        {"day": 2, "times": ["09:00-10:00"]}
    ]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, 2, hours[0].Day)
	require.Equal(t, []TimeRange{{
		StartTime: ClockTime{Hours: 9, Minutes: 0},
		EndTime:   ClockTime{Hours: 10, Minutes: 0},
	}}, hours[0].Times)
}

func TestNormalizeWorkingHoursDropsNonObjectEntries(t *testing.T) {
	raw := []byte(`["bogus", 5, {"day": 2, "times": ["09:00-10:00"]}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, 2, hours[0].Day)
}

func TestNormalizeWorkingHoursCoercesNumericStringDays(t *testing.T) {
	raw := []byte(`[
        {"day": "3", "times": ["09:00-10:00"]},
        {"day": "later", "times": ["09:00-10:00"]}
    ]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, 3, hours[0].Day)
}

func TestNormalizeWorkingHoursSkipsEntriesWithoutTimes(t *testing.T) {
	raw := []byte(`[{"day": 2}, {"day": 4, "times": []}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, 4, hours[0].Day)
	require.Empty(t, hours[0].Times)
}

func TestNormalizeWorkingHoursSkipsMalformedRanges(t *testing.T) {
	raw := []byte(`[{"day": 2, "times": ["garbage", "09:00", "10:00-11:00"]}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours, 1)
	require.Equal(t, []TimeRange{{
		StartTime: ClockTime{Hours: 10, Minutes: 0},
		EndTime:   ClockTime{Hours: 11, Minutes: 0},
	}}, hours[0].Times)
}

func TestNormalizeWorkingHoursSortsTimesByStartHour(t *testing.T) {
	raw := []byte(`[{"day": 2, "times": ["14:00-16:00", "09:00-11:00"]}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Len(t, hours[0].Times, 2)
	require.Equal(t, 9, hours[0].Times[0].StartTime.Hours)
	require.Equal(t, 14, hours[0].Times[1].StartTime.Hours)
}

func TestNormalizeWorkingHoursRoundsMinutesUpToMeetingDuration(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["09:10-10:20"]}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Equal(t, ClockTime{Hours: 9, Minutes: 30}, hours[0].Times[0].StartTime)
	require.Equal(t, ClockTime{Hours: 10, Minutes: 30}, hours[0].Times[0].EndTime)
}

func TestNormalizeWorkingHoursKeepsExactlySixtyMinutes(t *testing.T) {
	// 45 rounds up to 60 with a 30-minute meeting; 60 is not folded back.
	raw := []byte(`[{"day": 1, "times": ["09:45-11:00"]}]`)

	hours := NormalizeWorkingHours(raw, 30)
	require.Equal(t, ClockTime{Hours: 9, Minutes: 60}, hours[0].Times[0].StartTime)
}

func TestNormalizeWorkingHoursFoldsMinutesAboveSixty(t *testing.T) {
	// 50 rounds up to 90 with a 45-minute meeting, then folds to 30
	// without advancing the hour.
	raw := []byte(`[{"day": 1, "times": ["10:50-12:00"]}]`)

	hours := NormalizeWorkingHours(raw, 45)
	require.Equal(t, ClockTime{Hours: 10, Minutes: 30}, hours[0].Times[0].StartTime)
}

func TestNormalizeWorkingHoursInvalidDurationUsesFallback(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["09:10-10:00"]}]`)

	hours := NormalizeWorkingHours(raw, 0)
	require.Equal(t, ClockTime{Hours: 9, Minutes: 30}, hours[0].Times[0].StartTime)
}

func TestNormalizeWorkingHoursIdempotentOnAlignedMinutes(t *testing.T) {
	raw := []byte(`[
        {"day": 1, "times": ["09:00-12:30"]},
        {"day": 4, "times": ["13:30-17:00"]}
    ]`)

	first := NormalizeWorkingHours(raw, 30)
	second := NormalizeWorkingHours(renderSchedule(t, first), 30)
	require.Equal(t, first, second)
}

// renderSchedule serializes a normalized schedule back into the stored
// {day, times: ["HH:MM-HH:MM"]} form.
func renderSchedule(t *testing.T, hours []DayWindow) []byte {
	t.Helper()

	entries := make([]rawDayWindow, 0, len(hours))
	for _, window := range hours {
		times := make([]string, 0, len(window.Times))
		for _, tr := range window.Times {
			times = append(times, fmt.Sprintf("%02d:%02d-%02d:%02d",
				tr.StartTime.Hours, tr.StartTime.Minutes,
				tr.EndTime.Hours, tr.EndTime.Minutes))
		}
		entries = append(entries, rawDayWindow{Day: window.Day, Times: times})
	}

	raw, err := json.Marshal(entries)
	require.NoError(t, err)
	return raw
}
