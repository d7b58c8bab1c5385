package schedule

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/outlaw-hq/admin-api/internal/logging"
)

// ===============================
// Weekly availability
// ===============================

// ClockTime is a wall-clock instant inside a day.
type ClockTime struct {
	Hours   int `json:"hours"`
	Minutes int `json:"minutes"`
}

type TimeRange struct {
	StartTime ClockTime `json:"startTime"`
	EndTime   ClockTime `json:"endTime"`
}

// DayWindow is one weekday's bookable ranges. Day uses 0=Sunday..6=Saturday.
type DayWindow struct {
	Day   int         `json:"day"`
	Times []TimeRange `json:"times"`
}

const fallbackMeetingDurationMinutes = 30

// DefaultWorkingHours is the Mon-Fri 09:00-17:00 schedule applied whenever a
// user has no stored availability or the stored value cannot be parsed.
func DefaultWorkingHours() []DayWindow {
	days := make([]DayWindow, 0, 5)
	for day := 1; day <= 5; day++ {
		days = append(days, DayWindow{
			Day: day,
			Times: []TimeRange{{
				StartTime: ClockTime{Hours: 9, Minutes: 0},
				EndTime:   ClockTime{Hours: 17, Minutes: 0},
			}},
		})
	}
	return days
}

type rawDayWindow struct {
	Day   int      `json:"day"`
	Times []string `json:"times"`
}

// NormalizeWorkingHours turns a user's stored availability into a validated
// weekly schedule. The stored value is a JSON array of
// {day, times: ["HH:MM-HH:MM", ...]}; nil or malformed input falls back to
// DefaultWorkingHours. It never fails: every error path is logged and
// substituted, since a broken profile must not break slot lookups.
//
// Minute components are rounded up to the next multiple of
// meetingDurationMinutes; a rounded value above 60 folds back via modulo 60
// without advancing the hour. That follows the platform's historical
// behavior, which clients already compensate for.
func NormalizeWorkingHours(raw []byte, meetingDurationMinutes int) []DayWindow {
	if len(raw) == 0 {
		return DefaultWorkingHours()
	}

	if meetingDurationMinutes <= 0 {
		logging.L().Warn("invalid meeting duration, using fallback",
			zap.Int("meeting_duration_minutes", meetingDurationMinutes))
		meetingDurationMinutes = fallbackMeetingDurationMinutes
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		logging.L().Warn("unparseable stored availability, using default schedule",
			zap.Error(err))
		return DefaultWorkingHours()
	}

	entries := make([]rawDayWindow, 0, len(items))
	for _, item := range items {
		entry, ok := decodeDayEntry(item)
		if !ok {
			logging.L().Warn("skipping malformed schedule entry",
				zap.ByteString("entry", item))
			continue
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Day < entries[j].Day
	})

	var hours []DayWindow
	for _, entry := range entries {
		if entry.Day < 0 || entry.Day > 6 || entry.Times == nil {
			continue
		}

		times := make([]TimeRange, 0, len(entry.Times))
		for _, spec := range entry.Times {
			tr, ok := parseTimeRange(spec, meetingDurationMinutes)
			if !ok {
				logging.L().Warn("skipping malformed time range",
					zap.String("range", spec), zap.Int("day", entry.Day))
				continue
			}
			times = append(times, tr)
		}

		sort.SliceStable(times, func(i, j int) bool {
			return times[i].StartTime.Hours < times[j].StartTime.Hours
		})

		hours = append(hours, DayWindow{Day: entry.Day, Times: times})
	}

	return hours
}

// decodeDayEntry decodes one stored schedule entry leniently: day may be a
// number or a numeric string, times must be an array of strings. Anything
// else drops the entry without touching its siblings.
func decodeDayEntry(item json.RawMessage) (rawDayWindow, bool) {
	var entry struct {
		Day   json.RawMessage `json:"day"`
		Times json.RawMessage `json:"times"`
	}
	if err := json.Unmarshal(item, &entry); err != nil {
		return rawDayWindow{}, false
	}

	day, ok := decodeDayNumber(entry.Day)
	if !ok {
		return rawDayWindow{}, false
	}

	var times []string
	if len(entry.Times) > 0 {
		if err := json.Unmarshal(entry.Times, &times); err != nil {
			return rawDayWindow{}, false
		}
	}

	return rawDayWindow{Day: day, Times: times}, true
}

func decodeDayNumber(raw json.RawMessage) (int, bool) {
	var n float64
	if err := json.Unmarshal(raw, &n); err == nil {
		return int(n), true
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if v, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return v, true
		}
	}
	return 0, false
}

// parseTimeRange parses "HH:MM-HH:MM" and applies minute rounding.
func parseTimeRange(spec string, meetingDurationMinutes int) (TimeRange, bool) {
	parts := strings.Split(spec, "-")
	if len(parts) != 2 {
		return TimeRange{}, false
	}

	start, ok := parseClockTime(parts[0], meetingDurationMinutes)
	if !ok {
		return TimeRange{}, false
	}
	end, ok := parseClockTime(parts[1], meetingDurationMinutes)
	if !ok {
		return TimeRange{}, false
	}

	return TimeRange{StartTime: start, EndTime: end}, true
}

func parseClockTime(spec string, meetingDurationMinutes int) (ClockTime, bool) {
	parts := strings.Split(spec, ":")
	if len(parts) != 2 {
		return ClockTime{}, false
	}

	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return ClockTime{}, false
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return ClockTime{}, false
	}

	return ClockTime{
		Hours:   hours,
		Minutes: roundToMeetingDuration(minutes, meetingDurationMinutes),
	}, true
}

func roundToMeetingDuration(minutes, duration int) int {
	rounded := duration * ceilDiv(minutes, duration)
	if rounded > 60 {
		rounded = rounded % 60
	}
	return rounded
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
