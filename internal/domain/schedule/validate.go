package schedule

import (
	"encoding/json"
	"sort"

	"github.com/outlaw-hq/admin-api/internal/httperr"
)

// ValidateWorkingHours checks a schedule before it is written to a profile:
// every range must be parseable, at least one meeting long, and a day's
// ranges must not overlap each other. Unlike normalization, writes are
// strict; bad input is rejected instead of defaulted.
func ValidateWorkingHours(raw []byte, meetingDurationMinutes int) error {
	if meetingDurationMinutes <= 0 {
		meetingDurationMinutes = fallbackMeetingDurationMinutes
	}

	var entries []rawDayWindow
	if err := json.Unmarshal(raw, &entries); err != nil {
		return httperr.ErrBusiness("invalid_slots")
	}

	for _, entry := range entries {
		if entry.Day < 0 || entry.Day > 6 {
			return httperr.ErrBusiness("invalid_slots")
		}

		type interval struct{ start, end int }
		intervals := make([]interval, 0, len(entry.Times))

		for _, spec := range entry.Times {
			start, end, ok := parseRangeMinutes(spec)
			if !ok {
				return httperr.ErrBusiness("invalid_slots")
			}
			if end-start < meetingDurationMinutes {
				return httperr.ErrBusiness("slot_too_short")
			}
			intervals = append(intervals, interval{start: start, end: end})
		}

		sort.Slice(intervals, func(i, j int) bool {
			return intervals[i].start < intervals[j].start
		})
		for i := 1; i < len(intervals); i++ {
			if intervals[i].start < intervals[i-1].end {
				return httperr.ErrBusiness("slots_overlap")
			}
		}
	}

	return nil
}

// parseRangeMinutes parses "HH:MM-HH:MM" into minute-of-day bounds without
// any rounding.
func parseRangeMinutes(spec string) (int, int, bool) {
	tr, ok := parseTimeRange(spec, 1)
	if !ok {
		return 0, 0, false
	}
	start := tr.StartTime.Hours*60 + tr.StartTime.Minutes
	end := tr.EndTime.Hours*60 + tr.EndTime.Minutes
	return start, end, true
}
