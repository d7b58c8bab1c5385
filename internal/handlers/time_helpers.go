package handlers

import "time"

// periodStart maps an analytics period filter to its lower bound.
// Unknown values (and "all") mean no filtering.
func periodStart(period string, now time.Time) (time.Time, bool) {
	switch period {
	case "today":
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()), true
	case "week":
		return now.Add(-7 * 24 * time.Hour), true
	case "month":
		return now.Add(-30 * 24 * time.Hour), true
	default:
		return time.Time{}, false
	}
}
