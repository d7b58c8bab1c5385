package schedule

import "time"

// ===============================
// Slot projection
// ===============================

// AvailableSlot is a weekly window projected onto a concrete calendar date.
type AvailableSlot struct {
	Day   int         `json:"day"`
	Date  string      `json:"date"`
	Times []TimeRange `json:"times"`
}

// BookingConflict is the part of an existing booking the calculator needs.
type BookingConflict struct {
	StartTime time.Time
	EndTime   time.Time
}

// ProjectSlots emits one candidate slot per calendar day in the horizon whose
// weekday has a configured window. Horizons shorter than a week are capped at
// the number of configured day entries, so a sparse schedule is not projected
// over more days than it can ever fill.
func ProjectSlots(hours []DayWindow, horizonDays int, now time.Time) []AvailableSlot {
	days := horizonDays
	if horizonDays < 7 && len(hours) < days {
		days = len(hours)
	}

	var slots []AvailableSlot
	for i := 0; i < days; i++ {
		targetDate := now.AddDate(0, 0, i)
		dayOfWeek := int(targetDate.Weekday())

		for _, window := range hours {
			if window.Day != dayOfWeek {
				continue
			}
			slots = append(slots, AvailableSlot{
				Day:   window.Day,
				Date:  targetDate.UTC().Format("2006-01-02"),
				Times: window.Times,
			})
		}
	}
	return slots
}

// FilterConflicts drops every time range that overlaps an existing booking on
// the same weekday, then drops slots left with no ranges. A range is removed
// whole: one conflicting booking invalidates it entirely rather than carving
// the booking out of it.
func FilterConflicts(slots []AvailableSlot, bookings []BookingConflict) []AvailableSlot {
	filtered := make([]AvailableSlot, 0, len(slots))
	for _, slot := range slots {
		times := make([]TimeRange, 0, len(slot.Times))
		for _, tr := range slot.Times {
			if !conflictsWithAny(slot.Day, tr, bookings) {
				times = append(times, tr)
			}
		}
		if len(times) == 0 {
			continue
		}
		slot.Times = times
		filtered = append(filtered, slot)
	}
	return filtered
}

func conflictsWithAny(day int, tr TimeRange, bookings []BookingConflict) bool {
	slotStart := tr.StartTime.Hours*60 + tr.StartTime.Minutes
	slotEnd := tr.EndTime.Hours*60 + tr.EndTime.Minutes

	for _, b := range bookings {
		if int(b.StartTime.Weekday()) != day {
			continue
		}

		bookingStart := b.StartTime.Hour()*60 + b.StartTime.Minute()
		bookingEnd := b.EndTime.Hour()*60 + b.EndTime.Minute()

		// Half-open intervals: touching endpoints do not conflict.
		if slotStart < bookingEnd && slotEnd > bookingStart {
			return true
		}
	}
	return false
}

// ComputeAvailableSlots is the full pipeline: project the weekly schedule
// over the horizon, then subtract conflicting bookings.
func ComputeAvailableSlots(hours []DayWindow, bookings []BookingConflict, horizonDays int, now time.Time) []AvailableSlot {
	slots := ProjectSlots(hours, horizonDays, now)
	if len(slots) == 0 {
		return nil
	}
	return FilterConflicts(slots, bookings)
}

// CountSlots sums the surviving time ranges across slots.
func CountSlots(slots []AvailableSlot) int {
	total := 0
	for _, slot := range slots {
		total += len(slot.Times)
	}
	return total
}
