package booking

import "github.com/outlaw-hq/admin-api/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"   // initial status
	StatusScheduled Status = "scheduled" // participant accepted
	StatusOngoing   Status = "ongoing"   // start time crossed
	StatusCompleted Status = "completed" // meeting ended
	StatusCancelled Status = "cancelled" // creator withdrew
	StatusDeclined  Status = "declined"  // participant declined
)

func IsValid(s Status) bool {
	switch s {
	case StatusPending, StatusScheduled, StatusOngoing,
		StatusCompleted, StatusCancelled, StatusDeclined:
		return true
	}
	return false
}

// ConflictStatuses lists the statuses that block a time range in the
// availability computation. Cancelled and declined bookings free the slot.
func ConflictStatuses() []Status {
	return []Status{StatusOngoing, StatusScheduled, StatusCompleted, StatusPending}
}

// ===============================
// Transitions
// ===============================

var transitions = map[Status][]Status{
	StatusPending:   {StatusScheduled, StatusDeclined, StatusCancelled},
	StatusScheduled: {StatusOngoing, StatusCancelled},
	StatusOngoing:   {StatusCompleted},
}

// CanTransition validates an admin status change against the lifecycle.
func CanTransition(from, to Status) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_state")
}
