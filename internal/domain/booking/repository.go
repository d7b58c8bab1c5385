package booking

import (
	"context"
	"time"

	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
)

// Repository is the data the availability computation needs, kept behind an
// interface so the use case stays a pure function over its fetches.
type Repository interface {
	// GetUserAvailability returns the raw stored weekly schedule of an
	// active user, nil when the profile has none configured.
	GetUserAvailability(
		ctx context.Context,
		userID uint,
	) ([]byte, error)

	// ListConflicts returns the bookings the user is part of, on either
	// side, inside [from, to] and in one of the given statuses. An empty
	// result is not an error.
	ListConflicts(
		ctx context.Context,
		userID uint,
		from time.Time,
		to time.Time,
		statuses []Status,
	) ([]schedule.BookingConflict, error)
}
