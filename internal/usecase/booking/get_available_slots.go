package booking

import (
	"context"
	"time"

	"github.com/outlaw-hq/admin-api/internal/config"
	domain "github.com/outlaw-hq/admin-api/internal/domain/booking"
	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
)

type GetAvailableSlots struct {
	repo domain.Repository
	cfg  config.Scheduling
}

func NewGetAvailableSlots(repo domain.Repository, cfg config.Scheduling) *GetAvailableSlots {
	return &GetAvailableSlots{repo: repo, cfg: cfg}
}

type AvailableSlotsResult struct {
	AvailableSlots []schedule.AvailableSlot `json:"availableSlots"`
	TotalSlots     int                      `json:"totalSlots"`
}

// Execute projects the user's weekly schedule over the booking horizon and
// carves out conflicting bookings. When no candidate slot exists, the
// booking store is never queried.
func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	userID uint,
	now time.Time,
) (*AvailableSlotsResult, error) {

	raw, err := uc.repo.GetUserAvailability(ctx, userID)
	if err != nil {
		return nil, err
	}

	hours := schedule.NormalizeWorkingHours(raw, uc.cfg.MeetingDurationMinutes)

	candidates := schedule.ProjectSlots(hours, uc.cfg.MaxBookedTillDays, now)
	if len(candidates) == 0 {
		return &AvailableSlotsResult{AvailableSlots: []schedule.AvailableSlot{}}, nil
	}

	horizonEnd := now.Add(time.Duration(uc.cfg.MaxBookedTillDays) * 24 * time.Hour)

	conflicts, err := uc.repo.ListConflicts(
		ctx,
		userID,
		now,
		horizonEnd,
		domain.ConflictStatuses(),
	)
	if err != nil {
		return nil, err
	}

	slots := schedule.FilterConflicts(candidates, conflicts)
	if slots == nil {
		slots = []schedule.AvailableSlot{}
	}

	return &AvailableSlotsResult{
		AvailableSlots: slots,
		TotalSlots:     schedule.CountSlots(slots),
	}, nil
}
