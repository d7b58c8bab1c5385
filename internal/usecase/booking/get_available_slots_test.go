package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/config"
	domain "github.com/outlaw-hq/admin-api/internal/domain/booking"
	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
	"github.com/outlaw-hq/admin-api/internal/httperr"
)

type fakeRepository struct {
	availability []byte
	availErr     error

	conflicts    []schedule.BookingConflict
	conflictsErr error

	conflictCalls int
	lastStatuses  []domain.Status
	lastFrom      time.Time
	lastTo        time.Time
}

func (f *fakeRepository) GetUserAvailability(ctx context.Context, userID uint) ([]byte, error) {
	return f.availability, f.availErr
}

func (f *fakeRepository) ListConflicts(
	ctx context.Context,
	userID uint,
	from, to time.Time,
	statuses []domain.Status,
) ([]schedule.BookingConflict, error) {
	f.conflictCalls++
	f.lastFrom = from
	f.lastTo = to
	f.lastStatuses = statuses
	return f.conflicts, f.conflictsErr
}

var testConfig = config.Scheduling{
	MeetingDurationMinutes: 30,
	MaxBookedTillDays:      7,
}

// March 1st 2026 is a Sunday.
var sunday = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestGetAvailableSlotsReturnsProjectedSchedule(t *testing.T) {
	repo := &fakeRepository{
		availability: []byte(`[{"day": 1, "times": ["10:00-10:30", "11:00-11:30"]}]`),
	}
	uc := NewGetAvailableSlots(repo, testConfig)

	result, err := uc.Execute(context.Background(), 42, sunday)
	require.NoError(t, err)
	require.Len(t, result.AvailableSlots, 1)
	require.Equal(t, "2026-03-02", result.AvailableSlots[0].Date)
	require.Equal(t, 2, result.TotalSlots)
}

func TestGetAvailableSlotsNilAvailabilityUsesDefaultSchedule(t *testing.T) {
	repo := &fakeRepository{availability: nil}
	uc := NewGetAvailableSlots(repo, testConfig)

	result, err := uc.Execute(context.Background(), 42, sunday)
	require.NoError(t, err)
	require.Len(t, result.AvailableSlots, 5)
	require.Equal(t, 5, result.TotalSlots)
}

func TestGetAvailableSlotsPropagatesUserNotFound(t *testing.T) {
	repo := &fakeRepository{availErr: httperr.ErrBusiness("user_not_found")}
	uc := NewGetAvailableSlots(repo, testConfig)

	_, err := uc.Execute(context.Background(), 42, sunday)
	require.True(t, httperr.IsBusiness(err, "user_not_found"))
	require.Zero(t, repo.conflictCalls)
}

func TestGetAvailableSlotsSkipsBookingLookupWithoutCandidates(t *testing.T) {
	// A schedule with no usable day projects nothing; the booking store
	// must not be queried.
	repo := &fakeRepository{
		availability: []byte(`[{"day": 0, "times": ["10:00-10:30"]}]`),
	}
	cfg := testConfig
	cfg.MaxBookedTillDays = 3

	uc := NewGetAvailableSlots(repo, cfg)

	// Advance one day so the horizon never reaches the next Sunday.
	monday := sunday.AddDate(0, 0, 1)
	result, err := uc.Execute(context.Background(), 42, monday)
	require.NoError(t, err)
	require.NotNil(t, result.AvailableSlots)
	require.Empty(t, result.AvailableSlots)
	require.Zero(t, result.TotalSlots)
	require.Zero(t, repo.conflictCalls)
}

func TestGetAvailableSlotsFiltersConflictingBookings(t *testing.T) {
	repo := &fakeRepository{
		availability: []byte(`[{"day": 1, "times": ["10:00-10:30", "11:00-11:30"]}]`),
		conflicts: []schedule.BookingConflict{{
			StartTime: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC),
			EndTime:   time.Date(2026, 3, 2, 10, 30, 0, 0, time.UTC),
		}},
	}
	uc := NewGetAvailableSlots(repo, testConfig)

	result, err := uc.Execute(context.Background(), 42, sunday)
	require.NoError(t, err)
	require.Len(t, result.AvailableSlots, 1)
	require.Len(t, result.AvailableSlots[0].Times, 1)
	require.Equal(t, 11, result.AvailableSlots[0].Times[0].StartTime.Hours)
	require.Equal(t, 1, result.TotalSlots)
}

func TestGetAvailableSlotsQueriesHorizonWithConflictStatuses(t *testing.T) {
	repo := &fakeRepository{
		availability: []byte(`[{"day": 1, "times": ["10:00-10:30"]}]`),
	}
	uc := NewGetAvailableSlots(repo, testConfig)

	_, err := uc.Execute(context.Background(), 42, sunday)
	require.NoError(t, err)
	require.Equal(t, 1, repo.conflictCalls)
	require.Equal(t, sunday, repo.lastFrom)
	require.Equal(t, sunday.Add(7*24*time.Hour), repo.lastTo)
	require.ElementsMatch(t, []domain.Status{
		domain.StatusOngoing,
		domain.StatusScheduled,
		domain.StatusCompleted,
		domain.StatusPending,
	}, repo.lastStatuses)
}
