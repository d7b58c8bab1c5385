package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/config"
	domain "github.com/outlaw-hq/admin-api/internal/domain/booking"
	"github.com/outlaw-hq/admin-api/internal/domain/schedule"
	"github.com/outlaw-hq/admin-api/internal/httperr"
	ucBooking "github.com/outlaw-hq/admin-api/internal/usecase/booking"
)

type stubBookingRepo struct {
	availability []byte
	availErr     error
	conflicts    []schedule.BookingConflict
}

func (s *stubBookingRepo) GetUserAvailability(ctx context.Context, userID uint) ([]byte, error) {
	return s.availability, s.availErr
}

func (s *stubBookingRepo) ListConflicts(
	ctx context.Context,
	userID uint,
	from, to time.Time,
	statuses []domain.Status,
) ([]schedule.BookingConflict, error) {
	return s.conflicts, nil
}

func availableSlotsRequest(t *testing.T, repo *stubBookingRepo, query string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uc := ucBooking.NewGetAvailableSlots(repo, config.Scheduling{
		MeetingDurationMinutes: 30,
		MaxBookedTillDays:      7,
	})
	h := NewBookingHandler(nil, nil, uc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/admin/bookings/available-slots"+query, nil)

	h.AvailableSlots(c)
	return w
}

func TestAvailableSlotsRequiresTargetUser(t *testing.T) {
	w := availableSlotsRequest(t, &stubBookingRepo{}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAvailableSlotsUnknownUser(t *testing.T) {
	repo := &stubBookingRepo{availErr: httperr.ErrBusiness("user_not_found")}
	w := availableSlotsRequest(t, repo, "?targetUserId=42")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailableSlotsReturnsComputedSlots(t *testing.T) {
	repo := &stubBookingRepo{
		availability: []byte(`[{"day": 1, "times": ["10:00-10:30"]}]`),
	}
	w := availableSlotsRequest(t, repo, "?targetUserId=42")
	require.Equal(t, http.StatusOK, w.Code)

	var result ucBooking.AvailableSlotsResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Equal(t, 1, result.TotalSlots)
	require.Len(t, result.AvailableSlots, 1)
	require.Equal(t, 1, result.AvailableSlots[0].Day)
}

func TestMissingUserCodeChecksCreatorFirst(t *testing.T) {
	code, missing := missingUserCode(nil, 1, 2)
	require.True(t, missing)
	require.Equal(t, "creator_not_found", code)

	code, missing = missingUserCode([]uint{2}, 1, 2)
	require.True(t, missing)
	require.Equal(t, "creator_not_found", code)

	code, missing = missingUserCode([]uint{1}, 1, 2)
	require.True(t, missing)
	require.Equal(t, "participant_not_found", code)

	_, missing = missingUserCode([]uint{1, 2}, 1, 2)
	require.False(t, missing)
}
