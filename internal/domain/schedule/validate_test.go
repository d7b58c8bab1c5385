package schedule

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/httperr"
)

func requireBusinessCode(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	require.True(t, httperr.IsBusiness(err, code), "expected business code %s, got %v", code, err)
}

func TestValidateWorkingHoursAcceptsCleanSchedule(t *testing.T) {
	raw := []byte(`[
        {"day": 1, "times": ["09:00-12:00", "13:00-17:00"]},
        {"day": 5, "times": ["10:00-11:00"]}
    ]`)
	require.NoError(t, ValidateWorkingHours(raw, 30))
}

func TestValidateWorkingHoursRejectsMalformedJSON(t *testing.T) {
	requireBusinessCode(t, ValidateWorkingHours([]byte(`not json`), 30), "invalid_slots")
}

func TestValidateWorkingHoursRejectsInvalidDay(t *testing.T) {
	raw := []byte(`[{"day": 9, "times": ["09:00-12:00"]}]`)
	requireBusinessCode(t, ValidateWorkingHours(raw, 30), "invalid_slots")
}

func TestValidateWorkingHoursRejectsUnparseableRange(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["morningish"]}]`)
	requireBusinessCode(t, ValidateWorkingHours(raw, 30), "invalid_slots")
}

func TestValidateWorkingHoursRejectsRangeShorterThanMeeting(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["09:00-09:15"]}]`)
	requireBusinessCode(t, ValidateWorkingHours(raw, 30), "slot_too_short")
}

func TestValidateWorkingHoursRejectsOverlappingRanges(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["09:00-12:00", "11:00-13:00"]}]`)
	requireBusinessCode(t, ValidateWorkingHours(raw, 30), "slots_overlap")
}

func TestValidateWorkingHoursAllowsTouchingRanges(t *testing.T) {
	raw := []byte(`[{"day": 1, "times": ["09:00-12:00", "12:00-15:00"]}]`)
	require.NoError(t, ValidateWorkingHours(raw, 30))
}
