package booking

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/outlaw-hq/admin-api/internal/httperr"
)

func TestIsValid(t *testing.T) {
	for _, s := range []Status{
		StatusPending, StatusScheduled, StatusOngoing,
		StatusCompleted, StatusCancelled, StatusDeclined,
	} {
		require.True(t, IsValid(s), string(s))
	}

	require.False(t, IsValid("rescheduled"))
	require.False(t, IsValid(""))
}

func TestConflictStatusesExcludeFreedSlots(t *testing.T) {
	statuses := ConflictStatuses()
	require.NotContains(t, statuses, StatusCancelled)
	require.NotContains(t, statuses, StatusDeclined)
	require.ElementsMatch(t, []Status{
		StatusOngoing, StatusScheduled, StatusCompleted, StatusPending,
	}, statuses)
}

func TestCanTransitionLifecycle(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusPending, StatusScheduled},
		{StatusPending, StatusDeclined},
		{StatusPending, StatusCancelled},
		{StatusScheduled, StatusOngoing},
		{StatusScheduled, StatusCancelled},
		{StatusOngoing, StatusCompleted},
	}
	for _, tc := range allowed {
		require.NoError(t, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}

	denied := []struct{ from, to Status }{
		{StatusPending, StatusCompleted},
		{StatusScheduled, StatusDeclined},
		{StatusOngoing, StatusCancelled},
		{StatusCompleted, StatusPending},
		{StatusCancelled, StatusScheduled},
		{StatusDeclined, StatusPending},
	}
	for _, tc := range denied {
		err := CanTransition(tc.from, tc.to)
		require.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", tc.from, tc.to)
	}
}
