package handlers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPeriodStart(t *testing.T) {
	now := time.Date(2026, 8, 30, 15, 45, 0, 0, time.UTC)

	start, ok := periodStart("today", now)
	require.True(t, ok)
	require.Equal(t, time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC), start)

	start, ok = periodStart("week", now)
	require.True(t, ok)
	require.Equal(t, now.Add(-7*24*time.Hour), start)

	start, ok = periodStart("month", now)
	require.True(t, ok)
	require.Equal(t, now.Add(-30*24*time.Hour), start)

	_, ok = periodStart("all", now)
	require.False(t, ok)

	_, ok = periodStart("", now)
	require.False(t, ok)
}
