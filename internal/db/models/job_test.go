package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJobStatusRoundTrip(t *testing.T) {
	status, err := ParseJobStatus("pending_confirmation")
	require.NoError(t, err)
	require.Equal(t, JobStatusPendingConfirmation, status)

	data, err := json.Marshal(status)
	require.NoError(t, err)
	require.JSONEq(t, `"pending_confirmation"`, string(data))

	var back JobStatus
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, status, back)

	_, err = ParseJobStatus("paused")
	require.Error(t, err)
}

func TestStatusTerminality(t *testing.T) {
	require.True(t, SuggestionStatusAccepted.IsTerminal())
	require.True(t, SuggestionStatusDeclined.IsTerminal())
	require.False(t, SuggestionStatusPending.IsTerminal())

	require.True(t, OptimizationStatusApplied.IsTerminal())
	require.True(t, OptimizationStatusDeclined.IsTerminal())
	require.False(t, OptimizationStatusPendingApproval.IsTerminal())
	require.False(t, OptimizationStatusAwaitingCustomer.IsTerminal())
}

func TestSlotClocks(t *testing.T) {
	require.Equal(t, "07:00", TimeSlotEarly.StartClock())
	require.Equal(t, "10:00", TimeSlotMidday.StartClock())
	require.Equal(t, "14:00", TimeSlotLate.StartClock())
	require.False(t, TimeSlot("5pm-8pm").Valid())

	require.Equal(t, "08:00", RouteSlotMorning.StartClock())
	require.Equal(t, "13:00", RouteSlotAfternoon.StartClock())
	require.False(t, RouteSlot("evening").Valid())
}
