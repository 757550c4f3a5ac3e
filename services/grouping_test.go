package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammiagames/sonder-sub002/models"
)

func day(d int) time.Time {
	return time.Date(2025, time.January, d, 12, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestGroupLogsByTrip_DanglingAndNilGoUnassigned(t *testing.T) {
	// Mirrors the common post-sync state: one real trip, one log pointing
	// at a trip that never arrived, one trip-less log.
	logs := []models.Log{
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(1)},
		{ID: "2", TripID: strPtr("A"), CreatedAt: day(5)},
		{ID: "3", TripID: nil, CreatedAt: day(10)},
		{ID: "4", TripID: strPtr("ghost"), CreatedAt: day(3)},
	}
	trips := []models.Trip{{ID: "A", Name: "Alpha"}}

	groups := GroupLogsByTrip(logs, trips)
	require.Len(t, groups, 2)

	require.NotNil(t, groups[0].Trip)
	assert.Equal(t, "Alpha", groups[0].Trip.Name)
	require.Len(t, groups[0].Logs, 2)
	assert.Equal(t, "1", groups[0].Logs[0].ID) // input order kept inside the group
	assert.Equal(t, "2", groups[0].Logs[1].ID)

	require.True(t, groups[1].Unassigned())
	require.Len(t, groups[1].Logs, 2)
	assert.Equal(t, "3", groups[1].Logs[0].ID) // newest first
	assert.Equal(t, "4", groups[1].Logs[1].ID)
}

func TestGroupLogsByTrip_NoLogLostOrDuplicated(t *testing.T) {
	logs := []models.Log{
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(1)},
		{ID: "2", TripID: strPtr("B"), CreatedAt: day(2)},
		{ID: "3", TripID: strPtr("missing"), CreatedAt: day(3)},
		{ID: "4", CreatedAt: day(4)},
		{ID: "5", TripID: strPtr("A"), CreatedAt: day(5)},
	}
	trips := []models.Trip{{ID: "A"}, {ID: "B"}, {ID: "C"}}

	groups := GroupLogsByTrip(logs, trips)

	seen := map[string]int{}
	total := 0
	for _, g := range groups {
		total += len(g.Logs)
		for _, l := range g.Logs {
			seen[l.ID]++
		}
	}
	assert.Equal(t, len(logs), total)
	for id, n := range seen {
		assert.Equalf(t, 1, n, "log %s appeared %d times", id, n)
	}
	// C has no logs, so only A and B get trip groups.
	assert.Len(t, groups, 3)
}

func TestGroupLogsByTrip_OrderedByMostRecentActivity(t *testing.T) {
	// B's trip record is older but its latest log is newer, so B leads.
	logs := []models.Log{
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(8)},
		{ID: "2", TripID: strPtr("B"), CreatedAt: day(2)},
		{ID: "3", TripID: strPtr("B"), CreatedAt: day(9)},
		{ID: "4", TripID: strPtr("C"), CreatedAt: day(4)},
	}
	trips := []models.Trip{
		{ID: "A", CreatedAt: day(20)},
		{ID: "B", CreatedAt: day(1)},
		{ID: "C", CreatedAt: day(25)},
	}

	groups := GroupLogsByTrip(logs, trips)
	require.Len(t, groups, 3)
	assert.Equal(t, "B", groups[0].Trip.ID)
	assert.Equal(t, "A", groups[1].Trip.ID)
	assert.Equal(t, "C", groups[2].Trip.ID)
}

func TestGroupLogsByTrip_UnassignedAlwaysLast(t *testing.T) {
	// The trip-less log is the newest thing in the journal, but the
	// unassigned bucket never competes with dated trips for position.
	logs := []models.Log{
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(5)},
		{ID: "2", CreatedAt: day(28)},
	}
	trips := []models.Trip{{ID: "A"}}

	groups := GroupLogsByTrip(logs, trips)
	require.Len(t, groups, 2)
	assert.False(t, groups[0].Unassigned())
	assert.True(t, groups[1].Unassigned())
}

func TestGroupLogsByTrip_EmptyLogs(t *testing.T) {
	groups := GroupLogsByTrip(nil, []models.Trip{{ID: "A"}, {ID: "B"}})
	assert.Empty(t, groups)
}

func TestGroupLogsByTrip_AllLogsTripless(t *testing.T) {
	logs := []models.Log{
		{ID: "1", CreatedAt: day(1)},
		{ID: "2", CreatedAt: day(3)},
	}
	groups := GroupLogsByTrip(logs, nil)
	require.Len(t, groups, 1)
	require.True(t, groups[0].Unassigned())
	assert.Equal(t, "2", groups[0].Logs[0].ID)
	assert.Equal(t, "1", groups[0].Logs[1].ID)
}

func TestGroupLogsByTrip_RecencyTieKeepsDiscoveryOrder(t *testing.T) {
	// Two trips whose latest logs share a timestamp: the one discovered
	// first in the log list stays first. Deterministic, every run.
	logs := []models.Log{
		{ID: "1", TripID: strPtr("X"), CreatedAt: day(7)},
		{ID: "2", TripID: strPtr("Y"), CreatedAt: day(7)},
	}
	trips := []models.Trip{{ID: "Y"}, {ID: "X"}}

	for i := 0; i < 20; i++ {
		groups := GroupLogsByTrip(logs, trips)
		require.Len(t, groups, 2)
		assert.Equal(t, "X", groups[0].Trip.ID)
		assert.Equal(t, "Y", groups[1].Trip.ID)
	}
}

func TestGroupLogsByTrip_DuplicateLogsPassThrough(t *testing.T) {
	// No uniqueness assumption: duplicates are tolerated, not collapsed.
	logs := []models.Log{
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(1)},
		{ID: "1", TripID: strPtr("A"), CreatedAt: day(1)},
	}
	groups := GroupLogsByTrip(logs, []models.Trip{{ID: "A"}})
	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Logs, 2)
}
