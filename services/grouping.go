package services

import (
	"sort"

	"github.com/ammiagames/sonder-sub002/models"
)

// TripGroup pairs a trip with its logs for gallery rendering. Trip is nil
// for the unassigned bucket (logs with no trip, or whose trip reference no
// longer resolves).
type TripGroup struct {
	Trip *models.Trip `json:"trip,omitempty"`
	Logs []models.Log `json:"logs"`
}

// Unassigned reports whether this is the trip-less bucket.
func (g TripGroup) Unassigned() bool { return g.Trip == nil }

// LatestLogAt returns the most recent CreatedAt among the group's logs.
// Zero time for an empty group.
func (g TripGroup) LatestLogAt() (latest int64) {
	for _, l := range g.Logs {
		if ts := l.CreatedAt.UnixNano(); ts > latest {
			latest = ts
		}
	}
	return latest
}

// GroupLogsByTrip partitions logs into per-trip groups plus one unassigned
// group, ordered for display. Trip groups sort descending by the most recent
// log they contain (a trip's position tracks its latest activity, not its
// own creation date); the unassigned group, when present, always comes last
// with its logs sorted newest first. Logs whose TripID matches nothing in
// trips are bucketed as unassigned, never dropped. Out-of-order sync makes
// dangling references a normal case, not an error.
//
// The result is a pure projection: deterministic for a given input, safe to
// discard and recompute on every change. Go map iteration order is random,
// so bucket discovery order is tracked explicitly.
func GroupLogsByTrip(logs []models.Log, trips []models.Trip) []TripGroup {
	tripByID := make(map[string]*models.Trip, len(trips))
	for i := range trips {
		tripByID[trips[i].ID] = &trips[i]
	}

	buckets := make(map[string][]models.Log)
	var order []string // tripIDs in first-seen order, for stable tie-breaks
	var unassigned []models.Log

	for _, l := range logs {
		if l.TripID == nil || *l.TripID == "" {
			unassigned = append(unassigned, l)
			continue
		}
		id := *l.TripID
		if _, known := tripByID[id]; !known {
			// dangling reference
			unassigned = append(unassigned, l)
			continue
		}
		if _, seen := buckets[id]; !seen {
			order = append(order, id)
		}
		buckets[id] = append(buckets[id], l)
	}

	groups := make([]TripGroup, 0, len(order)+1)
	for _, id := range order {
		groups = append(groups, TripGroup{Trip: tripByID[id], Logs: buckets[id]})
	}

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].LatestLogAt() > groups[j].LatestLogAt()
	})

	if len(unassigned) > 0 {
		sort.SliceStable(unassigned, func(i, j int) bool {
			return unassigned[i].CreatedAt.After(unassigned[j].CreatedAt)
		})
		groups = append(groups, TripGroup{Logs: unassigned})
	}
	return groups
}
