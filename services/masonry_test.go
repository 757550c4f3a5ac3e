package services

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammiagames/sonder-sub002/models"
)

func constHeight(h float64) HeightEstimator {
	return func(models.Trip) float64 { return h }
}

func TestAssignColumns_ConstantHeightsAlternate(t *testing.T) {
	trips := []models.Trip{{ID: "T0"}, {ID: "T1"}, {ID: "T2"}, {ID: "T3"}}

	out := AssignColumns(trips, constHeight(100), 0)
	require.Len(t, out, 4)

	// Equal running heights break to column 0, and each placement flips
	// the inequality, so constant heights alternate 0,1,0,1.
	for i, a := range out {
		assert.Equal(t, trips[i].ID, a.Trip.ID)
		assert.Equal(t, i, a.Index)
		assert.Equal(t, i%2, a.Column)
	}
}

func TestAssignColumns_Empty(t *testing.T) {
	out := AssignColumns(nil, constHeight(10), 8)
	assert.Empty(t, out)
}

func TestAssignColumns_SingleTripGoesLeft(t *testing.T) {
	out := AssignColumns([]models.Trip{{ID: "solo"}}, constHeight(500), 12)
	require.Len(t, out, 1)
	assert.Equal(t, 0, out[0].Column)
	assert.Equal(t, 0, out[0].Index)
}

func TestAssignColumns_TallCardSendsFollowersRight(t *testing.T) {
	heights := map[string]float64{"a": 300, "b": 80, "c": 80, "d": 80}
	trips := []models.Trip{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}}
	est := func(tr models.Trip) float64 { return heights[tr.ID] }

	out := AssignColumns(trips, est, 0)
	// a fills the left column (300); b, c, d stack on the right, which
	// stays shorter the whole way (80, 160, 240 < 300).
	want := []int{0, 1, 1, 1}
	for i, a := range out {
		assert.Equalf(t, want[i], a.Column, "trip %s", a.Trip.ID)
	}
}

func TestAssignColumns_PartitionIsTotalAndOrderPreserving(t *testing.T) {
	trips := make([]models.Trip, 9)
	for i := range trips {
		trips[i] = models.Trip{ID: string(rune('a' + i))}
	}
	est := func(tr models.Trip) float64 { return float64(len(tr.ID)) * 37 }

	out := AssignColumns(trips, est, 16)
	require.Len(t, out, len(trips))
	for i, a := range out {
		assert.Equal(t, trips[i].ID, a.Trip.ID)
		assert.Equal(t, i, a.Index)
		assert.Contains(t, []int{0, 1}, a.Column)
	}
}

// The greedy invariant: each card goes to the currently shorter column, so
// swapping any single placement to the other column cannot make the final
// |left-right| gap smaller at the moment of placement.
func TestAssignColumns_GreedyPlacesOnShorterColumn(t *testing.T) {
	heights := []float64{120, 340, 90, 90, 260, 45, 180, 310, 60}
	trips := make([]models.Trip, len(heights))
	for i := range trips {
		trips[i] = models.Trip{ID: string(rune('A' + i))}
	}
	est := func(tr models.Trip) float64 { return heights[int(tr.ID[0]-'A')] }
	const spacing = 12.0

	out := AssignColumns(trips, est, spacing)

	var left, right float64
	for i, a := range out {
		h := heights[i] + spacing
		var chosen, other float64
		if a.Column == 0 {
			chosen, other = left, right
			left += h
		} else {
			chosen, other = right, left
			right += h
		}
		gapTaken := math.Abs((chosen + h) - other)
		gapAlternative := math.Abs((other + h) - chosen)
		assert.LessOrEqualf(t, gapTaken, gapAlternative,
			"placement %d widened the gap when the other column was shorter", i)
	}
}
