package services

import "github.com/ammiagames/sonder-sub002/models"

// HeightEstimator maps a trip's display attributes to an estimated rendered
// card height in points. The policy is the caller's: the balancer only
// compares the numbers it is given.
type HeightEstimator func(models.Trip) float64

// ColumnAssignment records which of the two masonry columns a trip card was
// placed in. Index is the trip's 0-based position in the input ordering and
// is what the trail-line overlay uses to walk the cards chronologically,
// independent of the column each one landed in.
type ColumnAssignment struct {
	Trip   models.Trip `json:"trip"`
	Index  int         `json:"index"`
	Column int         `json:"column"` // 0 = left, 1 = right
}

// AssignColumns greedily distributes an ordered trip list across two columns
// so the running heights stay close. One pass, left to right: the shorter
// column takes the next card, with exact ties going to column 0. The input
// order is the caller's (typically newest first) and is not re-sorted;
// spacing is added after every placement.
//
// The greedy placement is not an optimal bin-packing. Layout snapshots
// depend on this exact deterministic behavior, so keep the <= tie-break
// as is.
func AssignColumns(trips []models.Trip, estimate HeightEstimator, spacing float64) []ColumnAssignment {
	out := make([]ColumnAssignment, 0, len(trips))
	var leftHeight, rightHeight float64

	for i, t := range trips {
		col := 1
		if leftHeight <= rightHeight {
			col = 0
		}
		h := estimate(t) + spacing
		if col == 0 {
			leftHeight += h
		} else {
			rightHeight += h
		}
		out = append(out, ColumnAssignment{Trip: t, Index: i, Column: col})
	}
	return out
}
