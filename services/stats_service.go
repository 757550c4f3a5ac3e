package services

import (
	"context"
	"sort"
	"time"

	"github.com/ammiagames/sonder-sub002/models"

	"gorm.io/gorm"
)

type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

// ---------- Summary ----------

type MonthCount struct {
	Month string `json:"month"` // yyyy-mm
	Logs  int    `json:"logs"`
}

type TagCount struct {
	Tag   string `json:"tag"`
	Count int    `json:"count"`
}

type JournalSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	Totals struct {
		Logs      int64 `json:"logs"`
		Trips     int64 `json:"trips"`
		Places    int   `json:"places"`
		WithPhoto int64 `json:"with_photo"`
	} `json:"totals"`

	Ratings map[string]int `json:"ratings"` // rating value → log count
	Months  []MonthCount   `json:"months"`  // every month in range, gaps included
	TopTags []TagCount     `json:"top_tags"`
}

// Summary aggregates the user's journal over a date range: log volume per
// month (missing months reported as zero so charts don't skip), rating
// breakdown, distinct places, and most-used tags.
func (s *StatsService) Summary(ctx context.Context, userID uint, from, to time.Time) (*JournalSummary, error) {
	var logs []models.Log
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND created_at BETWEEN ? AND ?", userID, dayStart(from), dayEnd(to)).
		Order("created_at ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}

	out := &JournalSummary{}
	out.Range.From = from.Format("2006-01-02")
	out.Range.To = to.Format("2006-01-02")
	out.Totals.Logs = int64(len(logs))

	// ratings + tags + places + months in one pass
	out.Ratings = map[string]int{}
	tagCounts := map[string]int{}
	placeSet := map[string]struct{}{}
	monthCounts := map[string]int{}
	for _, l := range logs {
		out.Ratings[l.Rating]++
		placeSet[l.PlaceID] = struct{}{}
		monthCounts[l.CreatedAt.Format("2006-01")]++
		for _, t := range l.TagList() {
			tagCounts[t]++
		}
	}
	out.Totals.Places = len(placeSet)

	// walk every month in range so gaps chart as zero
	for m := monthStart(from); !m.After(to); m = m.AddDate(0, 1, 0) {
		key := m.Format("2006-01")
		out.Months = append(out.Months, MonthCount{Month: key, Logs: monthCounts[key]})
	}

	// top tags, count descending, name ascending on ties
	for tag, n := range tagCounts {
		out.TopTags = append(out.TopTags, TagCount{Tag: tag, Count: n})
	}
	sort.Slice(out.TopTags, func(i, j int) bool {
		if out.TopTags[i].Count != out.TopTags[j].Count {
			return out.TopTags[i].Count > out.TopTags[j].Count
		}
		return out.TopTags[i].Tag < out.TopTags[j].Tag
	})
	if len(out.TopTags) > 10 {
		out.TopTags = out.TopTags[:10]
	}

	if err := s.db.WithContext(ctx).
		Model(&models.Trip{}).
		Where("creator_id = ?", userID).
		Count(&out.Totals.Trips).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).
		Model(&models.LogPhoto{}).
		Joins("JOIN logs ON logs.id = log_photos.log_id").
		Where("logs.user_id = ? AND logs.created_at BETWEEN ? AND ? AND logs.deleted_at IS NULL",
			userID, dayStart(from), dayEnd(to)).
		Distinct("log_photos.log_id").
		Count(&out.Totals.WithPhoto).Error; err != nil {
		return nil, err
	}

	return out, nil
}

// ---------- internals ----------

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
