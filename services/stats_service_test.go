package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
)

func TestStatsSummary(t *testing.T) {
	setupTestDB(t)

	jan := time.Date(2025, time.January, 10, 12, 0, 0, 0, time.UTC)
	mar := time.Date(2025, time.March, 2, 9, 0, 0, 0, time.UTC)

	require.NoError(t, config.DB.Create(&models.Trip{ID: "t1", Name: "Alps", CreatorID: 1}).Error)
	logs := []models.Log{
		{ID: "l1", UserID: 1, PlaceID: "p1", Rating: models.RatingGood, Tags: "hiking,snow", CreatedAt: jan},
		{ID: "l2", UserID: 1, PlaceID: "p2", Rating: models.RatingGood, Tags: "hiking", CreatedAt: jan.AddDate(0, 0, 3)},
		{ID: "l3", UserID: 1, PlaceID: "p1", Rating: models.RatingOkay, Tags: "", CreatedAt: mar},
		// other users never leak into the summary
		{ID: "l4", UserID: 2, PlaceID: "p9", Rating: models.RatingAmazing, CreatedAt: jan},
	}
	for i := range logs {
		require.NoError(t, config.DB.Create(&logs[i]).Error)
	}
	require.NoError(t, config.DB.Create(&models.LogPhoto{LogID: "l1", URL: "https://cdn/a.jpg"}).Error)
	require.NoError(t, config.DB.Create(&models.LogPhoto{LogID: "l1", URL: "https://cdn/b.jpg"}).Error)

	svc := NewStatsService(config.DB)
	out, err := svc.Summary(context.Background(),
		1,
		time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.March, 31, 0, 0, 0, 0, time.UTC),
	)
	require.NoError(t, err)

	assert.EqualValues(t, 3, out.Totals.Logs)
	assert.EqualValues(t, 1, out.Totals.Trips)
	assert.Equal(t, 2, out.Totals.Places)
	// two photos on one log count once
	assert.EqualValues(t, 1, out.Totals.WithPhoto)

	assert.Equal(t, 2, out.Ratings[models.RatingGood])
	assert.Equal(t, 1, out.Ratings[models.RatingOkay])

	// every month in range present, February as zero
	require.Len(t, out.Months, 3)
	assert.Equal(t, MonthCount{Month: "2025-01", Logs: 2}, out.Months[0])
	assert.Equal(t, MonthCount{Month: "2025-02", Logs: 0}, out.Months[1])
	assert.Equal(t, MonthCount{Month: "2025-03", Logs: 1}, out.Months[2])

	require.NotEmpty(t, out.TopTags)
	assert.Equal(t, TagCount{Tag: "hiking", Count: 2}, out.TopTags[0])
	assert.Equal(t, TagCount{Tag: "snow", Count: 1}, out.TopTags[1])
}
