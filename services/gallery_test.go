package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ammiagames/sonder-sub002/models"
)

func TestDefaultCardHeight(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	bare := models.Trip{Name: "Rome"}
	withCover := models.Trip{Name: "Rome", CoverPhoto: "https://cdn/x.jpg"}
	withDates := models.Trip{Name: "Rome", StartDate: &start}
	longName := models.Trip{Name: "Three weeks across the Scottish Highlands"}

	assert.Equal(t, 140.0, DefaultCardHeight(bare))
	assert.Equal(t, 260.0, DefaultCardHeight(withCover))
	assert.Equal(t, 164.0, DefaultCardHeight(withDates))
	assert.Greater(t, DefaultCardHeight(longName), DefaultCardHeight(bare))

	// deterministic: same trip, same number, every time
	for i := 0; i < 5; i++ {
		assert.Equal(t, DefaultCardHeight(withCover), DefaultCardHeight(withCover))
	}
}

func TestDestinationCity(t *testing.T) {
	trip := models.Trip{ID: "t1", Name: "Japan"}
	group := TripGroup{
		Trip: &trip,
		Logs: []models.Log{
			{ID: "1", PlaceID: "kyoto-1"},
			{ID: "2", PlaceID: "tokyo-1"},
			{ID: "3", PlaceID: "kyoto-2"},
		},
	}
	places := map[string]models.Place{
		"kyoto-1": {ID: "kyoto-1", City: "Kyoto"},
		"kyoto-2": {ID: "kyoto-2", City: "Kyoto"},
		"tokyo-1": {ID: "tokyo-1", City: "Tokyo"},
	}

	// most-logged city wins
	assert.Equal(t, "Kyoto", DestinationCity(group, places))
}

func TestDestinationCityFallsBackToAddressThenName(t *testing.T) {
	trip := models.Trip{ID: "t1"}

	byAddress := TripGroup{Trip: &trip, Logs: []models.Log{{ID: "1", PlaceID: "p"}}}
	assert.Equal(t, "Lisbon", DestinationCity(byAddress, map[string]models.Place{
		"p": {ID: "p", Address: "Rua Augusta 1, Lisbon, Portugal"},
	}))

	byName := TripGroup{Trip: &trip, Logs: []models.Log{{ID: "1", PlaceID: "p"}}}
	assert.Equal(t, "Mystery Diner", DestinationCity(byName, map[string]models.Place{
		"p": {ID: "p", Name: "Mystery Diner"},
	}))
}

func TestDestinationCityTieBreaksOnFirstLogged(t *testing.T) {
	trip := models.Trip{ID: "t1"}
	group := TripGroup{
		Trip: &trip,
		Logs: []models.Log{
			{ID: "1", PlaceID: "a"},
			{ID: "2", PlaceID: "b"},
		},
	}
	places := map[string]models.Place{
		"a": {ID: "a", City: "Porto"},
		"b": {ID: "b", City: "Braga"},
	}
	assert.Equal(t, "Porto", DestinationCity(group, places))
}

func TestDestinationCityEmptyGroup(t *testing.T) {
	assert.Equal(t, "", DestinationCity(TripGroup{}, nil))
}
