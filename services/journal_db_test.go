package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
)

// in-memory database per test, swapped into the package-global handle the
// services use
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Trip{},
		&models.TripCollaborator{},
		&models.Log{},
		&models.LogPhoto{},
		&models.Place{},
		&models.JournalChange{},
		&models.UserDevice{},
	))

	prev := config.DB
	config.DB = db
	InitChangeDeps(db, nil)
	t.Cleanup(func() {
		config.DB = prev
		InitChangeDeps(nil, nil)
	})
}

func seedPlace(t *testing.T, id, name, address, city string) {
	t.Helper()
	require.NoError(t, config.DB.Create(&models.Place{
		ID: id, Name: name, Address: address, City: city,
	}).Error)
}

func TestLogServiceCRUD(t *testing.T) {
	setupTestDB(t)
	seedPlace(t, "p1", "Senso-ji", "2-3-1 Asakusa, Taito City, Tokyo, Japan", "Tokyo")

	svc := NewLogService(NewPlaceService())

	lg, err := svc.AddLog(1, LogRequest{
		PlaceID: "p1",
		Rating:  models.RatingGood,
		Note:    "lantern gate at dusk",
		Tags:    []string{"temple", "evening"},
	})
	require.NoError(t, err)
	require.NotEmpty(t, lg.ID)
	assert.Nil(t, lg.TripID)
	assert.Equal(t, []string{"temple", "evening"}, lg.TagList())

	// rejects ratings outside the fixed set
	_, err = svc.AddLog(1, LogRequest{PlaceID: "p1", Rating: "stellar"})
	require.Error(t, err)

	// rejects unknown places
	_, err = svc.AddLog(1, LogRequest{PlaceID: "nope", Rating: models.RatingGood})
	require.Error(t, err)

	// update rating and trip assignment
	tripID := "11111111-1111-1111-1111-111111111111"
	updated, err := svc.UpdateLog(1, lg.ID, LogUpdateRequest{
		Rating: models.RatingAmazing,
		TripID: &tripID,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RatingAmazing, updated.Rating)
	require.NotNil(t, updated.TripID)
	assert.Equal(t, tripID, *updated.TripID)

	// clearing the assignment via empty string
	empty := ""
	updated, err = svc.UpdateLog(1, lg.ID, LogUpdateRequest{TripID: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.TripID)

	// another user cannot touch it
	_, err = svc.UpdateLog(2, lg.ID, LogUpdateRequest{Rating: models.RatingSkip})
	require.Error(t, err)

	// tombstone delete hides the log from listings
	require.NoError(t, svc.DeleteLog(1, lg.ID))
	logs, err := svc.ListLogs(1)
	require.NoError(t, err)
	assert.Empty(t, logs)

	// the row survives as a tombstone for the sync engine
	var count int64
	require.NoError(t, config.DB.Unscoped().Model(&models.Log{}).Where("id = ?", lg.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteLogEmitsChangeFeedEntry(t *testing.T) {
	setupTestDB(t)
	seedPlace(t, "p1", "Cafe", "", "Lisbon")

	svc := NewLogService(NewPlaceService())
	lg, err := svc.AddLog(7, LogRequest{PlaceID: "p1", Rating: models.RatingOkay})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteLog(7, lg.ID))

	changes, err := ChangesSince(7, 0, 10)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, "create", changes[0].Op)
	assert.Equal(t, "delete", changes[1].Op)
	assert.Equal(t, lg.ID, changes[1].EntityID)
}

func TestTripServiceAccessControl(t *testing.T) {
	setupTestDB(t)

	svc := NewTripService(nil)
	trip, err := svc.CreateTrip(1, TripRequest{Name: "Kansai loop"})
	require.NoError(t, err)

	// creator sees it, strangers don't
	_, err = svc.GetTrip(1, trip.ID)
	require.NoError(t, err)
	_, err = svc.GetTrip(2, trip.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// collaborator gains access
	require.NoError(t, config.DB.Create(&models.TripCollaborator{TripID: trip.ID, UserID: 2}).Error)
	_, err = svc.GetTrip(2, trip.ID)
	require.NoError(t, err)

	trips, err := svc.ListTrips(2)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, trip.ID, trips[0].ID)
}

func TestMasonryViewAfterTripDeletion(t *testing.T) {
	setupTestDB(t)
	seedPlace(t, "p1", "Harbour", "", "Bergen")

	tripSvc := NewTripService(nil)
	logSvc := NewLogService(NewPlaceService())
	gallery := NewGalleryService(tripSvc)

	keep, err := tripSvc.CreateTrip(1, TripRequest{Name: "Fjords"})
	require.NoError(t, err)
	doomed, err := tripSvc.CreateTrip(1, TripRequest{Name: "Scrapped"})
	require.NoError(t, err)

	_, err = logSvc.AddLog(1, LogRequest{PlaceID: "p1", TripID: &keep.ID, Rating: models.RatingGood})
	require.NoError(t, err)
	orphanLog, err := logSvc.AddLog(1, LogRequest{PlaceID: "p1", TripID: &doomed.ID, Rating: models.RatingOkay})
	require.NoError(t, err)

	// deleting the trip leaves its logs dangling, not destroyed
	require.NoError(t, tripSvc.DeleteTrip(1, doomed.ID))

	view, err := gallery.Masonry(1)
	require.NoError(t, err)

	require.Len(t, view.Trail, 1)
	assert.Equal(t, keep.ID, view.Trail[0])
	require.Len(t, view.Unassigned, 1)
	assert.Equal(t, orphanLog.ID, view.Unassigned[0].ID)

	// single card lands in the left column
	require.Len(t, view.Columns[0], 1)
	assert.Empty(t, view.Columns[1])
	assert.Equal(t, 1, view.Columns[0][0].LogCount)
}

func TestFeedIsRecencyOrderedAcrossTrips(t *testing.T) {
	setupTestDB(t)
	seedPlace(t, "p1", "Market", "", "Marrakesh")

	tripSvc := NewTripService(nil)
	logSvc := NewLogService(NewPlaceService())
	gallery := NewGalleryService(tripSvc)

	trip, err := tripSvc.CreateTrip(1, TripRequest{Name: "Morocco"})
	require.NoError(t, err)

	a, err := logSvc.AddLog(1, LogRequest{PlaceID: "p1", TripID: &trip.ID, Rating: models.RatingGood})
	require.NoError(t, err)
	b, err := logSvc.AddLog(1, LogRequest{PlaceID: "p1", Rating: models.RatingAmazing})
	require.NoError(t, err)

	// force distinct timestamps; sqlite clock resolution can collapse them
	require.NoError(t, config.DB.Model(&models.Log{}).Where("id = ?", a.ID).
		Update("created_at", time.Now().Add(-time.Hour)).Error)
	require.NoError(t, config.DB.Model(&models.Log{}).Where("id = ?", b.ID).
		Update("created_at", time.Now()).Error)

	entries, err := gallery.Feed(1)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, b.ID, entries[0].Log.ID)
	assert.Equal(t, a.ID, entries[1].Log.ID)
	assert.Equal(t, "Morocco", entries[1].TripName)
	assert.Empty(t, entries[0].TripName)
	require.NotNil(t, entries[0].Place)
	assert.Equal(t, "Market", entries[0].Place.Name)
}
