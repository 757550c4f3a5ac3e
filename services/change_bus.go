package services

import (
	"time"

	"github.com/ammiagames/sonder-sub002/models"
	"gorm.io/gorm"
)

type changeDeps struct {
	db *gorm.DB
	rt *SyncHub
}

var _changes changeDeps

func InitChangeDeps(db *gorm.DB, rt *SyncHub) {
	_changes = changeDeps{db: db, rt: rt}
}

// EmitChange appends to the user's change feed and nudges their other
// devices over the sync socket. Safe to call anywhere; no-op before init.
func EmitChange(userID uint, entity, entityID, op string) {
	if _changes.db == nil {
		return // not initialized
	}
	ch := &models.JournalChange{
		UserID:    userID,
		Entity:    entity,
		EntityID:  entityID,
		Op:        op,
		CreatedAt: time.Now(),
	}
	_ = _changes.db.Create(ch).Error

	if _changes.rt != nil {
		_changes.rt.BroadcastChange(userID, map[string]any{
			"kind":   "journal.changed",
			"change": ch,
		})
	}
}

// ChangesSince returns feed entries newer than the given cursor id, oldest
// first, so a reconnecting device can catch up without a full re-fetch.
func ChangesSince(userID uint, afterID uint, limit int) ([]models.JournalChange, error) {
	if limit <= 0 || limit > 500 {
		limit = 500
	}
	var rows []models.JournalChange
	err := _changes.db.
		Where("user_id = ? AND id > ?", userID, afterID).
		Order("id ASC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
