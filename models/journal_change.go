package models

import "time"

// JournalChange is one row of the per-user change feed. Every mutation to a
// log or trip appends one, and connected devices are notified over the sync
// socket so they can re-fetch. This is notification-only: conflict
// resolution happens in the sync engine, not here.
type JournalChange struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Entity    string    `gorm:"size:16" json:"entity"` // "log" | "trip"
	EntityID  string    `gorm:"size:64" json:"entity_id"`
	Op        string    `gorm:"size:16" json:"op"` // "create" | "update" | "delete"
	CreatedAt time.Time `json:"created_at"`
}
