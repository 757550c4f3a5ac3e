package models

import (
	"time"
)

// Trip is a named collection of logs, owned by one user and optionally
// shared with collaborators. IDs are UUID strings minted on the device that
// created the record, so rows sync between devices without renumbering.
type Trip struct {
	ID            string             `gorm:"type:uuid;primaryKey" json:"id"`
	Name          string             `gorm:"not null" json:"name"`
	CreatorID     uint               `gorm:"index;not null" json:"creator_id"`
	Collaborators []TripCollaborator `json:"collaborators,omitempty"`
	StartDate     *time.Time         `json:"start_date,omitempty"`
	EndDate       *time.Time         `json:"end_date,omitempty"`
	CoverPhoto    string             `json:"cover_photo,omitempty"` // S3/CloudFront URL
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

type TripCollaborator struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	TripID string `gorm:"type:uuid;index;not null" json:"trip_id"`
	UserID uint   `gorm:"index;not null" json:"user_id"`
}
