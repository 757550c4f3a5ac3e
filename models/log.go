package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Rating values a log can carry. Kept as short strings rather than ints so
// payloads stay readable and the set can grow without renumbering.
const (
	RatingSkip    = "skip"
	RatingOkay    = "okay"
	RatingGood    = "good"
	RatingAmazing = "amazing"
)

func ValidRating(r string) bool {
	switch r {
	case RatingSkip, RatingOkay, RatingGood, RatingAmazing:
		return true
	}
	return false
}

// Log is one visit to a place: rating, note, tags, photos, and an optional
// trip association. TripID is deliberately not a foreign key: devices sync
// out of order, so a log may reference a trip that hasn't arrived yet or was
// deleted. Grouping code treats those as unassigned, never as errors.
type Log struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uint       `gorm:"index;not null" json:"user_id"`
	PlaceID   string     `gorm:"index;not null" json:"place_id"`
	TripID    *string    `gorm:"type:uuid;index" json:"trip_id,omitempty"`
	Rating    string     `gorm:"size:16;not null" json:"rating"`
	Note      string     `gorm:"type:text" json:"note,omitempty"`
	Tags      string     `json:"-"` // comma-separated
	Photos    []LogPhoto `json:"photos,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Soft delete: deletes tombstone the row locally and the sync
	// collaborator propagates the removal to the remote store.
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TagList splits the stored comma-separated tags. Empty string → nil.
func (l *Log) TagList() []string {
	if l.Tags == "" {
		return nil
	}
	parts := strings.Split(l.Tags, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}

// SetTags stores a tag slice back into the comma-separated column.
func (l *Log) SetTags(tags []string) {
	l.Tags = strings.Join(tags, ",")
}

type LogPhoto struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	LogID  string `gorm:"type:uuid;index;not null" json:"log_id"`
	URL    string `gorm:"not null" json:"url"`
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}
