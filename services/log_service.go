// services/log_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
	"github.com/ammiagames/sonder-sub002/utils"

	"github.com/google/uuid"
)

type LogService struct {
	placeSvc *PlaceService
}

func NewLogService(ps *PlaceService) *LogService {
	return &LogService{placeSvc: ps}
}

type LogRequest struct {
	ID      string   `json:"id"` // optional; device-minted UUID for offline creation
	PlaceID string   `json:"place_id"`
	TripID  *string  `json:"trip_id"`
	Rating  string   `json:"rating"`
	Note    string   `json:"note"`
	Tags    []string `json:"tags"`
	Photos  []string `json:"photos"` // base64 data URIs
}

// AddLog creates a log for a place visit, uploading any attached photos.
// The place must already be in the catalog (the app searches before
// logging). TripID is stored as given, not validated against trips, because
// the referenced trip may arrive later from another device.
func (s *LogService) AddLog(userID uint, req LogRequest) (*models.Log, error) {
	if !models.ValidRating(req.Rating) {
		return nil, fmt.Errorf("invalid rating %q", req.Rating)
	}
	if _, err := s.placeSvc.Get(req.PlaceID); err != nil {
		return nil, fmt.Errorf("unknown place %q", req.PlaceID)
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	lg := &models.Log{
		ID:      id,
		UserID:  userID,
		PlaceID: req.PlaceID,
		TripID:  normalizeTripID(req.TripID),
		Rating:  req.Rating,
		Note:    req.Note,
	}
	lg.SetTags(req.Tags)

	if err := config.DB.Create(lg).Error; err != nil {
		return nil, err
	}

	for _, b64 := range req.Photos {
		url, err := utils.UploadBase64ImageToS3(b64, "log-photos/"+lg.ID)
		if err != nil {
			return nil, fmt.Errorf("photo upload failed: %w", err)
		}
		photo := &models.LogPhoto{LogID: lg.ID, URL: url}
		if err := config.DB.Create(photo).Error; err != nil {
			return nil, err
		}
	}

	EmitChange(userID, "log", lg.ID, "create")

	var populated models.Log
	if err := config.DB.Preload("Photos").First(&populated, "id = ?", lg.ID).Error; err != nil {
		return nil, err
	}
	return &populated, nil
}

type LogUpdateRequest struct {
	TripID *string  `json:"trip_id"`
	Rating string   `json:"rating"`
	Note   *string  `json:"note"`
	Tags   []string `json:"tags"`
}

// UpdateLog edits rating/note/tags/trip assignment. Clearing the trip
// assignment is sending trip_id as the empty string.
func (s *LogService) UpdateLog(userID uint, logID string, req LogUpdateRequest) (*models.Log, error) {
	var lg models.Log
	if err := config.DB.
		Where("id = ? AND user_id = ?", logID, userID).
		First(&lg).Error; err != nil {
		return nil, err
	}

	if req.Rating != "" {
		if !models.ValidRating(req.Rating) {
			return nil, fmt.Errorf("invalid rating %q", req.Rating)
		}
		lg.Rating = req.Rating
	}
	if req.Note != nil {
		lg.Note = *req.Note
	}
	if req.Tags != nil {
		lg.SetTags(req.Tags)
	}
	if req.TripID != nil {
		lg.TripID = normalizeTripID(req.TripID)
	}

	if err := config.DB.Save(&lg).Error; err != nil {
		return nil, err
	}

	EmitChange(userID, "log", lg.ID, "update")

	var updated models.Log
	if err := config.DB.Preload("Photos").First(&updated, "id = ?", lg.ID).Error; err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteLog tombstones the log (soft delete) so the sync collaborator can
// propagate the removal; photos rows go with it.
func (s *LogService) DeleteLog(userID uint, logID string) error {
	res := config.DB.
		Where("id = ? AND user_id = ?", logID, userID).
		Delete(&models.Log{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return errors.New("log not found")
	}
	EmitChange(userID, "log", logID, "delete")
	return nil
}

func (s *LogService) GetLog(userID uint, logID string) (*models.Log, error) {
	var lg models.Log
	err := config.DB.
		Preload("Photos").
		Where("id = ? AND user_id = ?", logID, userID).
		First(&lg).Error
	if err != nil {
		return nil, err // could be ErrRecordNotFound
	}
	return &lg, nil
}

func (s *LogService) ListLogs(userID uint) ([]models.Log, error) {
	var logs []models.Log
	err := config.DB.
		Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (s *LogService) ListLogsByDateRange(userID uint, from, to time.Time) ([]models.Log, error) {
	var logs []models.Log
	err := config.DB.
		Preload("Photos").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

func (s *LogService) ListRecentLogs(userID uint, limit int) ([]models.Log, error) {
	if limit <= 0 {
		limit = 5
	}
	var logs []models.Log
	err := config.DB.
		Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// ListLogsByTag filters on the comma-separated tags column.
func (s *LogService) ListLogsByTag(userID uint, tag string) ([]models.Log, error) {
	var logs []models.Log
	err := config.DB.
		Preload("Photos").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	tag = strings.ToLower(strings.TrimSpace(tag))
	out := logs[:0]
	for _, lg := range logs {
		for _, t := range lg.TagList() {
			if strings.ToLower(t) == tag {
				out = append(out, lg)
				break
			}
		}
	}
	return out, nil
}

// empty-string trip ids from clients mean "no trip"
func normalizeTripID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}
