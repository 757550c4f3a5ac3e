// services/trip_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
	"github.com/ammiagames/sonder-sub002/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TripService struct {
	push *PushService // nil in tests and when SNS is not configured
}

func NewTripService(push *PushService) *TripService {
	return &TripService{push: push}
}

type TripRequest struct {
	ID         string     `json:"id"` // optional device-minted UUID
	Name       string     `json:"name"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	CoverPhoto string     `json:"cover_photo"` // base64 data URI
}

func (s *TripService) CreateTrip(userID uint, req TripRequest) (*models.Trip, error) {
	if req.Name == "" {
		return nil, errors.New("trip name is required")
	}
	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	trip := &models.Trip{
		ID:        id,
		Name:      req.Name,
		CreatorID: userID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if req.CoverPhoto != "" {
		url, err := utils.UploadBase64ImageToS3(req.CoverPhoto, "trip-covers/"+id)
		if err != nil {
			return nil, fmt.Errorf("cover upload failed: %w", err)
		}
		trip.CoverPhoto = url
	}

	if err := config.DB.Create(trip).Error; err != nil {
		return nil, err
	}
	EmitChange(userID, "trip", trip.ID, "create")
	return trip, nil
}

func (s *TripService) UpdateTrip(userID uint, tripID string, req TripRequest) (*models.Trip, error) {
	trip, err := s.getEditable(userID, tripID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		trip.Name = req.Name
	}
	if req.StartDate != nil {
		trip.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		trip.EndDate = req.EndDate
	}
	if req.CoverPhoto != "" {
		url, err := utils.UploadBase64ImageToS3(req.CoverPhoto, "trip-covers/"+trip.ID)
		if err != nil {
			return nil, fmt.Errorf("cover upload failed: %w", err)
		}
		trip.CoverPhoto = url
	}

	if err := config.DB.Save(trip).Error; err != nil {
		return nil, err
	}
	EmitChange(userID, "trip", trip.ID, "update")
	return trip, nil
}

// DeleteTrip removes the trip and its collaborator rows. Logs keep their
// TripID on purpose: a now-dangling reference lands the log in the
// unassigned gallery bucket instead of destroying user data.
func (s *TripService) DeleteTrip(userID uint, tripID string) error {
	var trip models.Trip
	if err := config.DB.
		Where("id = ? AND creator_id = ?", tripID, userID).
		First(&trip).Error; err != nil {
		return err
	}
	if err := config.DB.Where("trip_id = ?", tripID).Delete(&models.TripCollaborator{}).Error; err != nil {
		return err
	}
	if err := config.DB.Delete(&trip).Error; err != nil {
		return err
	}
	EmitChange(userID, "trip", tripID, "delete")
	return nil
}

func (s *TripService) GetTrip(userID uint, tripID string) (*models.Trip, error) {
	var trip models.Trip
	err := config.DB.
		Preload("Collaborators").
		Where("id = ?", tripID).
		First(&trip).Error
	if err != nil {
		return nil, err
	}
	if !s.canSee(userID, &trip) {
		return nil, gorm.ErrRecordNotFound
	}
	return &trip, nil
}

// ListTrips returns trips the user created plus trips shared with them,
// newest first. This is the caller-side access filtering the gallery core
// expects to have already happened.
func (s *TripService) ListTrips(userID uint) ([]models.Trip, error) {
	var trips []models.Trip
	err := config.DB.
		Preload("Collaborators").
		Where("creator_id = ? OR id IN (?)",
			userID,
			config.DB.Model(&models.TripCollaborator{}).Select("trip_id").Where("user_id = ?", userID),
		).
		Order("created_at DESC").
		Find(&trips).Error
	return trips, err
}

// AddCollaborator shares a trip by email: the invitee gets an SES email and
// an SNS push if they have a device registered.
func (s *TripService) AddCollaborator(ownerID uint, tripID, email string) error {
	trip, err := s.getEditable(ownerID, tripID)
	if err != nil {
		return err
	}

	invitee, err := FindUserByEmail(email)
	if err != nil {
		return err
	}
	if invitee.ID == ownerID {
		return errors.New("cannot add yourself as a collaborator")
	}

	collab := models.TripCollaborator{TripID: trip.ID, UserID: invitee.ID}
	var existing models.TripCollaborator
	if err := config.DB.
		Where("trip_id = ? AND user_id = ?", trip.ID, invitee.ID).
		First(&existing).Error; err == nil {
		return nil // already a collaborator
	}
	if err := config.DB.Create(&collab).Error; err != nil {
		return err
	}

	var owner models.User
	if err := config.DB.First(&owner, ownerID).Error; err == nil {
		_ = utils.SendTripInviteEmail(invitee.Email, owner.FullName, trip.Name)
		if s.push != nil {
			s.push.PushToUser(invitee.ID, "New trip shared with you",
				fmt.Sprintf("%s added you to \"%s\"", owner.FullName, trip.Name),
				map[string]string{"trip_id": trip.ID})
		}
	}

	EmitChange(invitee.ID, "trip", trip.ID, "create")
	return nil
}

func (s *TripService) RemoveCollaborator(ownerID uint, tripID string, userID uint) error {
	if _, err := s.getEditable(ownerID, tripID); err != nil {
		return err
	}
	res := config.DB.
		Where("trip_id = ? AND user_id = ?", tripID, userID).
		Delete(&models.TripCollaborator{})
	if res.Error != nil {
		return res.Error
	}
	EmitChange(userID, "trip", tripID, "delete")
	return nil
}

// creator or collaborator may edit
func (s *TripService) getEditable(userID uint, tripID string) (*models.Trip, error) {
	var trip models.Trip
	if err := config.DB.
		Preload("Collaborators").
		Where("id = ?", tripID).
		First(&trip).Error; err != nil {
		return nil, err
	}
	if !s.canSee(userID, &trip) {
		return nil, gorm.ErrRecordNotFound
	}
	return &trip, nil
}

func (s *TripService) canSee(userID uint, trip *models.Trip) bool {
	if trip.CreatorID == userID {
		return true
	}
	for _, c := range trip.Collaborators {
		if c.UserID == userID {
			return true
		}
	}
	return false
}
