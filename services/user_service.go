package services

import (
	"errors"
	"fmt"

	"github.com/ammiagames/sonder-sub002/config"
	"github.com/ammiagames/sonder-sub002/models"
	"github.com/ammiagames/sonder-sub002/utils"
)

type ProfileInput struct {
	FullName       string `json:"full_name"`
	HomeCity       string `json:"home_city"`
	ProfilePicture string `json:"profile_picture"` // base64 data URI when changed
	Onboarded      bool   `json:"onboarded"`
}

func GetUserProfile(userID uint) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"full_name":       user.FullName,
		"home_city":       user.HomeCity,
		"profile_picture": user.ProfilePicture,
		"mfa_enabled":     user.MFAEnabled,
		"onboarded":       user.Onboarded,
	}, nil
}

func UpdateUserProfile(userID uint, input ProfileInput) error {
	var user models.User
	result := config.DB.Where("id = ? AND disabled = ?", userID, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FullName != "" {
		user.FullName = input.FullName
	}
	if input.HomeCity != "" {
		user.HomeCity = input.HomeCity
	}
	if input.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(input.ProfilePicture, "profile-pictures/"+user.Email)
		if err != nil {
			return fmt.Errorf("failed to upload image: %v", err)
		}
		user.ProfilePicture = url
	}

	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

func DisableUser(userID uint) error {
	var user models.User
	result := config.DB.First(&user, userID)
	if result.Error != nil {
		return result.Error
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}
