package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FullName       string
	HomeCity       string
	ProfilePicture string
	MFAEnabled     bool
	MFACode        string
	ResetToken     string
	ResetTokenExp  time.Time
	Disabled       bool
	Onboarded      bool
}
