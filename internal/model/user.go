package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents a registered account. JSON field names follow the
// public API's camelCase wire format.
type User struct {
	ID       uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Username string    `json:"username" gorm:"uniqueIndex;size:255;not null"`
	Email    string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Password string    `json:"-" gorm:"size:255;not null"` // bcrypt hash, never exposed in JSON

	FirstName      string `json:"firstName,omitempty" gorm:"size:255"`
	LastName       string `json:"lastName,omitempty" gorm:"size:255"`
	ProfilePicture string `json:"profilePicture,omitempty" gorm:"size:512"`

	// Optional fields supplied during profile completion.
	Age            *int     `json:"age,omitempty"`
	Height         *float64 `json:"height,omitempty"`
	Weight         *float64 `json:"weight,omitempty"`
	ExerciseChoice string   `json:"exerciseChoice,omitempty" gorm:"size:255"`
	City           string   `json:"city,omitempty" gorm:"size:255"`
	State          string   `json:"state,omitempty" gorm:"size:255"`
	ZipCode        string   `json:"zipCode,omitempty" gorm:"size:32"`
	PhoneNumber    string   `json:"phoneNumber,omitempty" gorm:"size:32"`

	// ProfileCompleted flips to true the first time any profile field is
	// supplied and is never reset.
	ProfileCompleted bool `json:"profileCompleted" gorm:"default:false"`

	// Verified is only set by the email-confirmation step; no route in
	// this service writes it.
	Verified          bool   `json:"verified" gorm:"default:false"`
	VerificationToken string `json:"verificationToken" gorm:"size:64;not null"`

	Date time.Time `json:"date" gorm:"autoCreateTime"`
}

// BeforeCreate sets UUID before creating the record.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
