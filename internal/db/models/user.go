package models

import (
	"time"
)

// User is a member of the workspace shown on the user management page.
// Users do not log in, the role only documents what they are allowed to do.
type User struct {
	// ID is the unique identifier for the user.
	ID uint64 `gorm:"primaryKey"`
	// Name is the display name.
	Name string `gorm:"size:100;not null"`
	// Email is the user's email address.
	Email string `gorm:"unique;size:255;not null"`
	// Role is either GENERAL_USER or ADMIN.
	Role string `gorm:"size:20;not null;default:'GENERAL_USER'"`
	// Region the user publishes for.
	Region string `gorm:"size:100"`
	// Active indicates whether the user account is active.
	Active bool
	// CreatedAt is the timestamp when the user was created (managed by GORM).
	CreatedAt time.Time
	// UpdatedAt is the timestamp when the user was last updated (managed by GORM).
	UpdatedAt time.Time
}
