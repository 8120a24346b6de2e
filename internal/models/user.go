package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a FoodHub account. Email uniqueness among live accounts is enforced
// by a partial unique index created in the SQL migrations.
type User struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string         `gorm:"size:100;not null" json:"name"`
	Email        string         `gorm:"size:255;not null;index" json:"email"`
	Password     string         `gorm:"not null" json:"-"`
	Verified     bool           `gorm:"default:false;not null" json:"verified"`
	ProfileImage string         `gorm:"size:500" json:"profile_image"`
	CoverImage   string         `gorm:"size:500" json:"cover_image"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
