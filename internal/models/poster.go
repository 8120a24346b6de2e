package models

import (
	"time"

	"github.com/google/uuid"
)

// Poster is a dish card shown on the landing feed.
type Poster struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name        string    `gorm:"size:200;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Img         string    `gorm:"size:500;not null" json:"img"`
	Time        string    `gorm:"size:50" json:"time"`
	Cal         string    `gorm:"size:50" json:"cal"`
	DishType    string    `gorm:"size:50" json:"dish_type"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
