package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Ingredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit,omitempty"`
}

type Direction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Recipe is user-authored content. UserID is nullable for legacy records
// without an owner. PosterID links the recipe to the dish poster it details;
// at most one live recipe per poster.
type Recipe struct {
	ID          uuid.UUID                       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID      *uuid.UUID                      `gorm:"type:uuid;index" json:"user_id"`
	PosterID    *uuid.UUID                      `gorm:"type:uuid;index" json:"poster_id,omitempty"`
	Name        string                          `gorm:"size:200;not null" json:"name"`
	Description string                          `gorm:"type:text" json:"description"`
	Img         string                          `gorm:"size:500" json:"img"`
	Time        string                          `gorm:"size:50" json:"time"`
	Cal         string                          `gorm:"size:50" json:"cal"`
	DishType    string                          `gorm:"size:50;index" json:"dish_type"`
	Ingredients datatypes.JSONSlice[Ingredient] `gorm:"type:jsonb;not null" json:"ingredients"`
	Directions  datatypes.JSONSlice[Direction]  `gorm:"type:jsonb;not null" json:"directions"`
	CreatedAt   time.Time                       `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time                       `json:"updated_at"`
	DeletedAt   gorm.DeletedAt                  `gorm:"index" json:"-"`
}
