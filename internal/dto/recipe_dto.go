package dto

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
)

// Owner is the public projection of a recipe's author.
type Owner struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	ProfileImage string    `json:"profile_image"`
}

// RecipeResponse is a recipe enriched with its owner and, when the caller is
// known, whether the caller saved it. Owner is null when the author is gone.
type RecipeResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Img         string              `json:"img"`
	Time        string              `json:"time"`
	Cal         string              `json:"cal"`
	DishType    string              `json:"dish_type"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Directions  []models.Direction  `json:"directions"`
	PosterID    *uuid.UUID          `json:"poster_id,omitempty"`
	Owner       *Owner              `json:"owner"`
	IsSaved     bool                `json:"is_saved"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

type RecipePage struct {
	Items   []RecipeResponse `json:"items"`
	HasMore bool             `json:"has_more"`
}

type ListQuery struct {
	Page               int
	PageSize           int
	Search             string
	IncludeDescription bool
}

type RecipeInput struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Time        string              `json:"time"`
	Cal         string              `json:"cal"`
	DishType    string              `json:"dish_type"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Directions  []models.Direction  `json:"directions"`
	PosterID    *uuid.UUID          `json:"poster_id,omitempty"`
}

// RecipePatch holds the fields an owner may change; nil means unchanged.
type RecipePatch struct {
	Name        *string              `json:"name"`
	Description *string              `json:"description"`
	Time        *string              `json:"time"`
	Cal         *string              `json:"cal"`
	DishType    *string              `json:"dish_type"`
	Ingredients *[]models.Ingredient `json:"ingredients"`
	Directions  *[]models.Direction  `json:"directions"`
}

// PosterRecipeResponse is a poster's detail recipe with the poster's card
// fields laid over it.
type PosterRecipeResponse struct {
	Recipe RecipeResponse `json:"recipe"`
}
