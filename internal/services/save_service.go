package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
)

// SaveService toggles recipes in a user's saved set. Add and remove are
// single atomic store operations, so concurrent toggles never lose entries.
type SaveService struct {
	users   repository.UserRepository
	recipes repository.RecipeRepository
	saves   repository.SaveRepository
	listing *ListingService
}

func NewSaveService(users repository.UserRepository, recipes repository.RecipeRepository, saves repository.SaveRepository, listing *ListingService) *SaveService {
	return &SaveService{users: users, recipes: recipes, saves: saves, listing: listing}
}

// SaveRecipe adds the recipe to the caller's saved set. A token can outlive
// its account, so the caller must still exist.
func (s *SaveService) SaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*dto.MessageResponse, error) {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAccountGone
		}
		return nil, err
	}
	if err := s.recipeExists(ctx, recipeID); err != nil {
		metrics.SaveOutcome("save", "not_found")
		return nil, err
	}

	added, err := s.saves.Add(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !added {
		metrics.SaveOutcome("save", "exists")
		return &dto.MessageResponse{Message: "Recipe already saved"}, nil
	}
	metrics.SaveOutcome("save", "added")
	return &dto.MessageResponse{Message: "Recipe saved successfully"}, nil
}

func (s *SaveService) UnsaveRecipe(ctx context.Context, userID, recipeID uuid.UUID) (*dto.MessageResponse, error) {
	if err := s.recipeExists(ctx, recipeID); err != nil {
		metrics.SaveOutcome("unsave", "not_found")
		return nil, err
	}

	removed, err := s.saves.Remove(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	if !removed {
		metrics.SaveOutcome("unsave", "not_saved")
		return nil, ErrNotSaved
	}
	metrics.SaveOutcome("unsave", "removed")
	return &dto.MessageResponse{Message: "Recipe removed from saved list"}, nil
}

// GetSavedRecipes loads the whole saved set in one batched lookup, newest
// recipe first. Entries whose recipe is gone are skipped.
func (s *SaveService) GetSavedRecipes(ctx context.Context, userID uuid.UUID) ([]dto.RecipeResponse, error) {
	ids, err := s.saves.RecipeIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []dto.RecipeResponse{}, nil
	}

	recipes, err := s.recipes.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items, err := s.listing.enrich(ctx, recipes, &userID)
	if err != nil {
		return nil, err
	}
	for i := range items {
		items[i].IsSaved = true
	}
	return items, nil
}

func (s *SaveService) recipeExists(ctx context.Context, id uuid.UUID) error {
	_, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrRecipeNotFound
	}
	return err
}
