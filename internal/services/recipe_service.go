package services

import (
	"context"
	"errors"
	"strings"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
)

type RecipeService struct {
	recipes  repository.RecipeRepository
	posters  repository.PosterRepository
	uploader media.Uploader
	listing  *ListingService
}

func NewRecipeService(
	recipes repository.RecipeRepository,
	posters repository.PosterRepository,
	uploader media.Uploader,
	listing *ListingService,
) *RecipeService {
	return &RecipeService{recipes: recipes, posters: posters, uploader: uploader, listing: listing}
}

func (s *RecipeService) Create(ctx context.Context, ownerID uuid.UUID, in dto.RecipeInput, image *media.File) (*dto.RecipeResponse, error) {
	recipe := models.Recipe{
		ID:          uuid.New(),
		UserID:      &ownerID,
		PosterID:    in.PosterID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Time:        in.Time,
		Cal:         in.Cal,
		DishType:    in.DishType,
		Ingredients: in.Ingredients,
		Directions:  in.Directions,
	}
	if err := validateRecipe(&recipe); err != nil {
		return nil, err
	}

	if in.PosterID != nil {
		if _, err := s.posters.FindByID(ctx, *in.PosterID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrPosterNotFound
			}
			return nil, err
		}
		_, err := s.recipes.FindByPoster(ctx, *in.PosterID)
		if err == nil {
			return nil, ErrPosterTaken
		}
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
	}

	if image != nil {
		url, err := uploadImage(ctx, s.uploader, "recipes", *image)
		if err != nil {
			return nil, err
		}
		recipe.Img = url
	}

	if err := s.recipes.Create(ctx, &recipe); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrPosterTaken
		}
		return nil, err
	}

	return s.listing.GetRecipe(ctx, recipe.ID, &ownerID)
}

// Update applies the non-nil fields of patch. Recipes the caller does not own
// are reported as missing.
func (s *RecipeService) Update(ctx context.Context, ownerID, id uuid.UUID, patch dto.RecipePatch, image *media.File) (*dto.RecipeResponse, error) {
	recipe, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return nil, err
	}

	if patch.Name != nil {
		recipe.Name = strings.TrimSpace(*patch.Name)
	}
	if patch.Description != nil {
		recipe.Description = *patch.Description
	}
	if patch.Time != nil {
		recipe.Time = *patch.Time
	}
	if patch.Cal != nil {
		recipe.Cal = *patch.Cal
	}
	if patch.DishType != nil {
		recipe.DishType = *patch.DishType
	}
	if patch.Ingredients != nil {
		recipe.Ingredients = *patch.Ingredients
	}
	if patch.Directions != nil {
		recipe.Directions = *patch.Directions
	}
	if err := validateRecipe(recipe); err != nil {
		return nil, err
	}

	if image != nil {
		url, err := uploadImage(ctx, s.uploader, "recipes", *image)
		if err != nil {
			return nil, err
		}
		recipe.Img = url
	}

	if err := s.recipes.Update(ctx, recipe); err != nil {
		return nil, err
	}
	return s.listing.GetRecipe(ctx, recipe.ID, &ownerID)
}

// Delete removes an owned recipe together with every saved entry pointing at it.
func (s *RecipeService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	err := s.recipes.Delete(ctx, id, ownerID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotOwned
	}
	return err
}

// RecipeForPoster returns the poster's detail recipe with the poster's card
// fields laid over it.
func (s *RecipeService) RecipeForPoster(ctx context.Context, posterID uuid.UUID, callerID *uuid.UUID) (*dto.PosterRecipeResponse, error) {
	poster, err := s.posters.FindByID(ctx, posterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPosterNotFound
	}
	if err != nil {
		return nil, err
	}

	recipe, err := s.recipes.FindByPoster(ctx, posterID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.listing.enrich(ctx, []models.Recipe{*recipe}, callerID)
	if err != nil {
		return nil, err
	}
	merged := items[0]
	overlay(&merged.Name, poster.Name)
	overlay(&merged.Description, poster.Description)
	overlay(&merged.Img, poster.Img)
	overlay(&merged.Time, poster.Time)
	overlay(&merged.Cal, poster.Cal)
	overlay(&merged.DishType, poster.DishType)

	return &dto.PosterRecipeResponse{Recipe: merged}, nil
}

func (s *RecipeService) owned(ctx context.Context, ownerID, id uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrNotOwned
	}
	if err != nil {
		return nil, err
	}
	if recipe.UserID == nil || *recipe.UserID != ownerID {
		return nil, ErrNotOwned
	}
	return recipe, nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func validateRecipe(r *models.Recipe) error {
	if r.Name == "" {
		return validation("name is required")
	}
	if len(r.Ingredients) == 0 {
		return validation("at least one ingredient is required")
	}
	for _, in := range r.Ingredients {
		if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Quantity) == "" {
			return validation("each ingredient needs a name and a quantity")
		}
	}
	if len(r.Directions) == 0 {
		return validation("at least one direction is required")
	}
	for _, d := range r.Directions {
		if strings.TrimSpace(d.Title) == "" || strings.TrimSpace(d.Description) == "" {
			return validation("each direction needs a title and a description")
		}
	}
	return nil
}
