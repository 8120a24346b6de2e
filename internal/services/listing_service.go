package services

import (
	"context"
	"errors"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const (
	MaxPageSize = 100

	trendingSkip = 2
	trendingTake = 3
)

// ListingService serves recipe listings enriched with owner identity and the
// caller's saved flags.
type ListingService struct {
	recipes repository.RecipeRepository
	users   repository.UserRepository
	saves   repository.SaveRepository
}

func NewListingService(recipes repository.RecipeRepository, users repository.UserRepository, saves repository.SaveRepository) *ListingService {
	return &ListingService{recipes: recipes, users: users, saves: saves}
}

// ListRecipes returns one page, newest first. HasMore is true exactly when
// recipes beyond this page match the same filter.
func (s *ListingService) ListRecipes(ctx context.Context, q dto.ListQuery, callerID *uuid.UUID) (*dto.RecipePage, error) {
	filter := repository.RecipeFilter{Search: q.Search, IncludeDescription: q.IncludeDescription}
	return s.page(ctx, filter, q.Page, q.PageSize, callerID)
}

// Trending is the fixed window of the third to fifth newest recipes.
func (s *ListingService) Trending(ctx context.Context, callerID *uuid.UUID) ([]dto.RecipeResponse, error) {
	recipes, err := s.recipes.Find(ctx, repository.RecipeFilter{}, trendingSkip, trendingTake)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, recipes, callerID)
}

func (s *ListingService) ListOwn(ctx context.Context, callerID *uuid.UUID, page, pageSize int) (*dto.RecipePage, error) {
	if callerID == nil {
		return nil, ErrLoginRequired
	}
	return s.page(ctx, repository.RecipeFilter{OwnerID: callerID}, page, pageSize, callerID)
}

func (s *ListingService) GetRecipe(ctx context.Context, id uuid.UUID, callerID *uuid.UUID) (*dto.RecipeResponse, error) {
	recipe, err := s.recipes.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.enrich(ctx, []models.Recipe{*recipe}, callerID)
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

func (s *ListingService) page(ctx context.Context, filter repository.RecipeFilter, page, pageSize int, callerID *uuid.UUID) (*dto.RecipePage, error) {
	if page < 1 {
		return nil, validation("page must be a positive integer")
	}
	if pageSize < 1 || pageSize > MaxPageSize {
		return nil, validation("page_size must be between 1 and 100")
	}

	total, err := s.recipes.Count(ctx, filter)
	if err != nil {
		return nil, err
	}

	// Pages past the last one are empty; checking first keeps the offset
	// arithmetic within the catalog size.
	pages := (total + int64(pageSize) - 1) / int64(pageSize)
	if int64(page-1) >= pages {
		return &dto.RecipePage{Items: []dto.RecipeResponse{}}, nil
	}

	recipes, err := s.recipes.Find(ctx, filter, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}

	items, err := s.enrich(ctx, recipes, callerID)
	if err != nil {
		return nil, err
	}

	return &dto.RecipePage{
		Items:   items,
		HasMore: int64(page) < pages,
	}, nil
}

// enrich attaches owners and saved flags. Owners and flags come from one
// batched lookup each, run concurrently.
func (s *ListingService) enrich(ctx context.Context, recipes []models.Recipe, callerID *uuid.UUID) ([]dto.RecipeResponse, error) {
	items := make([]dto.RecipeResponse, 0, len(recipes))
	if len(recipes) == 0 {
		return items, nil
	}

	ownerIDs := make([]uuid.UUID, 0, len(recipes))
	seen := make(map[uuid.UUID]bool, len(recipes))
	recipeIDs := make([]uuid.UUID, 0, len(recipes))
	for _, r := range recipes {
		recipeIDs = append(recipeIDs, r.ID)
		if r.UserID != nil && !seen[*r.UserID] {
			seen[*r.UserID] = true
			ownerIDs = append(ownerIDs, *r.UserID)
		}
	}

	var (
		owners map[uuid.UUID]*dto.Owner
		saved  map[uuid.UUID]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		users, err := s.users.FindByIDs(gctx, ownerIDs)
		if err != nil {
			return err
		}
		owners = make(map[uuid.UUID]*dto.Owner, len(users))
		for _, u := range users {
			owners[u.ID] = &dto.Owner{ID: u.ID, Name: u.Name, ProfileImage: u.ProfileImage}
		}
		return nil
	})
	if callerID != nil {
		g.Go(func() error {
			var err error
			saved, err = s.saves.SavedAmong(gctx, *callerID, recipeIDs)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, r := range recipes {
		item := toRecipeResponse(r)
		if r.UserID != nil {
			item.Owner = owners[*r.UserID]
		}
		item.IsSaved = saved[r.ID]
		items = append(items, item)
	}
	return items, nil
}

func toRecipeResponse(r models.Recipe) dto.RecipeResponse {
	ingredients := []models.Ingredient(r.Ingredients)
	if ingredients == nil {
		ingredients = []models.Ingredient{}
	}
	directions := []models.Direction(r.Directions)
	if directions == nil {
		directions = []models.Direction{}
	}
	return dto.RecipeResponse{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		Img:         r.Img,
		Time:        r.Time,
		Cal:         r.Cal,
		DishType:    r.DishType,
		Ingredients: ingredients,
		Directions:  directions,
		PosterID:    r.PosterID,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
