package services

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/spoonacular"
)

type SuggestionClient interface {
	FindByIngredients(ctx context.Context, ingredients []string) ([]spoonacular.SuggestedRecipe, error)
	RecipeInformation(ctx context.Context, id int) (json.RawMessage, error)
}

type SuggestionService struct {
	client SuggestionClient
}

func NewSuggestionService(client SuggestionClient) *SuggestionService {
	return &SuggestionService{client: client}
}

var (
	nonIngredientChars = regexp.MustCompile(`[^a-zA-Z, ]`)
	ingredientSep      = regexp.MustCompile(`[\s,]+`)
)

// NormalizeIngredients turns free text such as "2 Eggs, milk!" into
// ["eggs", "milk"].
func NormalizeIngredients(search string) []string {
	cleaned := strings.ToLower(nonIngredientChars.ReplaceAllString(search, ""))
	var out []string
	for _, tok := range ingredientSep.Split(cleaned, -1) {
		if tok != "" {
			out = append(out, tok)
		}
	}
	return out
}

func (s *SuggestionService) FindByIngredients(ctx context.Context, search string) ([]spoonacular.SuggestedRecipe, error) {
	ingredients := NormalizeIngredients(search)
	if len(ingredients) == 0 {
		return nil, validation("search must name at least one ingredient")
	}

	recipes, err := s.client.FindByIngredients(ctx, ingredients)
	if err != nil {
		return nil, s.mapError(err)
	}
	if recipes == nil {
		recipes = []spoonacular.SuggestedRecipe{}
	}
	return recipes, nil
}

func (s *SuggestionService) RecipeInformation(ctx context.Context, rawID string) (json.RawMessage, error) {
	id, err := strconv.Atoi(rawID)
	if err != nil || id <= 0 {
		return nil, validation("recipe id must be a positive integer")
	}

	info, err := s.client.RecipeInformation(ctx, id)
	if err != nil {
		return nil, s.mapError(err)
	}
	return info, nil
}

func (s *SuggestionService) mapError(err error) error {
	var se *spoonacular.StatusError
	if errors.As(err, &se) && se.Code == http.StatusNotFound {
		return &Error{Kind: ErrNotFound, Msg: "suggested recipe not found", Cause: err}
	}
	slog.Error("recipe suggestion call failed", "error", err)
	return upstream("recipe suggestions are unavailable", err)
}
