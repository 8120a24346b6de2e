// Package repository is the persistence boundary: the identity store (users,
// refresh tokens), the content store (recipes, posters, articles) and the
// save relation store. Each store has a GORM implementation backed by
// Postgres and an in-memory implementation with the same semantics.
package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// RecipeFilter narrows recipe listings. Search is matched as a literal,
// case-insensitive substring of the name (and the description when
// IncludeDescription is set).
type RecipeFilter struct {
	Search             string
	IncludeDescription bool
	OwnerID            *uuid.UUID
}

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	// FindByIDs returns the live users among ids, in no particular order.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.User, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error
	MarkVerified(ctx context.Context, id uuid.UUID) error
	// SoftDelete removes the account, its refresh tokens and its saved entries.
	SoftDelete(ctx context.Context, id uuid.UUID) error
	// Transaction runs fn against a repository bound to one transaction.
	Transaction(ctx context.Context, fn func(UserRepository) error) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, token *models.RefreshToken) error
	FindActive(ctx context.Context, tokenHash string) (*models.RefreshToken, error)
	Revoke(ctx context.Context, tokenHash string) error
}

type RecipeRepository interface {
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	// Delete removes the recipe only when ownerID owns it.
	Delete(ctx context.Context, id, ownerID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	// FindByIDs loads all ids in one lookup, newest first.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Recipe, error)
	FindByPoster(ctx context.Context, posterID uuid.UUID) (*models.Recipe, error)
	Count(ctx context.Context, filter RecipeFilter) (int64, error)
	// Find returns matching recipes newest first.
	Find(ctx context.Context, filter RecipeFilter, offset, limit int) ([]models.Recipe, error)
}

type SaveRepository interface {
	// Add reports whether a new entry was written; an existing entry is left alone.
	Add(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	// Remove reports whether an entry was deleted.
	Remove(ctx context.Context, userID, recipeID uuid.UUID) (bool, error)
	// RecipeIDs returns the saved set in save order.
	RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
	// SavedAmong returns the subset of recipeIDs present in the user's set.
	SavedAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error)
}

type PosterRepository interface {
	Create(ctx context.Context, poster *models.Poster) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error)
	List(ctx context.Context) ([]models.Poster, error)
}

type ArticleRepository interface {
	Create(ctx context.Context, article *models.Article) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error)
	List(ctx context.Context) ([]models.Article, error)
}

func likePattern(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func stamp(created, updated *time.Time) {
	now := time.Now().UTC()
	if created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}
