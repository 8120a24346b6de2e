package repository

import (
	"context"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormSaveRepository stores saved sets as rows of saved_recipes. Add and
// Remove are single statements, so concurrent toggles for one user cannot
// lose each other's updates.
type GormSaveRepository struct {
	db *gorm.DB
}

func NewGormSaveRepository(db *gorm.DB) *GormSaveRepository {
	return &GormSaveRepository{db: db}
}

func (r *GormSaveRepository) Add(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Exec(
		`INSERT INTO saved_recipes (id, user_id, recipe_id, created_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id, recipe_id) DO NOTHING`,
		uuid.New(), userID, recipeID, time.Now().UTC(),
	)
	if result.Error != nil {
		return false, translate(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *GormSaveRepository) Remove(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *GormSaveRepository) RecipeIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("recipe_id", &ids).Error
	return ids, err
}

func (r *GormSaveRepository) SavedAmong(ctx context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	saved := make(map[uuid.UUID]bool, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return saved, nil
	}

	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &found).Error
	if err != nil {
		return nil, err
	}
	for _, id := range found {
		saved[id] = true
	}
	return saved, nil
}
