package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const newestFirst = "created_at DESC, id DESC"

type GormRecipeRepository struct {
	db *gorm.DB
}

func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// matching returns a GORM scope applying the filter.
func matching(f RecipeFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if f.OwnerID != nil {
			db = db.Where("user_id = ?", *f.OwnerID)
		}
		if f.Search != "" {
			p := likePattern(f.Search)
			if f.IncludeDescription {
				db = db.Where("(name ILIKE ? OR description ILIKE ?)", p, p)
			} else {
				db = db.Where("name ILIKE ?", p)
			}
		}
		return db
	}
}

func (r *GormRecipeRepository) Create(ctx context.Context, recipe *models.Recipe) error {
	ensureID(&recipe.ID)
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Create(recipe).Error)
}

func (r *GormRecipeRepository) Update(ctx context.Context, recipe *models.Recipe) error {
	return translate(r.db.WithContext(ctx).Omit(clause.Associations).Save(recipe).Error)
}

func (r *GormRecipeRepository) Delete(ctx context.Context, id, ownerID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ? AND user_id = ?", id, ownerID).Delete(&models.Recipe{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Where("recipe_id = ?", id).Delete(&models.SavedRecipe{}).Error
	})
}

func (r *GormRecipeRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *GormRecipeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Recipe, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Order(newestFirst).
		Find(&recipes).Error
	return recipes, err
}

func (r *GormRecipeRepository) FindByPoster(ctx context.Context, posterID uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).Where("poster_id = ?", posterID).First(&recipe).Error; err != nil {
		return nil, translate(err)
	}
	return &recipe, nil
}

func (r *GormRecipeRepository) Count(ctx context.Context, filter RecipeFilter) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Recipe{}).
		Scopes(matching(filter)).
		Count(&total).Error
	return total, err
}

func (r *GormRecipeRepository) Find(ctx context.Context, filter RecipeFilter, offset, limit int) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.WithContext(ctx).
		Scopes(matching(filter)).
		Order(newestFirst).
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error
	return recipes, err
}
