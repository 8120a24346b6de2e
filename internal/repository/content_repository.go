package repository

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormPosterRepository struct {
	db *gorm.DB
}

func NewGormPosterRepository(db *gorm.DB) *GormPosterRepository {
	return &GormPosterRepository{db: db}
}

func (r *GormPosterRepository) Create(ctx context.Context, poster *models.Poster) error {
	ensureID(&poster.ID)
	return translate(r.db.WithContext(ctx).Create(poster).Error)
}

func (r *GormPosterRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	var poster models.Poster
	if err := r.db.WithContext(ctx).First(&poster, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &poster, nil
}

func (r *GormPosterRepository) List(ctx context.Context) ([]models.Poster, error) {
	var posters []models.Poster
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&posters).Error
	return posters, err
}

type GormArticleRepository struct {
	db *gorm.DB
}

func NewGormArticleRepository(db *gorm.DB) *GormArticleRepository {
	return &GormArticleRepository{db: db}
}

func (r *GormArticleRepository) Create(ctx context.Context, article *models.Article) error {
	ensureID(&article.ID)
	return translate(r.db.WithContext(ctx).Create(article).Error)
}

func (r *GormArticleRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	var article models.Article
	if err := r.db.WithContext(ctx).First(&article, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &article, nil
}

func (r *GormArticleRepository) List(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := r.db.WithContext(ctx).Order(newestFirst).Find(&articles).Error
	return articles, err
}
