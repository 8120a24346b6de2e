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

type ArticleService struct {
	articles repository.ArticleRepository
	uploader media.Uploader
}

func NewArticleService(articles repository.ArticleRepository, uploader media.Uploader) *ArticleService {
	return &ArticleService{articles: articles, uploader: uploader}
}

func (s *ArticleService) Create(ctx context.Context, in dto.ArticleInput, image *media.File) (*models.Article, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("name is required")
	}
	if image == nil {
		return nil, validation("image is required")
	}

	url, err := uploadImage(ctx, s.uploader, "articles", *image)
	if err != nil {
		return nil, err
	}

	article := models.Article{
		ID:          uuid.New(),
		Name:        name,
		Description: in.Description,
		Content:     in.Content,
		Img:         url,
	}
	if err := s.articles.Create(ctx, &article); err != nil {
		return nil, err
	}
	return &article, nil
}

func (s *ArticleService) List(ctx context.Context) ([]models.Article, error) {
	articles, err := s.articles.List(ctx)
	if err != nil {
		return nil, err
	}
	if articles == nil {
		articles = []models.Article{}
	}
	return articles, nil
}

func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (*models.Article, error) {
	article, err := s.articles.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrArticleNotFound
	}
	return article, err
}
