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

type PosterService struct {
	posters  repository.PosterRepository
	uploader media.Uploader
}

func NewPosterService(posters repository.PosterRepository, uploader media.Uploader) *PosterService {
	return &PosterService{posters: posters, uploader: uploader}
}

func (s *PosterService) Create(ctx context.Context, in dto.PosterInput, image *media.File) (*models.Poster, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, validation("name is required")
	}
	if image == nil {
		return nil, validation("image is required")
	}

	url, err := uploadImage(ctx, s.uploader, "posters", *image)
	if err != nil {
		return nil, err
	}

	poster := models.Poster{
		ID:          uuid.New(),
		Name:        name,
		Description: in.Description,
		Img:         url,
		Time:        in.Time,
		Cal:         in.Cal,
		DishType:    in.DishType,
	}
	if err := s.posters.Create(ctx, &poster); err != nil {
		return nil, err
	}
	return &poster, nil
}

func (s *PosterService) List(ctx context.Context) ([]models.Poster, error) {
	posters, err := s.posters.List(ctx)
	if err != nil {
		return nil, err
	}
	if posters == nil {
		posters = []models.Poster{}
	}
	return posters, nil
}

func (s *PosterService) Get(ctx context.Context, id uuid.UUID) (*models.Poster, error) {
	poster, err := s.posters.FindByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPosterNotFound
	}
	return poster, err
}
