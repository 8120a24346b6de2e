package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/mail"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type fakeMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *fakeMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

type fakeUploader struct {
	folders []string
	err     error
}

func (u *fakeUploader) Upload(_ context.Context, folder string, f media.File) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	u.folders = append(u.folders, folder)
	return "https://cdn.test/" + folder + "/" + f.Name, nil
}

func pngFile(name string) *media.File {
	return &media.File{Name: name, ContentType: "image/png", Size: 3, Body: strings.NewReader("png")}
}

type fixture struct {
	cfg      *config.Config
	users    *repository.MemoryUserRepository
	tokens   *repository.MemoryRefreshTokenRepository
	recipes  *repository.MemoryRecipeRepository
	saves    *repository.MemorySaveRepository
	posters  *repository.MemoryPosterRepository
	articles *repository.MemoryArticleRepository
	mailer   *fakeMailer
	uploader *fakeUploader

	jwt     *TokenService
	auth    *AuthService
	listing *ListingService
	saving  *SaveService
	recipe  *RecipeService
	poster  *PosterService
	article *ArticleService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		cfg: &config.Config{
			JWTSecret:        "test-secret",
			JWTAccessExpiry:  15 * time.Minute,
			JWTRefreshExpiry: time.Hour,
			JWTVerifyExpiry:  time.Hour,
			FrontendURL:      "https://foodhub.test",
		},
		users:    repository.NewMemoryUserRepository(),
		tokens:   repository.NewMemoryRefreshTokenRepository(),
		recipes:  repository.NewMemoryRecipeRepository(),
		saves:    repository.NewMemorySaveRepository(),
		posters:  repository.NewMemoryPosterRepository(),
		articles: repository.NewMemoryArticleRepository(),
		mailer:   &fakeMailer{},
		uploader: &fakeUploader{},
	}
	f.users.Link(f.tokens, f.saves)
	f.recipes.Link(f.saves)
	f.jwt = NewTokenService(f.cfg)
	f.auth = NewAuthService(f.users, f.tokens, f.jwt, f.mailer, f.uploader, f.cfg)
	f.listing = NewListingService(f.recipes, f.users, f.saves)
	f.saving = NewSaveService(f.users, f.recipes, f.saves, f.listing)
	f.recipe = NewRecipeService(f.recipes, f.posters, f.uploader, f.listing)
	f.poster = NewPosterService(f.posters, f.uploader)
	f.article = NewArticleService(f.articles, f.uploader)
	return f
}

func (f *fixture) addUser(t *testing.T, name string) *models.User {
	t.Helper()
	u := &models.User{Name: name, Email: strings.ToLower(name) + "@example.com", Verified: true, ProfileImage: "https://cdn.test/" + name}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u
}

// seedRecipes adds n recipes named recipe-01..recipe-NN, one minute apart,
// so recipe-NN is the newest.
func (f *fixture) seedRecipes(t *testing.T, n int, owner *uuid.UUID) []models.Recipe {
	t.Helper()
	base := time.Now().Add(-24 * time.Hour)
	out := make([]models.Recipe, 0, n)
	for i := 1; i <= n; i++ {
		r := models.Recipe{
			Name:        fmt.Sprintf("recipe-%02d", i),
			Description: "tasty",
			UserID:      owner,
			Ingredients: []models.Ingredient{{Name: "salt", Quantity: "1"}},
			Directions:  []models.Direction{{Title: "mix", Description: "mix well"}},
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, f.recipes.Create(context.Background(), &r))
		out = append(out, r)
	}
	return out
}

var errBoom = errors.New("boom")
