package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/google/uuid"
)

// In-memory stores. They mirror the Postgres semantics closely enough to run
// the services without a database (tests, local experiments). The cascades
// Postgres runs on account and recipe deletion happen only for stores joined
// with Link.

type MemoryUserRepository struct {
	mu      sync.RWMutex
	users   map[uuid.UUID]models.User
	deleted map[uuid.UUID]bool

	tokens *MemoryRefreshTokenRepository
	saves  *MemorySaveRepository
}

func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[uuid.UUID]models.User),
		deleted: make(map[uuid.UUID]bool),
	}
}

// Link makes SoftDelete also drop the user's refresh tokens and saved entries.
func (r *MemoryUserRepository) Link(tokens *MemoryRefreshTokenRepository, saves *MemorySaveRepository) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens = tokens
	r.saves = saves
}

func (r *MemoryUserRepository) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, u := range r.users {
		if u.Email == user.Email && !r.deleted[id] {
			return ErrDuplicate
		}
	}
	ensureID(&user.ID)
	stamp(&user.CreatedAt, &user.UpdatedAt)
	r.users[user.ID] = *user
	return nil
}

func (r *MemoryUserRepository) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (r *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for id, u := range r.users {
		if u.Email == email && !r.deleted[id] {
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryUserRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var users []models.User
	for _, id := range ids {
		if u, ok := r.users[id]; ok && !r.deleted[id] {
			users = append(users, u)
		}
	}
	return users, nil
}

func (r *MemoryUserRepository) Update(_ context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok || r.deleted[id] {
		return ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			u.Name = v.(string)
		case "password":
			u.Password = v.(string)
		case "verified":
			u.Verified = v.(bool)
		case "profile_image":
			u.ProfileImage = v.(string)
		case "cover_image":
			u.CoverImage = v.(string)
		}
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepository) MarkVerified(ctx context.Context, id uuid.UUID) error {
	return r.Update(ctx, id, map[string]interface{}{"verified": true})
}

func (r *MemoryUserRepository) SoftDelete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok || r.deleted[id] {
		return ErrNotFound
	}
	r.deleted[id] = true
	if r.tokens != nil {
		r.tokens.dropUser(id)
	}
	if r.saves != nil {
		r.saves.dropUser(id)
	}
	return nil
}

// Transaction runs fn on a copy and publishes the copy only when fn succeeds.
func (r *MemoryUserRepository) Transaction(_ context.Context, fn func(UserRepository) error) error {
	r.mu.RLock()
	staged := NewMemoryUserRepository()
	staged.tokens, staged.saves = r.tokens, r.saves
	for id, u := range r.users {
		staged.users[id] = u
	}
	for id := range r.deleted {
		staged.deleted[id] = true
	}
	r.mu.RUnlock()

	if err := fn(staged); err != nil {
		return err
	}

	r.mu.Lock()
	r.users = staged.users
	r.deleted = staged.deleted
	r.mu.Unlock()
	return nil
}

type MemoryRefreshTokenRepository struct {
	mu     sync.Mutex
	tokens map[string]models.RefreshToken
}

func NewMemoryRefreshTokenRepository() *MemoryRefreshTokenRepository {
	return &MemoryRefreshTokenRepository{tokens: make(map[string]models.RefreshToken)}
}

func (r *MemoryRefreshTokenRepository) Create(_ context.Context, token *models.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tokens[token.TokenHash]; ok {
		return ErrDuplicate
	}
	ensureID(&token.ID)
	stamp(&token.CreatedAt, nil)
	r.tokens[token.TokenHash] = *token
	return nil
}

func (r *MemoryRefreshTokenRepository) dropUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for hash, t := range r.tokens {
		if t.UserID == userID {
			delete(r.tokens, hash)
		}
	}
}

func (r *MemoryRefreshTokenRepository) FindActive(_ context.Context, tokenHash string) (*models.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tokens[tokenHash]
	if !ok || t.Revoked {
		return nil, ErrNotFound
	}
	return &t, nil
}

func (r *MemoryRefreshTokenRepository) Revoke(_ context.Context, tokenHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t, ok := r.tokens[tokenHash]; ok {
		t.Revoked = true
		r.tokens[tokenHash] = t
	}
	return nil
}

type MemoryRecipeRepository struct {
	mu      sync.RWMutex
	recipes map[uuid.UUID]models.Recipe
	saves   *MemorySaveRepository
}

func NewMemoryRecipeRepository() *MemoryRecipeRepository {
	return &MemoryRecipeRepository{recipes: make(map[uuid.UUID]models.Recipe)}
}

// Link makes Delete also drop every saved entry pointing at the recipe.
func (r *MemoryRecipeRepository) Link(saves *MemorySaveRepository) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves = saves
}

func (r *MemoryRecipeRepository) Create(_ context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if recipe.PosterID != nil {
		for _, existing := range r.recipes {
			if existing.PosterID != nil && *existing.PosterID == *recipe.PosterID {
				return ErrDuplicate
			}
		}
	}
	ensureID(&recipe.ID)
	stamp(&recipe.CreatedAt, &recipe.UpdatedAt)
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *MemoryRecipeRepository) Update(_ context.Context, recipe *models.Recipe) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.recipes[recipe.ID]; !ok {
		return ErrNotFound
	}
	recipe.UpdatedAt = time.Now().UTC()
	r.recipes[recipe.ID] = *recipe
	return nil
}

func (r *MemoryRecipeRepository) Delete(_ context.Context, id, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	recipe, ok := r.recipes[id]
	if !ok || recipe.UserID == nil || *recipe.UserID != ownerID {
		return ErrNotFound
	}
	delete(r.recipes, id)
	if r.saves != nil {
		r.saves.dropRecipe(id)
	}
	return nil
}

func (r *MemoryRecipeRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	recipe, ok := r.recipes[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &recipe, nil
}

func (r *MemoryRecipeRepository) FindByIDs(_ context.Context, ids []uuid.UUID) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var recipes []models.Recipe
	seen := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		if recipe, ok := r.recipes[id]; ok && !seen[id] {
			seen[id] = true
			recipes = append(recipes, recipe)
		}
	}
	sortNewestFirst(recipes)
	return recipes, nil
}

func (r *MemoryRecipeRepository) FindByPoster(_ context.Context, posterID uuid.UUID) (*models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, recipe := range r.recipes {
		if recipe.PosterID != nil && *recipe.PosterID == posterID {
			return &recipe, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryRecipeRepository) Count(_ context.Context, filter RecipeFilter) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.matching(filter))), nil
}

func (r *MemoryRecipeRepository) Find(_ context.Context, filter RecipeFilter, offset, limit int) ([]models.Recipe, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := r.matching(filter)
	sortNewestFirst(all)
	if offset < 0 || limit <= 0 || offset >= len(all) {
		return nil, nil
	}
	end := len(all)
	if limit < end-offset {
		end = offset + limit
	}
	return all[offset:end], nil
}

func (r *MemoryRecipeRepository) matching(f RecipeFilter) []models.Recipe {
	needle := strings.ToLower(f.Search)
	var out []models.Recipe
	for _, recipe := range r.recipes {
		if f.OwnerID != nil && (recipe.UserID == nil || *recipe.UserID != *f.OwnerID) {
			continue
		}
		if needle != "" {
			hit := strings.Contains(strings.ToLower(recipe.Name), needle)
			if !hit && f.IncludeDescription {
				hit = strings.Contains(strings.ToLower(recipe.Description), needle)
			}
			if !hit {
				continue
			}
		}
		out = append(out, recipe)
	}
	return out
}

func sortNewestFirst(recipes []models.Recipe) {
	sort.Slice(recipes, func(i, j int) bool {
		if !recipes[i].CreatedAt.Equal(recipes[j].CreatedAt) {
			return recipes[i].CreatedAt.After(recipes[j].CreatedAt)
		}
		return recipes[i].ID.String() > recipes[j].ID.String()
	})
}

type MemorySaveRepository struct {
	mu   sync.Mutex
	sets map[uuid.UUID][]uuid.UUID
}

func NewMemorySaveRepository() *MemorySaveRepository {
	return &MemorySaveRepository{sets: make(map[uuid.UUID][]uuid.UUID)}
}

func (r *MemorySaveRepository) Add(_ context.Context, userID, recipeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, id := range r.sets[userID] {
		if id == recipeID {
			return false, nil
		}
	}
	r.sets[userID] = append(r.sets[userID], recipeID)
	return true, nil
}

func (r *MemorySaveRepository) Remove(_ context.Context, userID, recipeID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.sets[userID]
	for i, id := range set {
		if id == recipeID {
			r.sets[userID] = append(set[:i:i], set[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *MemorySaveRepository) dropUser(userID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sets, userID)
}

func (r *MemorySaveRepository) dropRecipe(recipeID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for userID, set := range r.sets {
		kept := set[:0:0]
		for _, id := range set {
			if id != recipeID {
				kept = append(kept, id)
			}
		}
		r.sets[userID] = kept
	}
}

func (r *MemorySaveRepository) RecipeIDs(_ context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uuid.UUID(nil), r.sets[userID]...), nil
}

func (r *MemorySaveRepository) SavedAmong(_ context.Context, userID uuid.UUID, recipeIDs []uuid.UUID) (map[uuid.UUID]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	members := make(map[uuid.UUID]bool, len(r.sets[userID]))
	for _, id := range r.sets[userID] {
		members[id] = true
	}
	saved := make(map[uuid.UUID]bool, len(recipeIDs))
	for _, id := range recipeIDs {
		if members[id] {
			saved[id] = true
		}
	}
	return saved, nil
}

type MemoryPosterRepository struct {
	mu      sync.RWMutex
	posters []models.Poster
}

func NewMemoryPosterRepository() *MemoryPosterRepository {
	return &MemoryPosterRepository{}
}

func (r *MemoryPosterRepository) Create(_ context.Context, poster *models.Poster) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&poster.ID)
	stamp(&poster.CreatedAt, &poster.UpdatedAt)
	r.posters = append([]models.Poster{*poster}, r.posters...)
	return nil
}

func (r *MemoryPosterRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Poster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.posters {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryPosterRepository) List(_ context.Context) ([]models.Poster, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Poster(nil), r.posters...), nil
}

type MemoryArticleRepository struct {
	mu       sync.RWMutex
	articles []models.Article
}

func NewMemoryArticleRepository() *MemoryArticleRepository {
	return &MemoryArticleRepository{}
}

func (r *MemoryArticleRepository) Create(_ context.Context, article *models.Article) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	ensureID(&article.ID)
	stamp(&article.CreatedAt, &article.UpdatedAt)
	r.articles = append([]models.Article{*article}, r.articles...)
	return nil
}

func (r *MemoryArticleRepository) FindByID(_ context.Context, id uuid.UUID) (*models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, a := range r.articles {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryArticleRepository) List(_ context.Context) ([]models.Article, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]models.Article(nil), r.articles...), nil
}

var (
	_ UserRepository         = (*MemoryUserRepository)(nil)
	_ RefreshTokenRepository = (*MemoryRefreshTokenRepository)(nil)
	_ RecipeRepository       = (*MemoryRecipeRepository)(nil)
	_ SaveRepository         = (*MemorySaveRepository)(nil)
	_ PosterRepository       = (*MemoryPosterRepository)(nil)
	_ ArticleRepository      = (*MemoryArticleRepository)(nil)

	_ UserRepository         = (*GormUserRepository)(nil)
	_ RefreshTokenRepository = (*GormRefreshTokenRepository)(nil)
	_ RecipeRepository       = (*GormRecipeRepository)(nil)
	_ SaveRepository         = (*GormSaveRepository)(nil)
	_ PosterRepository       = (*GormPosterRepository)(nil)
	_ ArticleRepository      = (*GormArticleRepository)(nil)
)
