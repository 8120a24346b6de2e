package services

import (
	"context"
	"math"
	"testing"

	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/foodhub-backend/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(items []dto.RecipeResponse) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.Name)
	}
	return out
}

func TestListRecipes_PagesOfTwentyFive(t *testing.T) {
	f := newFixture(t)
	f.seedRecipes(t, 25, nil)
	ctx := context.Background()

	page2, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 2, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Len(t, page2.Items, 10)
	assert.True(t, page2.HasMore)
	// newest first: items 11..20 are recipe-15 down to recipe-06
	assert.Equal(t, "recipe-15", page2.Items[0].Name)
	assert.Equal(t, "recipe-06", page2.Items[9].Name)

	page3, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 3, PageSize: 10}, nil)
	require.NoError(t, err)
	assert.Len(t, page3.Items, 5)
	assert.False(t, page3.HasMore)

	page4, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 4, PageSize: 10}, nil)
	require.NoError(t, err)
	assert.Empty(t, page4.Items)
	assert.NotNil(t, page4.Items)
	assert.False(t, page4.HasMore)
}

func TestListRecipes_HasMoreMatchesTotal(t *testing.T) {
	f := newFixture(t)
	f.seedRecipes(t, 17, nil)
	ctx := context.Background()

	for _, search := range []string{"", "recipe-1"} {
		total, err := f.recipes.Count(ctx, repository.RecipeFilter{Search: search})
		require.NoError(t, err)

		for size := 1; size <= 20; size++ {
			for page := 1; page <= 20; page++ {
				res, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: page, PageSize: size, Search: search}, nil)
				require.NoError(t, err)
				assert.Equal(t, int64(page*size) < total, res.HasMore, "search=%q page=%d size=%d", search, page, size)
			}
		}
	}
}

func TestListRecipes_HugePageIsEmpty(t *testing.T) {
	f := newFixture(t)
	f.seedRecipes(t, 3, nil)
	ctx := context.Background()

	for _, q := range []dto.ListQuery{
		{Page: math.MaxInt64/MaxPageSize + 2, PageSize: MaxPageSize},
		{Page: math.MaxInt64, PageSize: 1},
		{Page: math.MaxInt64, PageSize: MaxPageSize},
	} {
		res, err := f.listing.ListRecipes(ctx, q, nil)
		require.NoError(t, err, "%+v", q)
		assert.NotNil(t, res.Items)
		assert.Empty(t, res.Items)
		assert.False(t, res.HasMore)
	}
}

func TestListRecipes_InvalidPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	for _, q := range []dto.ListQuery{
		{Page: 0, PageSize: 10},
		{Page: -1, PageSize: 10},
		{Page: 1, PageSize: 0},
		{Page: 1, PageSize: MaxPageSize + 1},
	} {
		_, err := f.listing.ListRecipes(ctx, q, nil)
		assert.ErrorIs(t, err, ErrValidation, "%+v", q)
	}
}

func TestListRecipes_SearchIsCaseInsensitiveSubstring(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, r := range []models.Recipe{
		{Name: "Creamy Pasta", Description: "quick"},
		{Name: "Soup", Description: "with pasta bits"},
		{Name: "Salad", Description: "fresh"},
	} {
		r := r
		require.NoError(t, f.recipes.Create(ctx, &r))
	}

	res, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 1, PageSize: 10, Search: "PASTA"}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Creamy Pasta"}, names(res.Items))

	res, err = f.listing.ListRecipes(ctx, dto.ListQuery{Page: 1, PageSize: 10, Search: "pasta", IncludeDescription: true}, nil)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Creamy Pasta", "Soup"}, names(res.Items))
}

func TestTrending_IsThirdToFifthNewest(t *testing.T) {
	f := newFixture(t)
	f.seedRecipes(t, 8, nil)

	items, err := f.listing.Trending(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"recipe-06", "recipe-05", "recipe-04"}, names(items))
}

func TestTrending_ShortCatalog(t *testing.T) {
	f := newFixture(t)
	f.seedRecipes(t, 2, nil)

	items, err := f.listing.Trending(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestEnrich_OwnerProjection(t *testing.T) {
	f := newFixture(t)
	alice := f.addUser(t, "Alice")
	f.seedRecipes(t, 1, &alice.ID)
	f.seedRecipes(t, 1, nil)

	res, err := f.listing.ListRecipes(context.Background(), dto.ListQuery{Page: 1, PageSize: 10}, nil)
	require.NoError(t, err)
	require.Len(t, res.Items, 2)

	var owned, orphan dto.RecipeResponse
	for _, it := range res.Items {
		if it.Owner != nil {
			owned = it
		} else {
			orphan = it
		}
	}
	require.NotNil(t, owned.Owner)
	assert.Equal(t, alice.ID, owned.Owner.ID)
	assert.Equal(t, "Alice", owned.Owner.Name)
	assert.Equal(t, alice.ProfileImage, owned.Owner.ProfileImage)
	assert.Nil(t, orphan.Owner)
}

func TestEnrich_DeletedOwnerRendersNull(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := f.addUser(t, "Bob")
	recipes := f.seedRecipes(t, 1, &bob.ID)
	require.NoError(t, f.users.SoftDelete(ctx, bob.ID))

	got, err := f.listing.GetRecipe(ctx, recipes[0].ID, nil)
	require.NoError(t, err)
	assert.Nil(t, got.Owner)
}

func TestEnrich_SavedFlags(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	caller := f.addUser(t, "Carol")
	recipes := f.seedRecipes(t, 3, nil)

	res, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 1, PageSize: 10}, &caller.ID)
	require.NoError(t, err)
	for _, it := range res.Items {
		assert.False(t, it.IsSaved, "no saved set means nothing is saved")
	}

	_, err = f.saves.Add(ctx, caller.ID, recipes[1].ID)
	require.NoError(t, err)

	res, err = f.listing.ListRecipes(ctx, dto.ListQuery{Page: 1, PageSize: 10}, &caller.ID)
	require.NoError(t, err)
	for _, it := range res.Items {
		assert.Equal(t, it.ID == recipes[1].ID, it.IsSaved, it.Name)
	}

	anon, err := f.listing.ListRecipes(ctx, dto.ListQuery{Page: 1, PageSize: 10}, nil)
	require.NoError(t, err)
	for _, it := range anon.Items {
		assert.False(t, it.IsSaved)
	}
}

func TestListOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	dave := f.addUser(t, "Dave")
	other := uuid.New()
	f.seedRecipes(t, 3, &dave.ID)
	f.seedRecipes(t, 4, &other)

	_, err := f.listing.ListOwn(ctx, nil, 1, 10)
	assert.ErrorIs(t, err, ErrUnauthorized)

	res, err := f.listing.ListOwn(ctx, &dave.ID, 1, 2)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.True(t, res.HasMore)
	for _, it := range res.Items {
		require.NotNil(t, it.Owner)
		assert.Equal(t, dave.ID, it.Owner.ID)
	}

	nobody := uuid.New()
	res, err = f.listing.ListOwn(ctx, &nobody, 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
	assert.False(t, res.HasMore)
}

func TestGetRecipe_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.listing.GetRecipe(context.Background(), uuid.New(), nil)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}
