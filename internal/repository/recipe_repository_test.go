package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLikePattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%pasta%", likePattern("pasta"))
	assert.Equal(t, `%50\%%`, likePattern("50%"))
	assert.Equal(t, `%a\_b%`, likePattern("a_b"))
	assert.Equal(t, `%c:\\d%`, likePattern(`c:\d`))
}

func TestGormRecipeRepository_CountNameOnly(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes" WHERE name ILIKE \$1`).
		WithArgs("%pasta%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.Count(context.Background(), RecipeFilter{Search: "pasta"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_CountKeepsSurroundingSpaces(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes" WHERE name ILIKE \$1`).
		WithArgs("% pie%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	total, err := repo.Count(context.Background(), RecipeFilter{Search: " pie"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_CountWithDescription(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes" WHERE .*name ILIKE \$1 OR description ILIKE \$2`).
		WithArgs("%soup%", "%soup%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	total, err := repo.Count(context.Background(), RecipeFilter{Search: "soup", IncludeDescription: true})
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_FindOrdersNewestFirst(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	id := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "recipes" .*ORDER BY created_at DESC, id DESC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(id.String(), "Ramen", time.Now()))

	recipes, err := repo.Find(context.Background(), RecipeFilter{}, 10, 10)
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, id, recipes[0].ID)
	assert.Equal(t, "Ramen", recipes[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "recipes" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRecipeRepository_FindByIDsEmpty(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	recipes, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, recipes)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_DeleteRemovesSaves(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)
	id, owner := uuid.New(), uuid.New()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "recipes" SET "deleted_at"=\$1 WHERE .*id = \$2 AND user_id = \$3`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "saved_recipes" WHERE recipe_id = \$1`).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), id, owner))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_DeleteNotOwned(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "recipes" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormRecipeRepository_CountError(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormRecipeRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "recipes"`).
		WillReturnError(errors.New("db down"))

	_, err := repo.Count(context.Background(), RecipeFilter{})
	assert.Error(t, err)
}
