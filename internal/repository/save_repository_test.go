package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormSaveRepository_AddInserted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormSaveRepository(db)

	mock.ExpectExec(`INSERT INTO saved_recipes .* ON CONFLICT \(user_id, recipe_id\) DO NOTHING`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	added, err := repo.Add(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.True(t, added)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaveRepository_AddExisting(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormSaveRepository(db)

	mock.ExpectExec(`INSERT INTO saved_recipes`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	added, err := repo.Add(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.False(t, added)
}

func TestGormSaveRepository_Remove(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormSaveRepository(db)
	user, recipe := uuid.New(), uuid.New()

	mock.ExpectExec(`DELETE FROM "saved_recipes" WHERE .*user_id = \$1 AND recipe_id = \$2`).
		WithArgs(user, recipe).
		WillReturnResult(sqlmock.NewResult(0, 0))

	removed, err := repo.Remove(context.Background(), user, recipe)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaveRepository_SavedAmong(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormSaveRepository(db)
	user := uuid.New()
	a, b := uuid.New(), uuid.New()

	mock.ExpectQuery(`SELECT "recipe_id" FROM "saved_recipes" WHERE .*user_id = \$1 AND recipe_id IN`).
		WillReturnRows(sqlmock.NewRows([]string{"recipe_id"}).AddRow(b.String()))

	saved, err := repo.SavedAmong(context.Background(), user, []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.False(t, saved[a])
	assert.True(t, saved[b])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormSaveRepository_SavedAmongEmptySkipsQuery(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewGormSaveRepository(db)

	saved, err := repo.SavedAmong(context.Background(), uuid.New(), nil)
	require.NoError(t, err)
	assert.Empty(t, saved)
	assert.NoError(t, mock.ExpectationsWereMet())
}
