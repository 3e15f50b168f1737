package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/oakdonuts/pos-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
	})
	require.NoError(t, err)

	items := `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT,
  price_cents INTEGER NOT NULL CHECK (price_cents >= 0),
  category TEXT NOT NULL,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(items).Error)
	return db
}

func newItem(t *testing.T, repo *Repository, name, category string, cents int64) *models.Item {
	t.Helper()

	created, err := repo.CreateItem(context.Background(), &models.Item{
		Name:       name,
		PriceCents: cents,
		Category:   category,
	})
	require.NoError(t, err)
	return created
}

func TestRepositoryCreateItemAssignsIncreasingIDs(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	first := newItem(t, repo, "Classic Glazed", "glaze", 250)
	second := newItem(t, repo, "Chocolate Cake", "cake", 300)

	require.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
}

func TestRepositoryIDsAreNeverReused(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	ctx := context.Background()

	first := newItem(t, repo, "Classic Glazed", "glaze", 250)
	second := newItem(t, repo, "Chocolate Cake", "cake", 300)
	assert.Greater(t, second.ID, first.ID)
	require.NoError(t, repo.DeleteItem(ctx, second.ID))

	third := newItem(t, repo, "Boston Cream", "specialty", 350)
	assert.Greater(t, third.ID, second.ID)
}

func TestRepositoryFindByIDMissing(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	_, err := repo.FindByID(context.Background(), 404)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListItemsOrdersByID(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	newItem(t, repo, "Classic Glazed", "glaze", 250)
	newItem(t, repo, "Chocolate Cake", "cake", 300)
	newItem(t, repo, "Boston Cream", "specialty", 350)

	rows, err := repo.ListItems(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 3)
	for i := 1; i < len(rows); i++ {
		assert.Greater(t, rows[i].ID, rows[i-1].ID)
	}
}

func TestRepositoryListItemsByCategory(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))

	newItem(t, repo, "Classic Glazed", "glaze", 250)
	newItem(t, repo, "Maple Glazed", "glaze", 275)
	newItem(t, repo, "Chocolate Cake", "cake", 300)

	rows, err := repo.ListItemsByCategory(context.Background(), "glaze")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, "glaze", row.Category)
	}

	empty, err := repo.ListItemsByCategory(context.Background(), "savory")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestRepositoryUpdateItemPersistsFields(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	ctx := context.Background()

	item := newItem(t, repo, "Classic Glazed", "glaze", 250)

	item.Name = "Honey Glazed"
	item.PriceCents = 275
	_, err := repo.UpdateItem(ctx, item)
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Honey Glazed", found.Name)
	assert.Equal(t, int64(275), found.PriceCents)
}

func TestRepositoryDeleteItem(t *testing.T) {
	repo := NewRepository(setupCatalogTestDB(t))
	ctx := context.Background()

	item := newItem(t, repo, "Classic Glazed", "glaze", 250)
	require.NoError(t, repo.DeleteItem(ctx, item.ID))

	_, err := repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	assert.ErrorIs(t, repo.DeleteItem(ctx, item.ID), gorm.ErrRecordNotFound)
}
