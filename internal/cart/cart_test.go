package cart

import (
	"context"
	"testing"

	"github.com/oakdonuts/pos-backend/pkg/db/models"
	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubLoader struct {
	items map[int64]*models.Item
}

func (s *stubLoader) FindByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return item, nil
}

func newTestCart(t *testing.T) (*Cart, *stubLoader) {
	t.Helper()

	loader := &stubLoader{items: map[int64]*models.Item{
		1: {ID: 1, Name: "Classic Glazed", PriceCents: 250, Category: "glaze"},
		2: {ID: 2, Name: "Chocolate Cake", PriceCents: 300, Category: "cake"},
	}}
	c, err := New(loader)
	require.NoError(t, err)
	return c, loader
}

func TestNewRequiresLoader(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)
}

func TestAddUnknownItem(t *testing.T) {
	c, _ := newTestCart(t)

	err := c.Add(context.Background(), 404)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
	assert.Zero(t, c.Len())
}

func TestAddKeepsDuplicatesAndOrder(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1))
	require.NoError(t, c.Add(ctx, 2))
	require.NoError(t, c.Add(ctx, 1))

	lines := c.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, int64(1), lines[0].ItemID)
	assert.Equal(t, int64(2), lines[1].ItemID)
	assert.Equal(t, int64(1), lines[2].ItemID)
}

func TestRemoveOutOfRange(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.Add(context.Background(), 1))

	assert.True(t, pkgerrors.HasCode(c.Remove(-1), pkgerrors.CodeIndexOutOfRange))
	assert.True(t, pkgerrors.HasCode(c.Remove(1), pkgerrors.CodeIndexOutOfRange))
	assert.Equal(t, 1, c.Len())
}

func TestRemoveDropsOnlyOneOccurrence(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1))
	require.NoError(t, c.Add(ctx, 2))
	require.NoError(t, c.Add(ctx, 1))

	require.NoError(t, c.Remove(1))

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, int64(1), lines[0].ItemID)
	assert.Equal(t, int64(1), lines[1].ItemID)
}

func TestRemoveOnEmptyCart(t *testing.T) {
	c, _ := newTestCart(t)
	assert.True(t, pkgerrors.HasCode(c.Remove(0), pkgerrors.CodeIndexOutOfRange))
}

func TestLinesReturnsCopy(t *testing.T) {
	c, _ := newTestCart(t)
	require.NoError(t, c.Add(context.Background(), 1))

	lines := c.Lines()
	lines[0].ItemID = 999

	assert.Equal(t, int64(1), c.Lines()[0].ItemID)
}

func TestTotalTracksCurrentPrices(t *testing.T) {
	c, loader := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1))
	require.NoError(t, c.Add(ctx, 1))
	require.NoError(t, c.Add(ctx, 2))

	total, err := c.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(800), total)

	// A price change after the lines were added shows up in the next total.
	loader.items[1].PriceCents = 275

	total, err = c.Total(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(850), total)
}

func TestTotalFailsWhenItemDeleted(t *testing.T) {
	c, loader := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1))
	delete(loader.items, 1)

	_, err := c.Total(ctx)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestTotalOfEmptyCartIsZero(t *testing.T) {
	c, _ := newTestCart(t)

	total, err := c.Total(context.Background())
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestClear(t *testing.T) {
	c, _ := newTestCart(t)
	ctx := context.Background()

	require.NoError(t, c.Add(ctx, 1))
	require.NoError(t, c.Add(ctx, 2))

	c.Clear()
	assert.Zero(t, c.Len())
	assert.Empty(t, c.Lines())
}
