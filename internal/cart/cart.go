// Package cart holds the session's pre-checkout selection. The cart is an
// ordered multiset of catalog item references: duplicates are allowed, order
// is preserved, and nothing is persisted.
package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/oakdonuts/pos-backend/pkg/db/models"
	pkgerrors "github.com/oakdonuts/pos-backend/pkg/errors"
	"github.com/oakdonuts/pos-backend/pkg/money"
	"gorm.io/gorm"
)

type itemLoader interface {
	FindByID(ctx context.Context, id int64) (*models.Item, error)
}

// Line is one selected catalog reference.
type Line struct {
	ItemID  int64
	AddedAt time.Time
}

// Cart is owned by the active session. The mutex keeps line reads and
// mutations linearizable if a host ever drives it from more than one
// goroutine.
type Cart struct {
	mu    sync.Mutex
	items itemLoader
	lines []Line
}

// New builds an empty cart backed by the provided catalog loader.
func New(items itemLoader) (*Cart, error) {
	if items == nil {
		return nil, fmt.Errorf("item loader required")
	}
	return &Cart{items: items}, nil
}

// Add appends a reference to the given catalog item. The item must exist at
// selection time.
func (c *Cart) Add(ctx context.Context, itemID int64) error {
	if _, err := c.items.FindByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = append(c.lines, Line{ItemID: itemID, AddedAt: time.Now().UTC()})
	return nil
}

// Remove drops the line at the given position.
func (c *Cart) Remove(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if index < 0 || index >= len(c.lines) {
		return pkgerrors.New(pkgerrors.CodeIndexOutOfRange, "no cart line at that position")
	}
	c.lines = append(c.lines[:index], c.lines[index+1:]...)
	return nil
}

// Lines returns a copy of the current lines for display.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot := make([]Line, len(c.lines))
	copy(snapshot, c.lines)
	return snapshot
}

// Len reports the number of lines.
func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines)
}

// Total sums the current catalog prices of all lines. Unlike a stored order's
// frozen total this always reflects the catalog as it is now; a line whose
// item has since been deleted makes the total unresolvable.
func (c *Cart) Total(ctx context.Context) (int64, error) {
	lines := c.Lines()

	prices := make([]int64, 0, len(lines))
	for _, line := range lines {
		item, err := c.items.FindByID(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, pkgerrors.New(pkgerrors.CodeNotFound, "item no longer in catalog").
					WithDetails(map[string]int64{"item_id": line.ItemID})
			}
			return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load catalog item")
		}
		prices = append(prices, item.PriceCents)
	}
	return money.SumCents(prices...), nil
}

// Clear empties the cart. Checkout calls this after a successful write.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
}
