package catalog

import (
	"time"

	"github.com/oakdonuts/pos-backend/pkg/db/models"
	"github.com/oakdonuts/pos-backend/pkg/money"
)

// ItemDTO is the read shape handed to the presentation layer.
type ItemDTO struct {
	ID          int64
	Name        string
	Description *string
	PriceCents  int64
	Category    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Price renders the item price as a decimal string, e.g. "2.50".
func (d ItemDTO) Price() string {
	return money.FormatCents(d.PriceCents)
}

func toItemDTO(item *models.Item) ItemDTO {
	return ItemDTO{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		PriceCents:  item.PriceCents,
		Category:    item.Category,
		CreatedAt:   item.CreatedAt,
		UpdatedAt:   item.UpdatedAt,
	}
}

func toItemDTOs(items []models.Item) []ItemDTO {
	dtos := make([]ItemDTO, 0, len(items))
	for i := range items {
		dtos = append(dtos, toItemDTO(&items[i]))
	}
	return dtos
}
