package orders

import (
	"time"

	"github.com/oakdonuts/pos-backend/pkg/db/models"
	"github.com/oakdonuts/pos-backend/pkg/enums"
	"github.com/oakdonuts/pos-backend/pkg/money"
)

// OrderDTO is the read shape handed to the presentation layer.
type OrderDTO struct {
	TransactionID string
	Status        enums.OrderStatus
	TotalCents    int64
	CreatedAt     time.Time
	Lines         []OrderLineDTO
}

// Total renders the frozen order total as a decimal string.
func (d OrderDTO) Total() string {
	return money.FormatCents(d.TotalCents)
}

// OrderLineDTO carries the line snapshot taken at checkout. Current is the
// catalog's present-day view of the referenced item and is nil when the item
// has since been deleted.
type OrderLineDTO struct {
	ItemID         int64
	Name           string
	Category       string
	UnitPriceCents int64
	Position       int
	Current        *CurrentItem
}

// CurrentItem mirrors the live catalog fields for display.
type CurrentItem struct {
	Name        string
	Description *string
	PriceCents  int64
	Category    string
}

func toOrderDTO(order *models.Order) OrderDTO {
	lines := make([]OrderLineDTO, 0, len(order.Lines))
	for _, line := range order.Lines {
		lines = append(lines, OrderLineDTO{
			ItemID:         line.ItemID,
			Name:           line.Name,
			Category:       line.Category,
			UnitPriceCents: line.UnitPriceCents,
			Position:       line.Position,
		})
	}
	return OrderDTO{
		TransactionID: order.TransactionID,
		Status:        order.Status,
		TotalCents:    order.TotalCents,
		CreatedAt:     order.CreatedAt,
		Lines:         lines,
	}
}
