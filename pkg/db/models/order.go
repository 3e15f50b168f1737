package models

import (
	"time"

	"github.com/oakdonuts/pos-backend/pkg/enums"
)

// Order is the durable record of a completed checkout. TotalCents is the sum
// frozen at checkout time; it never tracks later catalog price changes.
type Order struct {
	TransactionID string            `gorm:"column:transaction_id;primaryKey"`
	Status        enums.OrderStatus `gorm:"column:status;not null;default:'pending'"`
	TotalCents    int64             `gorm:"column:total_cents;not null"`
	Lines         []OrderLine       `gorm:"foreignKey:TransactionID;references:TransactionID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
