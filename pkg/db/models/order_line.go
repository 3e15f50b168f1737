package models

import "time"

// OrderLine captures the snapshot of one cart line within an order. ItemID is
// a historical reference only; there is deliberately no foreign key to items
// so deleting a catalog item never rewrites order history.
type OrderLine struct {
	ID             int64     `gorm:"column:id;primaryKey;autoIncrement"`
	TransactionID  string    `gorm:"column:transaction_id;not null"`
	ItemID         int64     `gorm:"column:item_id;not null"`
	Name           string    `gorm:"column:name;not null"`
	Category       string    `gorm:"column:category;not null"`
	UnitPriceCents int64     `gorm:"column:unit_price_cents;not null"`
	Position       int       `gorm:"column:position;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;autoCreateTime"`
}
