package models

import (
	"time"
)

type InventoryItem struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	ProductID     uint      `gorm:"not null;index" json:"product_id"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	MinimumStock  int       `json:"minimum_stock"`
	MaximumStock  int       `json:"maximum_stock"`
	LastRestocked time.Time `json:"last_restocked"`
	CreatedDate   time.Time `json:"created_date"`
	UpdatedDate   time.Time `json:"updated_date"`

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// IsLowStock reports whether the item is at or below its minimum stock level.
func (i *InventoryItem) IsLowStock() bool {
	return i.Quantity <= i.MinimumStock
}
