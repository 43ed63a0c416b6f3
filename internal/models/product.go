package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	Name        string          `gorm:"size:100;not null" json:"name"`
	Description string          `gorm:"size:500" json:"description"`
	SKU         string          `gorm:"size:50;uniqueIndex;not null" json:"sku"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"price"`
	CategoryID  uint            `gorm:"not null;index" json:"category_id"`
	SupplierID  uint            `gorm:"not null;index" json:"supplier_id"`
	CreatedDate time.Time       `json:"created_date"`
	UpdatedDate time.Time       `json:"updated_date"`

	Category       *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Supplier       *Supplier       `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
	InventoryItems []InventoryItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"inventory_items,omitempty"`
	OrderItems     []OrderItem     `gorm:"foreignKey:ProductID;constraint:OnDelete:RESTRICT" json:"-"`
}
