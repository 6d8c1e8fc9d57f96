package models

import "time"

// Catalog reference data for purchase-order line items. The four dependent
// collections (model, brand, type, item name) carry the category NAME, not
// the category id. The upstream data was modeled that way and existing rows
// must keep round-tripping; filtering by name is isolated in the catalog
// package so a future switch to id matching only touches one place.

type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:100;not null;unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogModel struct {
	ID        uint   `gorm:"primaryKey"`
	Model     string `gorm:"size:100;not null"`
	Category  string `gorm:"size:100;index"` // category name (denormalized)
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogBrand struct {
	ID        uint   `gorm:"primaryKey"`
	Brand     string `gorm:"size:100;not null"`
	Category  string `gorm:"size:100;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogType struct {
	ID        uint   `gorm:"primaryKey"`
	Type      string `gorm:"size:100;not null"`
	Category  string `gorm:"size:100;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CatalogItemName struct {
	ID        uint   `gorm:"primaryKey"`
	ItemName  string `gorm:"size:150;not null"`
	Category  string `gorm:"size:100;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
