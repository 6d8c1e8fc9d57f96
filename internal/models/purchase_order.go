package models

import "time"

type PurchaseOrderStatus string

const (
	POStatusDraft     PurchaseOrderStatus = "draft"
	POStatusSubmitted PurchaseOrderStatus = "submitted"
	POStatusApproved  PurchaseOrderStatus = "approved"
	POStatusCancelled PurchaseOrderStatus = "cancelled"
)

type PurchaseOrder struct {
	ID           uint                `gorm:"primaryKey"`
	Reference    string              `gorm:"size:40;uniqueIndex;not null"` // generated PO number
	VendorID     *uint               `gorm:"index"`
	Vendor       *Account            `gorm:"foreignKey:VendorID"`
	ClientID     *uint               `gorm:"index"`
	Client       *Account            `gorm:"foreignKey:ClientID"`
	SiteIncharge string              `gorm:"size:100"`
	OrderDate    time.Time           `gorm:"index;not null"`
	Status       PurchaseOrderStatus `gorm:"size:20;not null;default:draft"`
	TotalAmount  float64             `gorm:"not null;default:0"`
	Note         string              `gorm:"size:255"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Items []PurchaseOrderItem `gorm:"foreignKey:PurchaseOrderID;constraint:OnDelete:CASCADE"`
}

// PurchaseOrderItem: one committed line. ItemID is the only required foreign
// key; the others are nullable. Display names are denormalized alongside the
// ids so a stored order renders without re-joining five catalog tables.
type PurchaseOrderItem struct {
	ID              uint `gorm:"primaryKey"`
	PurchaseOrderID uint `gorm:"index;not null"`

	ItemID     uint  `gorm:"index;not null"`
	CategoryID *uint `gorm:"index"`
	ModelID    *uint
	BrandID    *uint
	TypeID     *uint

	Item     string `gorm:"size:150;not null"`
	Category string `gorm:"size:100"`
	Model    string `gorm:"size:100"`
	Brand    string `gorm:"size:100"`
	Type     string `gorm:"size:100"`

	Quantity int     `gorm:"not null;default:1"`
	Amount   float64 `gorm:"not null;default:0"`
	Position int     `gorm:"not null;default:0"` // ordering within the PO

	CreatedAt time.Time
	UpdatedAt time.Time
}
