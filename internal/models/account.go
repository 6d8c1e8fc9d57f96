package models

import "time"

type AccountType string

const (
	AccountTypeVendor AccountType = "vendor" // supplier we buy from
	AccountTypeClient AccountType = "client" // project owner we bill
)

// Account: a vendor or client contact record referenced by purchase orders.
type Account struct {
	ID          uint        `gorm:"primaryKey"`
	Type        AccountType `gorm:"size:20;not null"`
	Name        string      `gorm:"size:100;not null"`
	ContactName string      `gorm:"size:100"`
	Phone       string      `gorm:"size:30"`
	Email       string      `gorm:"size:100"`
	Address     string      `gorm:"size:255"`
	GSTNumber   string      `gorm:"size:30"` // tax registration (optional)
	IsActive    bool        `gorm:"default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
