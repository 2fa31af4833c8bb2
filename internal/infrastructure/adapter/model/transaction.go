package model

import (
	"time"
)

// Transaction represents the database model for checkout transactions
type Transaction struct {
	ID            string    `gorm:"primaryKey;size:36"`
	SubTotal      int64     `gorm:"not null"` // Cents
	SalesTax      int64     `gorm:"not null"` // Cents
	Total         int64     `gorm:"not null"` // Cents
	PaymentMethod string    `gorm:"not null;size:10"`
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`

	Items []TransactionItem `gorm:"foreignKey:TransactionID;references:ID"`
}

// TableName specifies the table name for Transaction
func (Transaction) TableName() string {
	return "transactions"
}

// TransactionItem represents the database model for sold lines
type TransactionItem struct {
	ID            string    `gorm:"primaryKey;size:36"`
	TransactionID string    `gorm:"not null;index;size:36"`
	VendorID      int64     `gorm:"not null;index"`
	Description   string    `gorm:"size:255"`
	Price         int64     `gorm:"not null"` // Unit price, cents
	Quantity      int64     `gorm:"not null"`
	Total         int64     `gorm:"not null"` // Cents
	CreatedAt     time.Time `gorm:"not null;index"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for TransactionItem
func (TransactionItem) TableName() string {
	return "transaction_items"
}
