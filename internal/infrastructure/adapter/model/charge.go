package model

import (
	"time"
)

// BoothRentalCharge represents the database model for booth rental charges
type BoothRentalCharge struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	VendorID  int64     `gorm:"not null;index:idx_booth_vendor_period,priority:1"`
	Amount    int64     `gorm:"not null"` // Cents
	Year      int       `gorm:"not null;index:idx_booth_vendor_period,priority:2"`
	Month     int       `gorm:"not null;index:idx_booth_vendor_period,priority:3"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for BoothRentalCharge
func (BoothRentalCharge) TableName() string {
	return "booth_rental_charges"
}

// VendorPayment represents the database model for payouts to vendors
type VendorPayment struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement"`
	VendorID    int64     `gorm:"not null;index:idx_payment_vendor_period,priority:1"`
	Amount      int64     `gorm:"not null"` // Cents
	Year        int       `gorm:"not null;index:idx_payment_vendor_period,priority:2"`
	Month       int       `gorm:"not null;index:idx_payment_vendor_period,priority:3"`
	Description string    `gorm:"size:255"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName specifies the table name for VendorPayment
func (VendorPayment) TableName() string {
	return "vendor_payments"
}

// BalancePayment represents the database model for manual balance settlements
type BalancePayment struct {
	ID            uint64    `gorm:"primaryKey;autoIncrement"`
	VendorID      int64     `gorm:"not null;index"`
	Amount        int64     `gorm:"not null"` // Cents
	PaymentDate   time.Time `gorm:"not null;index"`
	PaymentMethod string    `gorm:"not null;size:10"`
	Description   string    `gorm:"size:255"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName specifies the table name for BalancePayment
func (BalancePayment) TableName() string {
	return "balance_payments"
}

// Setting represents the database model for key/value configuration
type Setting struct {
	Key       string    `gorm:"primaryKey;size:64"`
	Value     string    `gorm:"not null;size:255"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}
