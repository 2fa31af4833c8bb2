package model

import (
	"time"
)

// Vendor represents the database model for vendors
type Vendor struct {
	ID        int64     `gorm:"primaryKey;autoIncrement:false"`
	UserID    uint64    `gorm:"not null;index"`
	Name      string    `gorm:"not null;size:255"`
	Balance   int64     `gorm:"not null;default:0"` // Running balance in cents
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	User User `gorm:"foreignKey:UserID;references:ID"`
}

// TableName specifies the table name for Vendor
func (Vendor) TableName() string {
	return "vendors"
}

// User represents the database model for user accounts backing vendors
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for User
func (User) TableName() string {
	return "users"
}
