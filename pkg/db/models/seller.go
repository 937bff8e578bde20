package models

import "time"

// Seller is an account that lists products on the marketplace.
type Seller struct {
	ID                int64      `gorm:"column:id;primaryKey;autoIncrement"`
	FullName          string     `gorm:"column:full_name;not null"`
	Email             string     `gorm:"column:email;not null;uniqueIndex"`
	Phone             string     `gorm:"column:phone;not null"`
	Password          string     `gorm:"column:password;not null"`
	ResetToken        *string    `gorm:"column:reset_token"`
	ResetTokenExpires *time.Time `gorm:"column:reset_token_expires"`
	CreatedAt         time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}

func (Seller) TableName() string { return "sellers" }
