package models

import "time"

type MarketPrice struct {
	ID          uint   `gorm:"primaryKey"`
	ProductName string `gorm:"size:100;index;not null"`
	Region      string `gorm:"size:100;index;not null"`
	PricePerKg  float64
	Currency    string    `gorm:"size:10;default:CFA"`
	PriceDate   time.Time `gorm:"index"`
	Source      string    `gorm:"size:100"`
	CreatedAt   time.Time
}
