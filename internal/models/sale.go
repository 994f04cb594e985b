package models

import "time"

type Sale struct {
	ID               uint    `gorm:"primaryKey"`
	HarvestID        *uint   `gorm:"index"`
	FarmID           *uint   `gorm:"index"`
	UserID           *uint   `gorm:"index"`
	ProductName      string  `gorm:"size:200;not null"`
	Quantity         float64 `gorm:"not null"`
	PricePerUnit     float64 `gorm:"not null"`
	Currency         string  `gorm:"size:10;default:CFA"`
	DeliveryLocation string  `gorm:"size:200"`
	Contact          string  `gorm:"size:100"`
	CreatedAt        time.Time
}
