package models

import "time"

type Harvest struct {
	ID                uint  `gorm:"primaryKey"`
	FarmID            uint  `gorm:"index;not null"`
	CropID            *uint `gorm:"index"`
	EstimatedQuantity *float64
	ActualQuantity    *float64
	HarvestDate       time.Time `gorm:"index"`
	Notes             string    `gorm:"size:1000"`
	CreatedAt         time.Time
}
