package models

import "time"

type CropStatus string

const (
	CropGrowing   CropStatus = "growing"
	CropHarvested CropStatus = "harvested"
	CropFailed    CropStatus = "failed"
)

type Crop struct {
	ID                  uint   `gorm:"primaryKey"`
	FarmID              uint   `gorm:"index;not null"`
	CropName            string `gorm:"size:100;not null"`
	PlantedDate         *time.Time
	ExpectedHarvestDate *time.Time
	QuantityPlanted     *float64 // kg
	ExpectedYield       *float64
	Status              CropStatus `gorm:"size:50;default:growing"`
	Notes               string     `gorm:"size:500"`
	ImageURL            string     `gorm:"size:500"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
