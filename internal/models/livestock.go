package models

import "time"

type Livestock struct {
	ID                  uint   `gorm:"primaryKey"`
	UserID              uint   `gorm:"index;not null"`
	FarmID              *uint  `gorm:"index"`
	AnimalType          string `gorm:"size:50;not null"` // cattle, goat, sheep, poultry, pig
	Breed               string `gorm:"size:100"`
	Quantity            int    `gorm:"default:1"`
	AgeMonths           *int
	WeightKg            *float64
	HealthStatus        string `gorm:"size:50;default:healthy"`
	LastVaccinationDate *time.Time
	FeedingType         string `gorm:"size:100"`
	Location            string `gorm:"size:200"`
	Notes               string `gorm:"size:500"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// Livestock is both singular and plural; keep the table name as is.
func (Livestock) TableName() string { return "livestock" }
