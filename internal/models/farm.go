package models

import "time"

type Farm struct {
	ID           uint   `gorm:"primaryKey"`
	UserID       uint   `gorm:"index;not null"`
	Name         string `gorm:"size:100;not null"`
	Location     string `gorm:"size:200"`
	SizeHectares *float64
	SoilType     string `gorm:"size:50"` // sandy, loamy, clay
	ImageURL     string `gorm:"size:500"`
	Latitude     *float64
	Longitude    *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type FarmPhoto struct {
	ID        uint   `gorm:"primaryKey"`
	FarmID    uint   `gorm:"index;not null"`
	ImageURL  string `gorm:"size:500;not null"`
	CreatedAt time.Time
}
