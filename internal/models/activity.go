package models

import "time"

// Activity is a field log entry: labour, sowing, watering, treatment, harvest.
type Activity struct {
	ID           uint  `gorm:"primaryKey"`
	FarmID       uint  `gorm:"index;not null"`
	CropID       *uint `gorm:"index"`
	UserID       *uint
	ActivityType string    `gorm:"size:100;not null"`
	ActivityDate time.Time `gorm:"index"`
	Notes        string    `gorm:"size:1000"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ActivityPhoto struct {
	ID         uint   `gorm:"primaryKey"`
	ActivityID uint   `gorm:"index;not null"`
	ImageURL   string `gorm:"size:500;not null"`
	CreatedAt  time.Time
}
