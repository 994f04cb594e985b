package models

import "time"

type UserRole string

const (
	RoleFarmer           UserRole = "farmer"
	RoleLivestockBreeder UserRole = "livestock_breeder"
	RoleBuyer            UserRole = "buyer"
	RoleSeller           UserRole = "seller"
)

type User struct {
	ID           uint     `gorm:"primaryKey"`
	Name         string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:100;uniqueIndex;not null"`
	Phone        *string  `gorm:"size:20;uniqueIndex"`
	PasswordHash string   `gorm:"size:255;not null"`
	Role         UserRole `gorm:"size:50;not null"`
	Region       string   `gorm:"size:100"`
	Village      string   `gorm:"size:100"`
	ProfileImage string   `gorm:"size:500"`
	IsActive     bool     `gorm:"default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
