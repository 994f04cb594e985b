package models

import "time"

// FarmProfile is the public face of a farm in the farm network.
type FarmProfile struct {
	ID             uint   `gorm:"primaryKey"`
	FarmID         uint   `gorm:"uniqueIndex;not null"`
	UserID         uint   `gorm:"index;not null"`
	IsPublic       bool   `gorm:"not null"`
	Description    string `gorm:"type:text"`
	Specialties    string `gorm:"size:500"` // comma separated: "tomate,oignon"
	TotalFollowers int    `gorm:"default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type PostType string

const (
	PostCropUpdate    PostType = "crop_update"
	PostHarvestResult PostType = "harvest_result"
	PostProblemReport PostType = "problem_report"
	PostTip           PostType = "tip"
)

type FarmPost struct {
	ID          uint   `gorm:"primaryKey"`
	FarmID      uint   `gorm:"index;not null"`
	UserID      uint   `gorm:"index;not null"`
	CropID      *uint
	Title       string    `gorm:"size:200;not null"`
	Description string    `gorm:"type:text"`
	PhotoURL    string    `gorm:"size:500"`
	PostType    PostType  `gorm:"size:50;default:crop_update"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// FarmFollowing is the legacy farm-level follow edge. New clients follow users
// through UserFollowing.
type FarmFollowing struct {
	ID         uint `gorm:"primaryKey"`
	FollowerID uint `gorm:"not null;uniqueIndex:idx_farm_following_pair"`
	FarmID     uint `gorm:"not null;uniqueIndex:idx_farm_following_pair;index"`
	CreatedAt  time.Time
}

func (FarmFollowing) TableName() string { return "farm_following" }

type UserFollowing struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_user_following_pair"`
	FollowingID uint `gorm:"not null;uniqueIndex:idx_user_following_pair;index"`
	CreatedAt   time.Time
}

func (UserFollowing) TableName() string { return "user_following" }
