package models

import "time"

type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
)

type AuditLog struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time

	// Acting user, when the request carried one.
	UserID *uint `gorm:"index"`

	// e.g. "farm", "activity", "crop_problem", "livestock"
	EntityType string `gorm:"size:50;index"`
	EntityID   uint   `gorm:"index"`

	Action      AuditAction `gorm:"size:20"`
	Description string      `gorm:"size:255"`

	// JSON snapshot of the row (and removed children) before the change.
	BeforeData string `gorm:"type:text"`
}

// All lists every model migrated at startup.
func All() []any {
	return []any{
		&User{},
		&Farm{},
		&FarmPhoto{},
		&Crop{},
		&Livestock{},
		&MarketPrice{},
		&Activity{},
		&ActivityPhoto{},
		&Harvest{},
		&Sale{},
		&CropProblem{},
		&FarmProfile{},
		&FarmPost{},
		&FarmFollowing{},
		&UserFollowing{},
		&AuditLog{},
	}
}
