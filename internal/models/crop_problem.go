package models

import "time"

type ProblemSeverity string

const (
	SeverityLow    ProblemSeverity = "low"
	SeverityMedium ProblemSeverity = "medium"
	SeverityHigh   ProblemSeverity = "high"
)

type ProblemStatus string

const (
	ProblemReported   ProblemStatus = "reported"
	ProblemIdentified ProblemStatus = "identified"
	ProblemTreated    ProblemStatus = "treated"
	ProblemResolved   ProblemStatus = "resolved"
)

// CropProblem is a disease, pest or yield issue reported on a crop.
type CropProblem struct {
	ID             uint            `gorm:"primaryKey"`
	CropID         uint            `gorm:"index;not null"`
	FarmID         uint            `gorm:"index;not null"`
	UserID         uint            `gorm:"not null"`
	ProblemType    string          `gorm:"size:100;not null"` // yellowing, leaf_holes, poor_yield, rot, pest, disease
	Description    string          `gorm:"type:text"`
	PhotoURL       string          `gorm:"size:500"`
	Severity       ProblemSeverity `gorm:"size:20;default:medium"`
	Status         ProblemStatus   `gorm:"size:20;default:reported"`
	TreatmentNotes string          `gorm:"type:text"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
