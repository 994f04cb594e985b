package cropproblem

import (
	"fmt"
	"strings"
	"time"

	"mbaymi-backend/internal/audit"
	"mbaymi-backend/internal/httperr"
	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/request"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// -------------------------
// Request/Response Types
// -------------------------

type ReportRequest struct {
	CropID      uint   `json:"crop_id" validate:"required"`
	FarmID      uint   `json:"farm_id" validate:"required"`
	UserID      uint   `json:"user_id" validate:"required"`
	ProblemType string `json:"problem_type" validate:"required,max=100"`
	Description string `json:"description"`
	PhotoURL    string `json:"photo_url" validate:"max=500"`
	Severity    string `json:"severity" validate:"omitempty,oneof=low medium high"`
}

type StatusRequest struct {
	Status         string  `json:"status" validate:"required,oneof=reported identified treated resolved"`
	TreatmentNotes *string `json:"treatment_notes"`
}

type ProblemResponse struct {
	ID             uint                   `json:"id"`
	CropID         uint                   `json:"crop_id"`
	FarmID         uint                   `json:"farm_id"`
	UserID         uint                   `json:"user_id"`
	ProblemType    string                 `json:"problem_type"`
	Description    string                 `json:"description"`
	PhotoURL       string                 `json:"photo_url"`
	Severity       models.ProblemSeverity `json:"severity"`
	Status         models.ProblemStatus   `json:"status"`
	TreatmentNotes string                 `json:"treatment_notes"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
}

type ProblemsResponse struct {
	Count    int               `json:"count"`
	Problems []ProblemResponse `json:"problems"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func toResponse(p models.CropProblem) ProblemResponse {
	return ProblemResponse{
		ID:             p.ID,
		CropID:         p.CropID,
		FarmID:         p.FarmID,
		UserID:         p.UserID,
		ProblemType:    p.ProblemType,
		Description:    p.Description,
		PhotoURL:       p.PhotoURL,
		Severity:       p.Severity,
		Status:         p.Status,
		TreatmentNotes: p.TreatmentNotes,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// POST /api/crop-problems
func ReportProblemHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ReportRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var n int64
		if err := db.Model(&models.Crop{}).Where("id = ? AND farm_id = ?", body.CropID, body.FarmID).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			return fiber.NewError(fiber.StatusNotFound, "Culture non trouvée")
		}

		problem := models.CropProblem{
			CropID:      body.CropID,
			FarmID:      body.FarmID,
			UserID:      body.UserID,
			ProblemType: strings.TrimSpace(body.ProblemType),
			Description: body.Description,
			PhotoURL:    body.PhotoURL,
			Severity:    models.ProblemSeverity(body.Severity),
			Status:      models.ProblemReported,
		}
		if problem.Severity == "" {
			problem.Severity = models.SeverityMedium
		}
		if err := db.Create(&problem).Error; err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(toResponse(problem))
	}
}

func list(c *fiber.Ctx, db *gorm.DB, column, param string) error {
	id, err := request.ParamID(c, param)
	if err != nil {
		return err
	}
	var items []models.CropProblem
	if err := db.Where(column+" = ?", id).Order("created_at DESC").Order("id DESC").Find(&items).Error; err != nil {
		return err
	}
	resp := ProblemsResponse{Count: len(items), Problems: make([]ProblemResponse, 0, len(items))}
	for _, p := range items {
		resp.Problems = append(resp.Problems, toResponse(p))
	}
	return c.JSON(resp)
}

// GET /api/crop-problems/crop/:crop_id
func ListCropProblemsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return list(c, db, "crop_id", "crop_id")
	}
}

// GET /api/crop-problems/farm/:farm_id
func ListFarmProblemsHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return list(c, db, "farm_id", "farm_id")
	}
}

// PUT /api/crop-problems/:id/status
func UpdateStatusHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		var body StatusRequest
		if err := request.Bind(c, &body); err != nil {
			return err
		}

		var problem models.CropProblem
		if err := db.First(&problem, id).Error; err != nil {
			return httperr.NotFound(err, "Problème non trouvé")
		}

		problem.Status = models.ProblemStatus(body.Status)
		if body.TreatmentNotes != nil && strings.TrimSpace(*body.TreatmentNotes) != "" {
			problem.TreatmentNotes = *body.TreatmentNotes
		}
		if err := db.Save(&problem).Error; err != nil {
			return err
		}
		return c.JSON(toResponse(problem))
	}
}

// DELETE /api/crop-problems/:id
func DeleteProblemHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := request.ParamID(c, "id")
		if err != nil {
			return err
		}
		actor := audit.Actor(c)

		err = db.Transaction(func(tx *gorm.DB) error {
			var problem models.CropProblem
			if err := tx.First(&problem, id).Error; err != nil {
				return httperr.NotFound(err, "Problème non trouvé")
			}
			if err := tx.Delete(&problem).Error; err != nil {
				return err
			}
			return audit.WriteLog(tx, audit.LogOptions{
				UserID:      actor,
				EntityType:  "crop_problem",
				EntityID:    problem.ID,
				Action:      models.AuditActionDelete,
				Description: fmt.Sprintf("Crop problem deleted: %s", problem.ProblemType),
				Before:      toResponse(problem),
			})
		})
		if err != nil {
			return err
		}
		return c.JSON(MessageResponse{Message: "Problème supprimé"})
	}
}
