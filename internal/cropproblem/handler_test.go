package cropproblem

import (
	"fmt"
	"net/http"
	"testing"

	"mbaymi-backend/internal/models"
	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCropProblemFlow(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	g := app.Group("/api/crop-problems")
	g.Post("/", ReportProblemHandler(db))
	g.Get("/crop/:crop_id", ListCropProblemsHandler(db))
	g.Get("/farm/:farm_id", ListFarmProblemsHandler(db))
	g.Put("/:id/status", UpdateStatusHandler(db))
	g.Delete("/:id", DeleteProblemHandler(db))

	owner := testutil.CreateUser(t, db, "Aminata")
	farm := testutil.CreateFarm(t, db, owner.ID, "Ferme")
	crop := testutil.CreateCrop(t, db, farm.ID, "Tomate")

	code := testutil.Do(t, app, http.MethodPost, "/api/crop-problems/",
		ReportRequest{CropID: crop.ID, FarmID: farm.ID + 1, UserID: owner.ID, ProblemType: "yellowing"}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = testutil.Do(t, app, http.MethodPost, "/api/crop-problems/",
		ReportRequest{CropID: crop.ID, FarmID: farm.ID, UserID: owner.ID, ProblemType: "pest", Severity: "extreme"}, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	var p ProblemResponse
	code = testutil.Do(t, app, http.MethodPost, "/api/crop-problems/",
		ReportRequest{CropID: crop.ID, FarmID: farm.ID, UserID: owner.ID, ProblemType: "yellowing"}, &p)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, models.SeverityMedium, p.Severity)
	assert.Equal(t, models.ProblemReported, p.Status)

	notes := "Apport d'azote"
	var upd ProblemResponse
	code = testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/crop-problems/%d/status", p.ID),
		StatusRequest{Status: "treated", TreatmentNotes: &notes}, &upd)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, models.ProblemTreated, upd.Status)
	assert.Equal(t, notes, upd.TreatmentNotes)

	var list ProblemsResponse
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/crop-problems/farm/%d", farm.ID), nil, &list)
	assert.Equal(t, 1, list.Count)

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/crop-problems/%d", p.ID), nil, nil))
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/crop-problems/crop/%d", crop.ID), nil, &list)
	assert.Zero(t, list.Count)

	var logs int64
	require.NoError(t, db.Model(&models.AuditLog{}).Where("entity_type = ?", "crop_problem").Count(&logs).Error)
	assert.Equal(t, int64(1), logs)
}
