package livestock

import (
	"fmt"
	"net/http"
	"testing"

	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLivestockCRUD(t *testing.T) {
	db := testutil.NewDB(t)
	app := testutil.NewApp()
	g := app.Group("/api/livestock")
	g.Post("/", CreateLivestockHandler(db))
	g.Get("/user/:user_id", ListUserLivestockHandler(db))
	g.Get("/:id", GetLivestockHandler(db))
	g.Put("/:id", UpdateLivestockHandler(db))
	g.Delete("/:id", DeleteLivestockHandler(db))

	breeder := testutil.CreateUser(t, db, "Samba")
	other := testutil.CreateUser(t, db, "Other")
	farm := testutil.CreateFarm(t, db, breeder.ID, "Bergerie")
	foreign := testutil.CreateFarm(t, db, other.ID, "Ailleurs")

	code := testutil.Do(t, app, http.MethodPost, "/api/livestock?user_id=999", LivestockRequest{AnimalType: "goat"}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code = testutil.Do(t, app, http.MethodPost, fmt.Sprintf("/api/livestock?user_id=%d", breeder.ID),
		LivestockRequest{AnimalType: "goat", FarmID: &foreign.ID}, nil)
	assert.Equal(t, http.StatusNotFound, code)

	var created LivestockResponse
	code = testutil.Do(t, app, http.MethodPost, fmt.Sprintf("/api/livestock?user_id=%d", breeder.ID),
		LivestockRequest{AnimalType: " Goat ", FarmID: &farm.ID}, &created)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "goat", created.AnimalType)
	assert.Equal(t, 1, created.Quantity)
	assert.Equal(t, "healthy", created.HealthStatus)

	qty := 12
	var upd LivestockResponse
	code = testutil.Do(t, app, http.MethodPut, fmt.Sprintf("/api/livestock/%d", created.ID),
		LivestockRequest{AnimalType: "goat", Quantity: &qty, HealthStatus: "sick"}, &upd)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 12, upd.Quantity)
	assert.Nil(t, upd.FarmID)

	var list []LivestockResponse
	testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/livestock/user/%d", breeder.ID), nil, &list)
	assert.Len(t, list, 1)

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/livestock/%d", created.ID), nil, nil))
	assert.Equal(t, http.StatusNotFound, testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/livestock/%d", created.ID), nil, nil))
}
