package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"mbaymi-backend/internal/auth"
	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/farm"
	"mbaymi-backend/internal/metrics"
	"mbaymi-backend/internal/network"
	"mbaymi-backend/internal/news"
	"mbaymi-backend/internal/storage"
	"mbaymi-backend/internal/testutil"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir)
	require.NoError(t, err)

	feeds := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(feeds.Close)

	cfg := &config.Config{
		AppName:         "Mbaymi API",
		JWTSecret:       "test-secret-test-secret-test-secret",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		AllowedOrigins:  []string{"http://localhost:3000"},
		UploadDir:       dir,
	}
	return New(Deps{
		Config:  cfg,
		DB:      testutil.NewDB(t),
		Store:   store,
		News:    news.NewAggregator(feeds.Client(), []news.Feed{{URL: feeds.URL, Category: "Agriculture"}}),
		Metrics: metrics.New(),
	})
}

func register(t *testing.T, app *fiber.App, name, email string) auth.UserResponse {
	t.Helper()
	var u auth.UserResponse
	code := testutil.Do(t, app, http.MethodPost, "/api/auth/register", auth.RegisterRequest{
		Name: name, Email: email, Password: "secret123", Role: "farmer", Region: "Thiès",
	}, &u)
	require.Equal(t, http.StatusCreated, code)
	return u
}

func TestFollowAndFeedFlow(t *testing.T) {
	app := newTestApp(t)

	awa := register(t, app, "Awa", "awa@example.com")
	moussa := register(t, app, "Moussa", "moussa@example.com")

	var f farm.FarmResponse
	code := testutil.Do(t, app, http.MethodPost, fmt.Sprintf("/api/farms?user_id=%d", moussa.ID),
		farm.FarmRequest{Name: "Ferme Ndiaye", Location: "Thiès"}, &f)
	require.Equal(t, http.StatusCreated, code)

	code = testutil.Do(t, app, http.MethodPost, "/api/farm-network/posts", network.CreatePostRequest{
		FarmID: f.ID, UserID: moussa.ID, Title: "Semis de mil terminés",
	}, nil)
	require.Equal(t, http.StatusCreated, code)

	for i := 0; i < 2; i++ {
		code = testutil.Do(t, app, http.MethodPost,
			fmt.Sprintf("/api/users/%d/follow?follower_id=%d", moussa.ID, awa.ID), nil, nil)
		require.Equal(t, http.StatusOK, code)
	}

	var feed network.PostsResponse
	code = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/feed", awa.ID), nil, &feed)
	require.Equal(t, http.StatusOK, code)
	require.Equal(t, 1, feed.Count)
	assert.Equal(t, "Semis de mil terminés", feed.Posts[0].Title)
	assert.Equal(t, "Moussa", feed.Posts[0].OwnerName)

	var followers network.UsersResponse
	code = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/followers", moussa.ID), nil, &followers)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 1, followers.Count)

	code = testutil.Do(t, app, http.MethodDelete, fmt.Sprintf("/api/farms/%d", f.ID), nil, nil)
	require.Equal(t, http.StatusOK, code)

	code = testutil.Do(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/feed", awa.ID), nil, &feed)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 0, feed.Count)
}

func TestLoginAndMe(t *testing.T) {
	app := newTestApp(t)
	register(t, app, "Awa", "awa@example.com")

	var login auth.LoginResponse
	code := testutil.Do(t, app, http.MethodPost, "/api/auth/login",
		auth.LoginRequest{Email: "awa@example.com", Password: "secret123"}, &login)
	require.Equal(t, http.StatusOK, code)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+login.AccessToken)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var me auth.UserResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "awa@example.com", me.Email)

	code = testutil.Do(t, app, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAmbientRoutes(t *testing.T) {
	app := newTestApp(t)

	var info map[string]any
	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/", nil, &info))
	assert.Equal(t, "Mbaymi API", info["name"])

	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/health", nil, nil))

	var headlines news.Response
	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodGet, "/api/news/agricultural", nil, &headlines))
	assert.Equal(t, "fallback", headlines.Status)

	var adv map[string]any
	require.Equal(t, http.StatusOK, testutil.Do(t, app, http.MethodPost, "/api/advice",
		map[string]string{"type": "crop", "topic": "mil"}, &adv))

	var errBody map[string]string
	code := testutil.Do(t, app, http.MethodGet, "/api/farms/999", nil, &errBody)
	assert.Equal(t, http.StatusNotFound, code)
	assert.NotEmpty(t, errBody["error"])

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `route="/api/farms/:id",status="404"`)
}

func TestCORSHeadersOnErrors(t *testing.T) {
	app := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/farms/999", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "http://localhost:3000", resp.Header.Get("Access-Control-Allow-Origin"))
}
