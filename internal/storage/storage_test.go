package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mbaymi-backend/internal/config"
	"mbaymi-backend/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(filepath.Join(dir, "nested"))
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../escape.png", "image/png", strings.NewReader("png"), 3)
	require.NoError(t, err)
	assert.Equal(t, "/uploads/escape.png", url)

	got, err := os.ReadFile(filepath.Join(dir, "nested", "escape.png"))
	require.NoError(t, err)
	assert.Equal(t, "png", string(got))

	_, err = store.Save(context.Background(), "escape.png", "image/png", strings.NewReader("again"), 5)
	assert.Error(t, err, "existing files are never overwritten")
}

func TestObjectBaseURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000/mbaymi", objectBaseURL(config.MinioConfig{Endpoint: "minio:9000", Bucket: "mbaymi"}))
	assert.Equal(t, "https://minio:9000/b", objectBaseURL(config.MinioConfig{Endpoint: "minio:9000", Bucket: "b", UseSSL: true}))
	assert.Equal(t, "https://cdn.test/b", objectBaseURL(config.MinioConfig{Endpoint: "minio:9000", Bucket: "b", PublicURL: "https://cdn.test/b/"}))
}

type fakeStore struct {
	names []string
	data  []string
	err   error
}

func (f *fakeStore) Save(_ context.Context, name, _ string, r io.Reader, _ int64) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.names = append(f.names, name)
	f.data = append(f.data, string(b))
	return "https://files.test/" + name, nil
}

func uploadRequest(t *testing.T, field, filename, contentType, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, field, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/uploads", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestUploadHandler(t *testing.T) {
	store := &fakeStore{}
	app := testutil.NewApp()
	app.Post("/api/uploads", UploadHandler(store))

	resp, err := app.Test(uploadRequest(t, "file", "Champ.JPG", "image/jpeg", "jpeg-bytes"), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var got UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	require.Len(t, store.names, 1)
	assert.True(t, strings.HasSuffix(store.names[0], ".jpg"))
	assert.Equal(t, "https://files.test/"+store.names[0], got.URL)
	assert.Equal(t, "jpeg-bytes", store.data[0])
	assert.Equal(t, int64(len("jpeg-bytes")), got.Size)
}

func TestUploadHandler_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		field       string
		contentType string
		content     string
		store       *fakeStore
		want        int
	}{
		{"missing file field", "image", "image/png", "x", &fakeStore{}, http.StatusBadRequest},
		{"empty file", "file", "image/png", "", &fakeStore{}, http.StatusBadRequest},
		{"not an image", "file", "text/plain", "hello", &fakeStore{}, http.StatusBadRequest},
		{"store failure", "file", "image/png", "x", &fakeStore{err: errors.New("disk full")}, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := testutil.NewApp()
			app.Post("/api/uploads", UploadHandler(tt.store))

			resp, err := app.Test(uploadRequest(t, tt.field, "a.png", tt.contentType, tt.content), -1)
			require.NoError(t, err)
			resp.Body.Close()
			assert.Equal(t, tt.want, resp.StatusCode)
		})
	}
}
