package auth

import (
	"net/http"
	"net/http/httptest"
)

func httptestRequest(method, target, token string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
