package main

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthenticate(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	user := seedUser(t, store, "alex", "pa55word123", false)

	t.Run("no header resolves to anonymous", func(t *testing.T) {
		resp, envelope := doRequest(t, app, http.MethodGet, "/api/v1/users/me", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		assert.False(t, envelope.Success)
	})

	t.Run("valid token resolves the user", func(t *testing.T) {
		token := accessTokenFor(t, app, user)
		resp, envelope := doRequest(t, app, http.MethodGet, "/api/v1/users/me", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, envelope.Success)
	})

	t.Run("malformed header is rejected", func(t *testing.T) {
		req, rec := newRawRequest(http.MethodGet, "/api/v1/users/me")
		req.Header.Set("Authorization", "Token abc")
		app.routes().ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/users/me", "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestRequireAuthenticatedUser(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	user := seedUser(t, store, "bob", "pa55word123", false)

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/reviews/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("authenticated passes", func(t *testing.T) {
		token := accessTokenFor(t, app, user)
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/reviews/", token, nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestRequirePermission(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	regular := seedUser(t, store, "carol", "pa55word123", false)
	admin := seedUser(t, store, "root", "pa55word123", true)

	t.Run("anonymous can read movies", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/movies/", "", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("anonymous write gets 401", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/movies/", "", map[string]any{"title": "x"})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("regular user write gets 403", func(t *testing.T) {
		token := accessTokenFor(t, app, regular)
		resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/movies/", token, map[string]any{"title": "x"})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("superuser write passes", func(t *testing.T) {
		token := accessTokenFor(t, app, admin)
		resp, _ := doRequest(t, app, http.MethodPost, "/api/v1/movies/", token, map[string]any{"title": "x"})
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
	})

	t.Run("regular user cannot list users", func(t *testing.T) {
		token := accessTokenFor(t, app, regular)
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/users/", token, nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})
}
