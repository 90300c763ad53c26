package main

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/MaximJrr/drf-movies/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReview(t *testing.T, store *fakeStore, movieID, userID int64) *models.Review {
	t.Helper()
	review, err := fakeReviews{store}.Insert(context.Background(), "solid", 8, movieID, userID)
	require.NoError(t, err)
	return review
}

func TestGetReviews(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	owner := seedUser(t, store, "alex", "pa55word123", false)
	other := seedUser(t, store, "eva", "pa55word123", false)
	admin := seedUser(t, store, "root", "pa55word123", true)
	movie := seedMovie(t, store, models.Movie{Title: "Heat"})
	seedReview(t, store, movie.ID, owner.ID)
	seedReview(t, store, movie.ID, other.ID)

	t.Run("regular user sees only own reviews", func(t *testing.T) {
		resp, envelope := doRequest(t, app, http.MethodGet, "/api/v1/reviews/", accessTokenFor(t, app, owner), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, envelope.Data["reviews"], 1)
	})

	t.Run("superuser sees everything", func(t *testing.T) {
		resp, envelope := doRequest(t, app, http.MethodGet, "/api/v1/reviews/", accessTokenFor(t, app, admin), nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Len(t, envelope.Data["reviews"], 2)
	})

	t.Run("anonymous gets 401", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/reviews/", "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestReviewDetailAccess(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	owner := seedUser(t, store, "alex", "pa55word123", false)
	stranger := seedUser(t, store, "eva", "pa55word123", false)
	admin := seedUser(t, store, "root", "pa55word123", true)
	movie := seedMovie(t, store, models.Movie{Title: "Heat"})
	review := seedReview(t, store, movie.ID, owner.ID)
	path := fmt.Sprintf("/api/v1/reviews/%d", review.ID)

	t.Run("owner reads own review", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, path, accessTokenFor(t, app, owner), nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("stranger gets 403", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, path, accessTokenFor(t, app, stranger), nil)
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPatch, path, accessTokenFor(t, app, stranger), map[string]any{
			"comment": "hijacked",
		})
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("admin updates a foreign review", func(t *testing.T) {
		resp, envelope := doRequest(t, app, http.MethodPatch, path, accessTokenFor(t, app, admin), map[string]any{
			"rating": 4.5,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := envelope.Data["review"].(map[string]any)
		assert.EqualValues(t, 4.5, got["rating"])
		assert.Equal(t, "solid", got["comment"])
	})

	t.Run("unknown review", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodGet, "/api/v1/reviews/999", accessTokenFor(t, app, owner), nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestUpdateReview(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	owner := seedUser(t, store, "alex", "pa55word123", false)
	movie := seedMovie(t, store, models.Movie{Title: "Heat"})
	review := seedReview(t, store, movie.ID, owner.ID)
	token := accessTokenFor(t, app, owner)
	path := fmt.Sprintf("/api/v1/reviews/%d", review.ID)

	t.Run("partial update keeps other fields", func(t *testing.T) {
		resp, envelope := doRequest(t, app, http.MethodPatch, path, token, map[string]any{
			"comment": "rewatched, even better",
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		got := envelope.Data["review"].(map[string]any)
		assert.Equal(t, "rewatched, even better", got["comment"])
		assert.EqualValues(t, 8, got["rating"])
	})

	t.Run("rating out of range", func(t *testing.T) {
		resp, _ := doRequest(t, app, http.MethodPatch, path, token, map[string]any{"rating": 15})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteReview(t *testing.T) {
	store := newFakeStore()
	app := newTestApplication(t, store)
	owner := seedUser(t, store, "alex", "pa55word123", false)
	movie := seedMovie(t, store, models.Movie{Title: "Heat"})
	review := seedReview(t, store, movie.ID, owner.ID)
	token := accessTokenFor(t, app, owner)
	path := fmt.Sprintf("/api/v1/reviews/%d", review.ID)

	resp, _ := doRequest(t, app, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = doRequest(t, app, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
