package main

import (
	"errors"
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/services/permissions"
	"github.com/MaximJrr/drf-movies/internal/services/reviews"
)

type updateReviewInput struct {
	Comment *string  `json:"comment" validate:"omitempty,min=1"`
	Rating  *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
}

func (app *Application) getReviews(w http.ResponseWriter, r *http.Request) {
	caller := app.contextGetUser(r)
	list, err := app.services.Reviews.ListForCaller(r.Context(), caller)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": list}, "")
}

func (app *Application) getReview(w http.ResponseWriter, r *http.Request) {
	review, ok := app.loadOwnedReview(w, r, permissions.ActionRead)
	if !ok {
		return
	}
	app.Http.Ok(w, r, envelop{"review": review}, "")
}

func (app *Application) updateReview(w http.ResponseWriter, r *http.Request) {
	review, ok := app.loadOwnedReview(w, r, permissions.ActionWrite)
	if !ok {
		return
	}
	var input updateReviewInput
	if !app.readValidated(w, r, &input) {
		return
	}
	updated, err := app.services.Reviews.Update(r.Context(), review.ID, reviews.UpdateReviewParams{
		Comment: input.Comment,
		Rating:  input.Rating,
	})
	if err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"review": updated}, "")
}

func (app *Application) deleteReview(w http.ResponseWriter, r *http.Request) {
	review, ok := app.loadOwnedReview(w, r, permissions.ActionWrite)
	if !ok {
		return
	}
	if err := app.services.Reviews.Delete(r.Context(), review.ID); err != nil {
		app.reviewError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

// loadOwnedReview fetches the review from the path and enforces the
// owner-or-admin rule. On failure the response has already been written.
func (app *Application) loadOwnedReview(w http.ResponseWriter, r *http.Request, action permissions.Action) (*models.Review, bool) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return nil, false
	}
	review, err := app.services.Reviews.Get(r.Context(), id)
	if err != nil {
		app.reviewError(w, r, err)
		return nil, false
	}
	caller := app.contextGetUser(r)
	if !permissions.OwnerOrAdmin(caller, action, review.UserID) {
		app.permissionDenied(w, r, caller)
		return nil, false
	}
	return review, true
}

func (app *Application) reviewError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, reviews.ErrReviewNotFound), errors.Is(err, reviews.ErrMovieNotFound):
		app.Http.NotFound(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
