package main

import (
	"errors"
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/services/catalog"
)

type genreInput struct {
	Name string `json:"name" validate:"required,max=255"`
}

func (app *Application) getGenres(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Catalog.ListGenres(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"genres": list}, "")
}

func (app *Application) getGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	genre, err := app.services.Catalog.GetGenre(r.Context(), id)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) createGenre(w http.ResponseWriter, r *http.Request) {
	var input genreInput
	if !app.readValidated(w, r, &input) {
		return
	}
	genre, err := app.services.Catalog.CreateGenre(r.Context(), input.Name)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"genre": genre}, "")
}

func (app *Application) updateGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input genreInput
	if !app.readValidated(w, r, &input) {
		return
	}
	genre, err := app.services.Catalog.UpdateGenre(r.Context(), id, input.Name)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"genre": genre}, "")
}

func (app *Application) deleteGenre(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Catalog.DeleteGenre(r.Context(), id); err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

// A genre with no movies is reported as 404 here, unlike the actor and
// director endpoints which return an empty list. Clients rely on both
// behaviors as-is.
func (app *Application) getGenreMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	list, err := app.services.Movies.ListRelated(r.Context(), models.RelatedByGenre, id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	if len(list) == 0 {
		app.Http.NotFound(w, r, "no movies found for this genre")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list}, "")
}

func (app *Application) catalogError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, catalog.ErrGenreNotFound),
		errors.Is(err, catalog.ErrActorNotFound),
		errors.Is(err, catalog.ErrDirectorNotFound):
		app.Http.NotFound(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
