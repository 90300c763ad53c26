package main

import (
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
)

type personInput struct {
	Name      string       `json:"name" validate:"required,max=255"`
	BirthDate *fields.Date `json:"birth_date"`
}

func (app *Application) getActors(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Catalog.ListActors(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"actors": list}, "")
}

func (app *Application) getActor(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	actor, err := app.services.Catalog.GetActor(r.Context(), id)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"actor": actor}, "")
}

func (app *Application) createActor(w http.ResponseWriter, r *http.Request) {
	var input personInput
	if !app.readValidated(w, r, &input) {
		return
	}
	actor, err := app.services.Catalog.CreateActor(r.Context(), input.Name, input.BirthDate)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"actor": actor}, "")
}

func (app *Application) updateActor(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input personInput
	if !app.readValidated(w, r, &input) {
		return
	}
	actor, err := app.services.Catalog.UpdateActor(r.Context(), id, input.Name, input.BirthDate)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"actor": actor}, "")
}

func (app *Application) deleteActor(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Catalog.DeleteActor(r.Context(), id); err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) getActorMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if _, err := app.services.Catalog.GetActor(r.Context(), id); err != nil {
		app.catalogError(w, r, err)
		return
	}
	list, err := app.services.Movies.ListRelated(r.Context(), models.RelatedByActor, id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": shortMovies(list)}, "")
}

func (app *Application) getDirectors(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Catalog.ListDirectors(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"directors": list}, "")
}

func (app *Application) getDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	director, err := app.services.Catalog.GetDirector(r.Context(), id)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"director": director}, "")
}

func (app *Application) createDirector(w http.ResponseWriter, r *http.Request) {
	var input personInput
	if !app.readValidated(w, r, &input) {
		return
	}
	director, err := app.services.Catalog.CreateDirector(r.Context(), input.Name, input.BirthDate)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"director": director}, "")
}

func (app *Application) updateDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input personInput
	if !app.readValidated(w, r, &input) {
		return
	}
	director, err := app.services.Catalog.UpdateDirector(r.Context(), id, input.Name, input.BirthDate)
	if err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"director": director}, "")
}

func (app *Application) deleteDirector(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Catalog.DeleteDirector(r.Context(), id); err != nil {
		app.catalogError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) getDirectorMovies(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if _, err := app.services.Catalog.GetDirector(r.Context(), id); err != nil {
		app.catalogError(w, r, err)
		return
	}
	list, err := app.services.Movies.ListRelated(r.Context(), models.RelatedByDirector, id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": shortMovies(list)}, "")
}
