package main

import (
	"errors"
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/filters"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/services/movies"
	"github.com/MaximJrr/drf-movies/internal/services/reviews"
)

type movieInput struct {
	Title          string       `json:"title" validate:"required,max=255"`
	Description    *string      `json:"description"`
	ReleaseDate    *fields.Date `json:"release_date"`
	Rating         *float64     `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Duration       *int32       `json:"duration" validate:"omitempty,gt=0"`
	Budget         *int64       `json:"budget" validate:"omitempty,gte=0"`
	AgeRestriction *int32       `json:"age_restriction" validate:"omitempty,gte=0,lte=18" errorMsg:"please specify age restriction from 0 to 18"`
	Genre          *int64       `json:"genre"`
	Director       *int64       `json:"director"`
	Actors         []int64      `json:"actors"`
}

type updateMovieInput struct {
	Title          *string      `json:"title" validate:"omitempty,max=255"`
	Description    *string      `json:"description"`
	ReleaseDate    *fields.Date `json:"release_date"`
	Rating         *float64     `json:"rating" validate:"omitempty,gte=0,lte=10"`
	Duration       *int32       `json:"duration" validate:"omitempty,gt=0"`
	Budget         *int64       `json:"budget" validate:"omitempty,gte=0"`
	AgeRestriction *int32       `json:"age_restriction" validate:"omitempty,gte=0,lte=18" errorMsg:"please specify age restriction from 0 to 18"`
	Genre          *int64       `json:"genre"`
	Director       *int64       `json:"director"`
	Actors         []int64      `json:"actors"`
}

type listMoviesQuery struct {
	Page     int    `schema:"page" validate:"gte=1"`
	PageSize int    `schema:"page_size" validate:"gte=1,lte=100"`
	Sort     string `schema:"sort" validate:"sortbymoviefield"`
}

func (app *Application) getMovies(w http.ResponseWriter, r *http.Request) {
	query := listMoviesQuery{Page: 1, PageSize: 20, Sort: "id"}
	if err := app.queryDecoder.Decode(&query, r.URL.Query()); err != nil {
		app.Http.BadRequest(w, r, "invalid query parameters")
		return
	}
	if !app.validateInput(w, r, query) {
		return
	}
	f := filters.Filters{
		Page:         query.Page,
		PageSize:     query.PageSize,
		Sort:         query.Sort,
		SortSafelist: models.MovieSortColumns,
	}
	list, total, err := app.services.Movies.List(r.Context(), f)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list, "total_records": total}, "")
}

func (app *Application) getMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	movie, err := app.services.Movies.Get(r.Context(), id)
	if err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) createMovie(w http.ResponseWriter, r *http.Request) {
	var input movieInput
	if !app.readValidated(w, r, &input) {
		return
	}
	movie, err := app.services.Movies.Create(r.Context(), movies.MovieParams{
		Title:          input.Title,
		Description:    input.Description,
		ReleaseDate:    input.ReleaseDate,
		Rating:         input.Rating,
		Duration:       input.Duration,
		Budget:         input.Budget,
		AgeRestriction: input.AgeRestriction,
		GenreID:        input.Genre,
		DirectorID:     input.Director,
		Actors:         input.Actors,
	})
	if err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.Created(w, r, envelop{"movie": movie}, "")
}

func (app *Application) updateMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input updateMovieInput
	if !app.readValidated(w, r, &input) {
		return
	}
	movie, err := app.services.Movies.Update(r.Context(), id, movies.UpdateMovieParams{
		Title:          input.Title,
		Description:    input.Description,
		ReleaseDate:    input.ReleaseDate,
		Rating:         input.Rating,
		Duration:       input.Duration,
		Budget:         input.Budget,
		AgeRestriction: input.AgeRestriction,
		GenreID:        input.Genre,
		DirectorID:     input.Director,
		Actors:         input.Actors,
	})
	if err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"movie": movie}, "")
}

func (app *Application) deleteMovie(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Movies.Delete(r.Context(), id); err != nil {
		app.movieError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) moviesYearRelease(w http.ResponseWriter, r *http.Request) {
	year, ok := app.extractQueryInt(w, r, "year")
	if !ok {
		return
	}
	list, err := app.services.Movies.ListByYear(r.Context(), year)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	if len(list) == 0 {
		app.Http.NotFound(w, r, "no movies found for this year")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list}, "")
}

func (app *Application) moviesAgeRestriction(w http.ResponseWriter, r *http.Request) {
	age, ok := app.extractQueryInt(w, r, "age")
	if !ok {
		return
	}
	list, err := app.services.Movies.ListByAgeRestriction(r.Context(), age)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	if len(list) == 0 {
		app.Http.NotFound(w, r, "no movies found for this age")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list}, "")
}

// An empty search result is a 200 with a message while the year/age filters
// above 404, matching the long-standing behavior clients depend on.
func (app *Application) searchMovies(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	if search == "" {
		app.Http.BadRequest(w, r, "search query parameter is required.")
		return
	}
	list, err := app.services.Movies.SearchByTitle(r.Context(), search)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	if len(list) == 0 {
		app.Http.Ok(w, r, nil, "there are no films with that name")
		return
	}
	app.Http.Ok(w, r, envelop{"movies": list}, "")
}

func (app *Application) getMovieReviews(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if _, err := app.services.Movies.Get(r.Context(), id); err != nil {
		app.movieError(w, r, err)
		return
	}
	list, err := app.services.Reviews.ListForMovie(r.Context(), id)
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"reviews": list}, "")
}

type reviewInput struct {
	Comment string  `json:"comment" validate:"required"`
	Rating  float64 `json:"rating" validate:"required,gte=0,lte=10"`
	// The payload may name a user or movie but both are forced server-side.
	User  *int64 `json:"user"`
	Movie *int64 `json:"movie"`
}

func (app *Application) addMovieReview(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	caller := app.contextGetUser(r)
	var input reviewInput
	if !app.readValidated(w, r, &input) {
		return
	}
	if _, err := app.services.Movies.Get(r.Context(), id); err != nil {
		app.movieError(w, r, err)
		return
	}
	review, err := app.services.Reviews.Create(r.Context(), input.Comment, input.Rating, id, caller.ID)
	if err != nil {
		if errors.Is(err, reviews.ErrMovieNotFound) {
			app.Http.NotFound(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{"review": review}, "")
}

func (app *Application) movieError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, movies.ErrMovieNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, movies.ErrRelatedNotFound):
		app.Http.BadRequest(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}

func shortMovies(list []models.Movie) []models.MovieShort {
	shorts := make([]models.MovieShort, 0, len(list))
	for i := range list {
		shorts = append(shorts, list[i].Short())
	}
	return shorts
}
