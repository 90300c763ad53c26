package main

import (
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/services/permissions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	// Accept both /movies and /movies/ spellings.
	router.Use(middleware.StripSlashes)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/movies", func(r chi.Router) {
			r.Group(func(r chi.Router) {
				r.Use(app.requirePermission(permissions.SuperuserOrReadOnly))
				r.Get("/", app.getMovies)
				r.Post("/", app.createMovie)
				r.Get("/year_release", app.moviesYearRelease)
				r.Get("/age_restriction", app.moviesAgeRestriction)
				r.Get("/search_movies", app.searchMovies)
				r.Get("/{id}", app.getMovie)
				r.Put("/{id}", app.updateMovie)
				r.Patch("/{id}", app.updateMovie)
				r.Delete("/{id}", app.deleteMovie)
				r.Get("/{id}/reviews", app.getMovieReviews)
			})
			r.With(app.requireAuthenticatedUser).Post("/{id}/add_review", app.addMovieReview)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Use(app.requirePermission(permissions.SuperuserOrReadOnly))
			r.Get("/", app.getGenres)
			r.Post("/", app.createGenre)
			r.Get("/{id}", app.getGenre)
			r.Put("/{id}", app.updateGenre)
			r.Patch("/{id}", app.updateGenre)
			r.Delete("/{id}", app.deleteGenre)
			r.Get("/{id}/movies", app.getGenreMovies)
		})
		r.Route("/actors", func(r chi.Router) {
			r.Use(app.requirePermission(permissions.SuperuserOrReadOnly))
			r.Get("/", app.getActors)
			r.Post("/", app.createActor)
			r.Get("/{id}", app.getActor)
			r.Put("/{id}", app.updateActor)
			r.Patch("/{id}", app.updateActor)
			r.Delete("/{id}", app.deleteActor)
			r.Get("/{id}/movies", app.getActorMovies)
		})
		r.Route("/directors", func(r chi.Router) {
			r.Use(app.requirePermission(permissions.SuperuserOrReadOnly))
			r.Get("/", app.getDirectors)
			r.Post("/", app.createDirector)
			r.Get("/{id}", app.getDirector)
			r.Put("/{id}", app.updateDirector)
			r.Patch("/{id}", app.updateDirector)
			r.Delete("/{id}", app.deleteDirector)
			r.Get("/{id}/movies", app.getDirectorMovies)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Use(app.requireAuthenticatedUser)
			r.Get("/", app.getReviews)
			r.Get("/{id}", app.getReview)
			r.Put("/{id}", app.updateReview)
			r.Patch("/{id}", app.updateReview)
			r.Delete("/{id}", app.deleteReview)
		})
		r.Route("/users", func(r chi.Router) {
			r.Post("/register", app.register)
			r.Post("/login", app.login)
			r.Post("/token/refresh", app.refreshToken)
			r.With(app.requireAuthenticatedUser).Get("/me", app.me)
			r.With(app.requireAuthenticatedUser).Post("/logout", app.logout)
			r.Group(func(r chi.Router) {
				r.Use(app.requirePermission(permissions.AdminOnly))
				r.Get("/", app.getUsers)
				r.Get("/{id}", app.getUser)
				r.Put("/{id}", app.updateUser)
				r.Patch("/{id}", app.updateUser)
				r.Delete("/{id}", app.deleteUser)
			})
		})
	})
	return router
}
