package movies

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/filters"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"
)

type MoviesStorage interface {
	Get(ctx context.Context, id int64) (*models.Movie, error)
	List(ctx context.Context, f filters.Filters) ([]models.Movie, int, error)
	ListByYear(ctx context.Context, year int) ([]models.Movie, error)
	ListByAgeRestriction(ctx context.Context, age int) ([]models.Movie, error)
	SearchByTitle(ctx context.Context, search string) ([]models.Movie, error)
	ListRelated(ctx context.Context, rel models.MovieRelation, id int64) ([]models.Movie, error)
	Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Update(ctx context.Context, movie *models.Movie) (*models.Movie, error)
	Delete(ctx context.Context, id int64) error
}

type MovieService struct {
	log     *slog.Logger
	storage MoviesStorage
}

func New(log *slog.Logger, storage MoviesStorage) *MovieService {
	return &MovieService{
		log:     log,
		storage: storage,
	}
}

type MovieParams struct {
	Title          string
	Description    *string
	ReleaseDate    *fields.Date
	Rating         *float64
	Duration       *int32
	Budget         *int64
	AgeRestriction *int32
	GenreID        *int64
	DirectorID     *int64
	Actors         []int64
}

type UpdateMovieParams struct {
	Title          *string
	Description    *string
	ReleaseDate    *fields.Date
	Rating         *float64
	Duration       *int32
	Budget         *int64
	AgeRestriction *int32
	GenreID        *int64
	DirectorID     *int64
	Actors         []int64
}

func (s *MovieService) Get(ctx context.Context, id int64) (*models.Movie, error) {
	const op = "movies.MovieService.Get"
	log := s.log.With("op", op, "id", id)
	movie, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) List(ctx context.Context, f filters.Filters) ([]models.Movie, int, error) {
	const op = "movies.MovieService.List"
	movies, total, err := s.storage.List(ctx, f)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, 0, err
	}
	return movies, total, nil
}

func (s *MovieService) ListByYear(ctx context.Context, year int) ([]models.Movie, error) {
	const op = "movies.MovieService.ListByYear"
	movies, err := s.storage.ListByYear(ctx, year)
	if err != nil {
		s.log.With("op", op, "year", year).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) ListByAgeRestriction(ctx context.Context, age int) ([]models.Movie, error) {
	const op = "movies.MovieService.ListByAgeRestriction"
	movies, err := s.storage.ListByAgeRestriction(ctx, age)
	if err != nil {
		s.log.With("op", op, "age", age).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) SearchByTitle(ctx context.Context, search string) ([]models.Movie, error) {
	const op = "movies.MovieService.SearchByTitle"
	movies, err := s.storage.SearchByTitle(ctx, search)
	if err != nil {
		s.log.With("op", op, "search", search).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

// ListRelated serves the genres/actors/directors related-movies endpoints,
// shared across all three controllers instead of being duplicated per
// entity.
func (s *MovieService) ListRelated(ctx context.Context, rel models.MovieRelation, id int64) ([]models.Movie, error) {
	const op = "movies.MovieService.ListRelated"
	movies, err := s.storage.ListRelated(ctx, rel, id)
	if err != nil {
		s.log.With("op", op, "relation", rel, "id", id).Error(err.Error())
		return nil, err
	}
	return movies, nil
}

func (s *MovieService) Create(ctx context.Context, params MovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Create"
	log := s.log.With("op", op, "title", params.Title)
	movie, err := s.storage.Insert(ctx, &models.Movie{
		Title:          params.Title,
		Description:    params.Description,
		ReleaseDate:    params.ReleaseDate,
		Rating:         params.Rating,
		Duration:       params.Duration,
		Budget:         params.Budget,
		AgeRestriction: params.AgeRestriction,
		GenreID:        params.GenreID,
		DirectorID:     params.DirectorID,
		Actors:         params.Actors,
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidRef) {
			log.Info("related row not found")
			return nil, ErrRelatedNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return movie, nil
}

func (s *MovieService) Update(ctx context.Context, id int64, params UpdateMovieParams) (*models.Movie, error) {
	const op = "movies.MovieService.Update"
	log := s.log.With("op", op, "id", id)
	movie, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Title != nil {
		movie.Title = *params.Title
	}
	if params.Description != nil {
		movie.Description = params.Description
	}
	if params.ReleaseDate != nil {
		movie.ReleaseDate = params.ReleaseDate
	}
	if params.Rating != nil {
		movie.Rating = params.Rating
	}
	if params.Duration != nil {
		movie.Duration = params.Duration
	}
	if params.Budget != nil {
		movie.Budget = params.Budget
	}
	if params.AgeRestriction != nil {
		movie.AgeRestriction = params.AgeRestriction
	}
	if params.GenreID != nil {
		movie.GenreID = params.GenreID
	}
	if params.DirectorID != nil {
		movie.DirectorID = params.DirectorID
	}
	if params.Actors != nil {
		movie.Actors = params.Actors
	}
	updatedMovie, err := s.storage.Update(ctx, movie)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("movie not found")
			return nil, ErrMovieNotFound
		case errors.Is(err, storage.ErrInvalidRef):
			log.Info("related row not found")
			return nil, ErrRelatedNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return updatedMovie, nil
}

func (s *MovieService) Delete(ctx context.Context, id int64) error {
	const op = "movies.MovieService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("movie not found")
			return ErrMovieNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
