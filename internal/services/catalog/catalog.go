// Package catalog covers the thin reference entities a movie points at:
// genres, actors and directors.
package catalog

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"
)

type GenresStorage interface {
	Get(ctx context.Context, id int64) (*models.Genre, error)
	List(ctx context.Context) ([]models.Genre, error)
	Insert(ctx context.Context, name string) (*models.Genre, error)
	Update(ctx context.Context, genre *models.Genre) (*models.Genre, error)
	Delete(ctx context.Context, id int64) error
}

type ActorsStorage interface {
	Get(ctx context.Context, id int64) (*models.Actor, error)
	List(ctx context.Context) ([]models.Actor, error)
	Insert(ctx context.Context, name string, birthDate *fields.Date) (*models.Actor, error)
	Update(ctx context.Context, actor *models.Actor) (*models.Actor, error)
	Delete(ctx context.Context, id int64) error
}

type DirectorsStorage interface {
	Get(ctx context.Context, id int64) (*models.Director, error)
	List(ctx context.Context) ([]models.Director, error)
	Insert(ctx context.Context, name string, birthDate *fields.Date) (*models.Director, error)
	Update(ctx context.Context, director *models.Director) (*models.Director, error)
	Delete(ctx context.Context, id int64) error
}

type CatalogService struct {
	log       *slog.Logger
	genres    GenresStorage
	actors    ActorsStorage
	directors DirectorsStorage
}

func New(log *slog.Logger, genres GenresStorage, actors ActorsStorage, directors DirectorsStorage) *CatalogService {
	return &CatalogService{
		log:       log,
		genres:    genres,
		actors:    actors,
		directors: directors,
	}
}

func (s *CatalogService) GetGenre(ctx context.Context, id int64) (*models.Genre, error) {
	genre, err := s.genres.Get(ctx, id)
	return genre, s.mapErr("catalog.CatalogService.GetGenre", err, ErrGenreNotFound)
}

func (s *CatalogService) ListGenres(ctx context.Context) ([]models.Genre, error) {
	genres, err := s.genres.List(ctx)
	return genres, s.mapErr("catalog.CatalogService.ListGenres", err, ErrGenreNotFound)
}

func (s *CatalogService) CreateGenre(ctx context.Context, name string) (*models.Genre, error) {
	genre, err := s.genres.Insert(ctx, name)
	return genre, s.mapErr("catalog.CatalogService.CreateGenre", err, ErrGenreNotFound)
}

func (s *CatalogService) UpdateGenre(ctx context.Context, id int64, name string) (*models.Genre, error) {
	genre, err := s.genres.Update(ctx, &models.Genre{ID: id, Name: name})
	return genre, s.mapErr("catalog.CatalogService.UpdateGenre", err, ErrGenreNotFound)
}

func (s *CatalogService) DeleteGenre(ctx context.Context, id int64) error {
	return s.mapErr("catalog.CatalogService.DeleteGenre", s.genres.Delete(ctx, id), ErrGenreNotFound)
}

func (s *CatalogService) GetActor(ctx context.Context, id int64) (*models.Actor, error) {
	actor, err := s.actors.Get(ctx, id)
	return actor, s.mapErr("catalog.CatalogService.GetActor", err, ErrActorNotFound)
}

func (s *CatalogService) ListActors(ctx context.Context) ([]models.Actor, error) {
	actors, err := s.actors.List(ctx)
	return actors, s.mapErr("catalog.CatalogService.ListActors", err, ErrActorNotFound)
}

func (s *CatalogService) CreateActor(ctx context.Context, name string, birthDate *fields.Date) (*models.Actor, error) {
	actor, err := s.actors.Insert(ctx, name, birthDate)
	return actor, s.mapErr("catalog.CatalogService.CreateActor", err, ErrActorNotFound)
}

func (s *CatalogService) UpdateActor(ctx context.Context, id int64, name string, birthDate *fields.Date) (*models.Actor, error) {
	actor, err := s.actors.Update(ctx, &models.Actor{ID: id, Name: name, BirthDate: birthDate})
	return actor, s.mapErr("catalog.CatalogService.UpdateActor", err, ErrActorNotFound)
}

func (s *CatalogService) DeleteActor(ctx context.Context, id int64) error {
	return s.mapErr("catalog.CatalogService.DeleteActor", s.actors.Delete(ctx, id), ErrActorNotFound)
}

func (s *CatalogService) GetDirector(ctx context.Context, id int64) (*models.Director, error) {
	director, err := s.directors.Get(ctx, id)
	return director, s.mapErr("catalog.CatalogService.GetDirector", err, ErrDirectorNotFound)
}

func (s *CatalogService) ListDirectors(ctx context.Context) ([]models.Director, error) {
	directors, err := s.directors.List(ctx)
	return directors, s.mapErr("catalog.CatalogService.ListDirectors", err, ErrDirectorNotFound)
}

func (s *CatalogService) CreateDirector(ctx context.Context, name string, birthDate *fields.Date) (*models.Director, error) {
	director, err := s.directors.Insert(ctx, name, birthDate)
	return director, s.mapErr("catalog.CatalogService.CreateDirector", err, ErrDirectorNotFound)
}

func (s *CatalogService) UpdateDirector(ctx context.Context, id int64, name string, birthDate *fields.Date) (*models.Director, error) {
	director, err := s.directors.Update(ctx, &models.Director{ID: id, Name: name, BirthDate: birthDate})
	return director, s.mapErr("catalog.CatalogService.UpdateDirector", err, ErrDirectorNotFound)
}

func (s *CatalogService) DeleteDirector(ctx context.Context, id int64) error {
	return s.mapErr("catalog.CatalogService.DeleteDirector", s.directors.Delete(ctx, id), ErrDirectorNotFound)
}

func (s *CatalogService) mapErr(op string, err error, notFound error) error {
	if err == nil {
		return nil
	}
	log := s.log.With("op", op)
	if errors.Is(err, storage.ErrNotFound) {
		log.Info(notFound.Error())
		return notFound
	}
	log.Error(err.Error())
	return err
}
