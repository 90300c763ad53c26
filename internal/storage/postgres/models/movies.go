package models

import (
	"context"
	"fmt"

	"github.com/MaximJrr/drf-movies/internal/domain/filters"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MovieModel struct {
	DB *pgxpool.Pool
}

// Every select goes through the same join so the actors array is always
// populated, even when it is empty.
const (
	selectMovie = `
	SELECT m.id, m.title, m.description, m.release_date, m.rating, m.duration,
		m.budget, m.age_restriction, m.genre_id, m.director_id, m.created_at,
		coalesce(array_agg(ma.actor_id) FILTER (WHERE ma.actor_id IS NOT NULL), '{}') AS actors
	FROM movies m
	LEFT JOIN movie_actors ma ON ma.movie_id = m.id`
	groupMovie = " GROUP BY m.id"
)

func (m *MovieModel) Get(ctx context.Context, id int64) (*models.Movie, error) {
	rows, _ := m.DB.Query(ctx, selectMovie+" WHERE m.id = $1"+groupMovie, id)
	movie, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Movie])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &movie, nil
}

func (m *MovieModel) List(ctx context.Context, f filters.Filters) ([]models.Movie, int, error) {
	query := fmt.Sprintf(`
	SELECT count(*) OVER(), m.id, m.title, m.description, m.release_date, m.rating, m.duration,
		m.budget, m.age_restriction, m.genre_id, m.director_id, m.created_at,
		coalesce(array_agg(ma.actor_id) FILTER (WHERE ma.actor_id IS NOT NULL), '{}') AS actors
	FROM movies m
	LEFT JOIN movie_actors ma ON ma.movie_id = m.id
	GROUP BY m.id
	ORDER BY m.%s %s, m.id ASC
	LIMIT $1 OFFSET $2`, f.SortColumn(), f.SortDirection())
	rows, _ := m.DB.Query(ctx, query, f.Limit(), f.Offset())
	type row struct {
		Count int
		models.Movie
	}
	outputRows, err := pgx.CollectRows(rows, pgx.RowToStructByName[row])
	if err != nil {
		return nil, 0, mapPgErr(err)
	}
	if len(outputRows) == 0 {
		return []models.Movie{}, 0, nil
	}
	movies := make([]models.Movie, 0, len(outputRows))
	for _, r := range outputRows {
		movies = append(movies, r.Movie)
	}
	return movies, outputRows[0].Count, nil
}

func (m *MovieModel) ListByYear(ctx context.Context, year int) ([]models.Movie, error) {
	rows, _ := m.DB.Query(ctx, selectMovie+" WHERE date_part('year', m.release_date) = $1"+groupMovie, year)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
}

func (m *MovieModel) ListByAgeRestriction(ctx context.Context, age int) ([]models.Movie, error) {
	rows, _ := m.DB.Query(ctx, selectMovie+" WHERE m.age_restriction = $1"+groupMovie, age)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
}

func (m *MovieModel) SearchByTitle(ctx context.Context, search string) ([]models.Movie, error) {
	rows, _ := m.DB.Query(ctx, selectMovie+" WHERE m.title ILIKE '%' || $1 || '%'"+groupMovie, search)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
}

func (m *MovieModel) ListRelated(ctx context.Context, rel models.MovieRelation, id int64) ([]models.Movie, error) {
	var cond string
	switch rel {
	case models.RelatedByGenre:
		cond = " WHERE m.genre_id = $1"
	case models.RelatedByDirector:
		cond = " WHERE m.director_id = $1"
	case models.RelatedByActor:
		cond = " WHERE m.id IN (SELECT movie_id FROM movie_actors WHERE actor_id = $1)"
	default:
		panic(fmt.Sprintf("unknown movie relation: %d", rel))
	}
	rows, _ := m.DB.Query(ctx, selectMovie+cond+groupMovie, id)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Movie])
}

func (m *MovieModel) Insert(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	var id int64
	err = tx.QueryRow(
		ctx,
		`INSERT INTO movies (title, description, release_date, rating, duration, budget, age_restriction, genre_id, director_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Rating,
		movie.Duration,
		movie.Budget,
		movie.AgeRestriction,
		movie.GenreID,
		movie.DirectorID,
	).Scan(&id)
	if err != nil {
		return nil, mapPgErr(err)
	}
	if err := insertMovieActors(ctx, tx, id, movie.Actors); err != nil {
		return nil, mapPgErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, id)
}

func (m *MovieModel) Update(ctx context.Context, movie *models.Movie) (*models.Movie, error) {
	tx, err := m.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)
	status, err := tx.Exec(
		ctx,
		`UPDATE movies SET title = $1, description = $2, release_date = $3, rating = $4,
		duration = $5, budget = $6, age_restriction = $7, genre_id = $8, director_id = $9
		WHERE id = $10`,
		movie.Title,
		movie.Description,
		movie.ReleaseDate,
		movie.Rating,
		movie.Duration,
		movie.Budget,
		movie.AgeRestriction,
		movie.GenreID,
		movie.DirectorID,
		movie.ID,
	)
	if err != nil {
		return nil, mapPgErr(err)
	}
	if status.RowsAffected() == 0 {
		return nil, storage.ErrNotFound
	}
	if _, err := tx.Exec(ctx, "DELETE FROM movie_actors WHERE movie_id = $1", movie.ID); err != nil {
		return nil, err
	}
	if err := insertMovieActors(ctx, tx, movie.ID, movie.Actors); err != nil {
		return nil, mapPgErr(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return m.Get(ctx, movie.ID)
}

// Deleting a movie cascades to its reviews and actor links at the schema level.
func (m *MovieModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM movies WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func insertMovieActors(ctx context.Context, tx pgx.Tx, movieID int64, actorIDs []int64) error {
	for _, actorID := range actorIDs {
		if _, err := tx.Exec(
			ctx,
			"INSERT INTO movie_actors (movie_id, actor_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
			movieID,
			actorID,
		); err != nil {
			return err
		}
	}
	return nil
}
