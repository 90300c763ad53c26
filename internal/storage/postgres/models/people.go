package models

import (
	"context"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ActorModel struct {
	DB *pgxpool.Pool
}

func (m *ActorModel) Get(ctx context.Context, id int64) (*models.Actor, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name, birth_date FROM actors WHERE id = $1", id)
	actor, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Actor])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &actor, nil
}

func (m *ActorModel) List(ctx context.Context) ([]models.Actor, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name, birth_date FROM actors ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Actor])
}

func (m *ActorModel) Insert(ctx context.Context, name string, birthDate *fields.Date) (*models.Actor, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO actors (name, birth_date) VALUES ($1, $2) RETURNING id, name, birth_date",
		name,
		birthDate,
	)
	actor, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Actor])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &actor, nil
}

func (m *ActorModel) Update(ctx context.Context, actor *models.Actor) (*models.Actor, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE actors SET name = $1, birth_date = $2 WHERE id = $3 RETURNING id, name, birth_date",
		actor.Name,
		actor.BirthDate,
		actor.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Actor])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &updated, nil
}

func (m *ActorModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM actors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

type DirectorModel struct {
	DB *pgxpool.Pool
}

func (m *DirectorModel) Get(ctx context.Context, id int64) (*models.Director, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name, birth_date FROM directors WHERE id = $1", id)
	director, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &director, nil
}

func (m *DirectorModel) List(ctx context.Context) ([]models.Director, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name, birth_date FROM directors ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Director])
}

func (m *DirectorModel) Insert(ctx context.Context, name string, birthDate *fields.Date) (*models.Director, error) {
	rows, _ := m.DB.Query(
		ctx,
		"INSERT INTO directors (name, birth_date) VALUES ($1, $2) RETURNING id, name, birth_date",
		name,
		birthDate,
	)
	director, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &director, nil
}

func (m *DirectorModel) Update(ctx context.Context, director *models.Director) (*models.Director, error) {
	rows, _ := m.DB.Query(
		ctx,
		"UPDATE directors SET name = $1, birth_date = $2 WHERE id = $3 RETURNING id, name, birth_date",
		director.Name,
		director.BirthDate,
		director.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Director])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &updated, nil
}

// Movies referencing the deleted director keep existing with director_id
// reset to NULL at the schema level.
func (m *DirectorModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM directors WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
