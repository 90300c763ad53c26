package models

import (
	"context"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GenreModel struct {
	DB *pgxpool.Pool
}

func (m *GenreModel) Get(ctx context.Context, id int64) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres WHERE id = $1", id)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &genre, nil
}

func (m *GenreModel) List(ctx context.Context) ([]models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "SELECT id, name FROM genres ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Genre])
}

func (m *GenreModel) Insert(ctx context.Context, name string) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "INSERT INTO genres (name) VALUES ($1) RETURNING id, name", name)
	genre, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &genre, nil
}

func (m *GenreModel) Update(ctx context.Context, genre *models.Genre) (*models.Genre, error) {
	rows, _ := m.DB.Query(ctx, "UPDATE genres SET name = $1 WHERE id = $2 RETURNING id, name", genre.Name, genre.ID)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Genre])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &updated, nil
}

// Movies referencing the deleted genre keep existing with genre_id reset
// to NULL at the schema level.
func (m *GenreModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM genres WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
