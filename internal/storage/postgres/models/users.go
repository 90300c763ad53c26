package models

import (
	"context"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserModel struct {
	DB *pgxpool.Pool
}

const selectUser = "SELECT id, name, last_name, user_name, email, password_hash, is_superuser, registered_at FROM users"

func (m *UserModel) Get(ctx context.Context, id int64) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, selectUser+" WHERE id = $1", id)
	return collectUser(rows)
}

func (m *UserModel) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	rows, _ := m.DB.Query(ctx, selectUser+" WHERE user_name = $1", username)
	return collectUser(rows)
}

func (m *UserModel) List(ctx context.Context) ([]models.User, error) {
	rows, _ := m.DB.Query(ctx, selectUser+" ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.User])
}

func (m *UserModel) Insert(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO users (name, last_name, user_name, email, password_hash) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, last_name, user_name, email, password_hash, is_superuser, registered_at`,
		user.Name,
		user.LastName,
		user.Username,
		user.Email,
		user.PasswordHash,
	)
	return collectUser(rows)
}

func (m *UserModel) Update(ctx context.Context, user *models.User) (*models.User, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE users SET name = $1, last_name = $2, user_name = $3, email = $4, is_superuser = $5 WHERE id = $6
		RETURNING id, name, last_name, user_name, email, password_hash, is_superuser, registered_at`,
		user.Name,
		user.LastName,
		user.Username,
		user.Email,
		user.IsSuperuser,
		user.ID,
	)
	return collectUser(rows)
}

func (m *UserModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func collectUser(rows pgx.Rows) (*models.User, error) {
	user, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &user, nil
}
