package models

import (
	"context"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReviewModel struct {
	DB *pgxpool.Pool
}

const selectReview = "SELECT id, comment, rating, movie_id, user_id, created_at FROM reviews"

func (m *ReviewModel) Get(ctx context.Context, id int64) (*models.Review, error) {
	rows, _ := m.DB.Query(ctx, selectReview+" WHERE id = $1", id)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &review, nil
}

func (m *ReviewModel) List(ctx context.Context) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, selectReview+" ORDER BY id")
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
}

func (m *ReviewModel) ListForUser(ctx context.Context, userID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, selectReview+" WHERE user_id = $1 ORDER BY id", userID)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
}

func (m *ReviewModel) ListForMovie(ctx context.Context, movieID int64) ([]models.Review, error) {
	rows, _ := m.DB.Query(ctx, selectReview+" WHERE movie_id = $1 ORDER BY id", movieID)
	return pgx.CollectRows(rows, pgx.RowToStructByName[models.Review])
}

func (m *ReviewModel) Insert(ctx context.Context, comment string, rating float64, movieID, userID int64) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`INSERT INTO reviews (comment, rating, movie_id, user_id) VALUES ($1, $2, $3, $4)
		RETURNING id, comment, rating, movie_id, user_id, created_at`,
		comment,
		rating,
		movieID,
		userID,
	)
	review, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &review, nil
}

// Update never touches movie_id, user_id or created_at, those are fixed at
// creation time.
func (m *ReviewModel) Update(ctx context.Context, review *models.Review) (*models.Review, error) {
	rows, _ := m.DB.Query(
		ctx,
		`UPDATE reviews SET comment = $1, rating = $2 WHERE id = $3
		RETURNING id, comment, rating, movie_id, user_id, created_at`,
		review.Comment,
		review.Rating,
		review.ID,
	)
	updated, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[models.Review])
	if err != nil {
		return nil, mapPgErr(err)
	}
	return &updated, nil
}

func (m *ReviewModel) Delete(ctx context.Context, id int64) error {
	status, err := m.DB.Exec(ctx, "DELETE FROM reviews WHERE id = $1", id)
	if err != nil {
		return err
	}
	if status.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
