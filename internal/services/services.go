package services

import (
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/config"
	"github.com/MaximJrr/drf-movies/internal/mails"
	"github.com/MaximJrr/drf-movies/internal/services/auth"
	"github.com/MaximJrr/drf-movies/internal/services/catalog"
	"github.com/MaximJrr/drf-movies/internal/services/movies"
	"github.com/MaximJrr/drf-movies/internal/services/reviews"
	"github.com/MaximJrr/drf-movies/internal/services/users"
	"github.com/MaximJrr/drf-movies/internal/storage/postgres"
	"github.com/MaximJrr/drf-movies/internal/storage/postgres/models"
)

type Services struct {
	Auth    *auth.AuthService
	Movies  *movies.MovieService
	Catalog *catalog.CatalogService
	Reviews *reviews.ReviewService
	Users   *users.UserService
}

func New(log *slog.Logger, cfg *config.Config, storage *postgres.Storage, taskExecutor auth.TaskExecutor) *Services {
	mailer := mails.New(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Timeout,
		cfg.SMTP.Username,
		cfg.SMTP.Password,
		cfg.SMTP.Sender,
		cfg.SMTP.RetriesCount,
	)
	db := models.New(storage)
	tokens := auth.NewTokenManager(
		cfg.Auth.Secret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
		db.Blacklist,
	)
	return &Services{
		Auth:    auth.New(log, db.User, tokens, mailer, taskExecutor),
		Movies:  movies.New(log, db.Movie),
		Catalog: catalog.New(log, db.Genre, db.Actor, db.Director),
		Reviews: reviews.New(log, db.Review),
		Users:   users.New(log, db.User),
	}
}
