package users

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"
)

type UsersStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user *models.User) (*models.User, error)
	Delete(ctx context.Context, id int64) error
}

type UserService struct {
	log     *slog.Logger
	storage UsersStorage
}

func New(log *slog.Logger, storage UsersStorage) *UserService {
	return &UserService{
		log:     log,
		storage: storage,
	}
}

func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	const op = "users.UserService.Get"
	log := s.log.With("op", op, "id", id)
	user, err := s.storage.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrUserNotFound
		}
		log.Error(err.Error())
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	const op = "users.UserService.List"
	list, err := s.storage.List(ctx)
	if err != nil {
		s.log.With("op", op).Error(err.Error())
		return nil, err
	}
	return list, nil
}

type UpdateUserParams struct {
	Name        *string
	LastName    *string
	Username    *string
	Email       *string
	IsSuperuser *bool
}

func (s *UserService) Update(ctx context.Context, id int64, params UpdateUserParams) (*models.User, error) {
	const op = "users.UserService.Update"
	log := s.log.With("op", op, "id", id)
	user, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if params.Name != nil {
		user.Name = *params.Name
	}
	if params.LastName != nil {
		user.LastName = *params.LastName
	}
	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.Email != nil {
		user.Email = *params.Email
	}
	if params.IsSuperuser != nil {
		user.IsSuperuser = *params.IsSuperuser
	}
	updated, err := s.storage.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			log.Info("user not found")
			return nil, ErrUserNotFound
		case errors.Is(err, storage.ErrConflict):
			log.Info("user already exists")
			return nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, err
	}
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, id int64) error {
	const op = "users.UserService.Delete"
	log := s.log.With("op", op, "id", id)
	if err := s.storage.Delete(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return ErrUserNotFound
		}
		log.Error(err.Error())
		return err
	}
	return nil
}
