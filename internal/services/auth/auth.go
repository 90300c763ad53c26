package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/storage"

	"golang.org/x/crypto/bcrypt"
)

type UsersStorage interface {
	Get(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (*models.User, error)
}

type MailProvider interface {
	Send(recipient string, tmplName string, tmplData any) error
}

type TaskExecutor interface {
	Add(task func())
}

type AuthService struct {
	log          *slog.Logger
	users        UsersStorage
	Tokens       *TokenManager
	mailer       MailProvider
	taskExecutor TaskExecutor
}

func New(
	log *slog.Logger,
	users UsersStorage,
	tokens *TokenManager,
	mailer MailProvider,
	taskExecutor TaskExecutor,
) *AuthService {
	return &AuthService{
		log:          log,
		users:        users,
		Tokens:       tokens,
		mailer:       mailer,
		taskExecutor: taskExecutor,
	}
}

type RegisterParams struct {
	Name     string
	LastName string
	Username string
	Email    string
	Password string
}

func (a *AuthService) Register(ctx context.Context, params RegisterParams) (*models.User, *models.AuthTokens, error) {
	const op = "auth.AuthService.Register"
	log := a.log.With("op", op, "user_name", params.Username)
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	user, err := a.users.Insert(ctx, &models.User{
		Name:         params.Name,
		LastName:     params.LastName,
		Username:     params.Username,
		Email:        params.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Info("user already exists")
			return nil, nil, ErrUserAlreadyExists
		}
		log.Error(err.Error())
		return nil, nil, err
	}
	tokens, err := a.Tokens.Issue(user)
	if err != nil {
		log.Error(err.Error())
		return nil, nil, err
	}
	a.taskExecutor.Add(func() {
		a.sendWelcomeEmail(user)
	})
	return user, tokens, nil
}

func (a *AuthService) Login(ctx context.Context, username, password string) (*models.AuthTokens, error) {
	const op = "auth.AuthService.Login"
	log := a.log.With("op", op, "user_name", username)
	user, err := a.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			log.Info("user not found")
			return nil, ErrInvalidCredentials
		}
		log.Error(err.Error())
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		log.Info("password mismatch")
		return nil, ErrInvalidCredentials
	}
	tokens, err := a.Tokens.Issue(user)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}
	return tokens, nil
}

// Logout revokes the refresh token. The access token stays valid until it
// expires on its own, which is the usual trade-off for stateless access
// tokens.
func (a *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return a.Tokens.Revoke(ctx, refreshToken)
}

func (a *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := a.users.Get(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (a *AuthService) sendWelcomeEmail(user *models.User) {
	a.log.Info("sending welcome email", "email", user.Email)
	err := a.mailer.Send(user.Email, "user_welcome.html", map[string]any{
		"name":     user.Name,
		"userName": user.Username,
	})
	if err != nil {
		a.log.Error("Error sending welcome email", "errMsg", err.Error())
	}
}
