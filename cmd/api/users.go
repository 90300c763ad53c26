package main

import (
	"errors"
	"net/http"

	"github.com/MaximJrr/drf-movies/internal/services/auth"
	"github.com/MaximJrr/drf-movies/internal/services/users"
)

type registerInput struct {
	Name     string `json:"name" validate:"required,max=255"`
	LastName string `json:"last_name" validate:"max=255"`
	Username string `json:"user_name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

type loginInput struct {
	Username string `json:"user_name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type refreshInput struct {
	Refresh string `json:"refresh" validate:"required" errorMsg:"Refresh token is required"`
}

type updateUserInput struct {
	Name        *string `json:"name" validate:"omitempty,max=255"`
	LastName    *string `json:"last_name" validate:"omitempty,max=255"`
	Username    *string `json:"user_name" validate:"omitempty,max=255"`
	Email       *string `json:"email" validate:"omitempty,email"`
	IsSuperuser *bool   `json:"is_superuser"`
}

func (app *Application) register(w http.ResponseWriter, r *http.Request) {
	var input registerInput
	if !app.readValidated(w, r, &input) {
		return
	}
	user, tokens, err := app.services.Auth.Register(r.Context(), auth.RegisterParams{
		Name:     input.Name,
		LastName: input.LastName,
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		if errors.Is(err, auth.ErrUserAlreadyExists) {
			app.Http.BadRequest(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Created(w, r, envelop{
		"user":    user,
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	}, "user created successfully")
}

func (app *Application) login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if !app.readValidated(w, r, &input) {
		return
	}
	tokens, err := app.services.Auth.Login(r.Context(), input.Username, input.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			app.Http.Unauthorized(w, r, err.Error())
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{
		"access":  tokens.AccessToken,
		"refresh": tokens.RefreshToken,
	}, "")
}

func (app *Application) refreshToken(w http.ResponseWriter, r *http.Request) {
	var input refreshInput
	if !app.readValidated(w, r, &input) {
		return
	}
	access, err := app.services.Auth.Tokens.Rotate(r.Context(), input.Refresh)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			app.Http.Unauthorized(w, r, "Invalid or expired refresh token")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"access": access}, "")
}

func (app *Application) me(w http.ResponseWriter, r *http.Request) {
	app.Http.Ok(w, r, envelop{"user": app.contextGetUser(r)}, "")
}

func (app *Application) logout(w http.ResponseWriter, r *http.Request) {
	var input refreshInput
	if !app.readValidated(w, r, &input) {
		return
	}
	if err := app.services.Auth.Logout(r.Context(), input.Refresh); err != nil {
		if errors.Is(err, auth.ErrInvalidToken) {
			app.Http.BadRequest(w, r, "Invalid or expired refresh token")
			return
		}
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.ResetContent(w, r, "Logged out successfully")
}

func (app *Application) getUsers(w http.ResponseWriter, r *http.Request) {
	list, err := app.services.Users.List(r.Context())
	if err != nil {
		app.Http.ServerError(w, r, err, "")
		return
	}
	app.Http.Ok(w, r, envelop{"users": list}, "")
}

func (app *Application) getUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	user, err := app.services.Users.Get(r.Context(), id)
	if err != nil {
		app.userError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) updateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	var input updateUserInput
	if !app.readValidated(w, r, &input) {
		return
	}
	user, err := app.services.Users.Update(r.Context(), id, users.UpdateUserParams{
		Name:        input.Name,
		LastName:    input.LastName,
		Username:    input.Username,
		Email:       input.Email,
		IsSuperuser: input.IsSuperuser,
	})
	if err != nil {
		app.userError(w, r, err)
		return
	}
	app.Http.Ok(w, r, envelop{"user": user}, "")
}

func (app *Application) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := app.extractIDParam(w, r)
	if !ok {
		return
	}
	if err := app.services.Users.Delete(r.Context(), id); err != nil {
		app.userError(w, r, err)
		return
	}
	app.Http.NoContent(w, r, "")
}

func (app *Application) userError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, users.ErrUserNotFound):
		app.Http.NotFound(w, r, err.Error())
	case errors.Is(err, users.ErrUserAlreadyExists):
		app.Http.BadRequest(w, r, err.Error())
	default:
		app.Http.ServerError(w, r, err, "")
	}
}
