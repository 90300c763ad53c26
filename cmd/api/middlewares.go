package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/MaximJrr/drf-movies/internal/domain/models"
	"github.com/MaximJrr/drf-movies/internal/services/auth"
	"github.com/MaximJrr/drf-movies/internal/services/permissions"

	"golang.org/x/time/rate"
)

func (app *Application) Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil && rec != http.ErrAbortHandler {
				err, ok := rec.(error)
				if !ok {
					err = fmt.Errorf("%v", rec)
				}
				app.Http.ServerError(w, r, err, "")
			}
		}()

		next.ServeHTTP(w, r)
	})
}

func (app *Application) RateLimiter(next http.Handler) http.Handler {
	const op = "middlewares.RateLimiter"
	log := app.log.With("op", op)
	type client struct {
		limiter  *rate.Limiter
		lastSeen time.Time
	}
	clients := make(map[string]*client)
	var mu sync.Mutex
	go func() {
		for {
			mu.Lock()
			for ip, client := range clients {
				if time.Since(client.lastSeen) > 5*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
			time.Sleep(5 * time.Minute)
		}
	}()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.cfg.Limiter.Enabled {
			ip, _, err := net.SplitHostPort(r.RemoteAddr)
			if err != nil {
				app.Http.ServerError(w, r, err, "")
				return
			}
			mu.Lock()
			if _, ok := clients[ip]; !ok {
				clients[ip] = &client{
					limiter: rate.NewLimiter(rate.Limit(app.cfg.Limiter.Rps), app.cfg.Limiter.Burst),
				}
			}
			clients[ip].lastSeen = time.Now()
			limiter := clients[ip].limiter
			mu.Unlock()
			if !limiter.Allow() {
				log.Warn("rate limit exceeded", "ip", ip)
				app.Http.Response(
					w, r,
					envelop{"error": "rate limit exceeded"},
					"Can't process request see an error below.",
					http.StatusTooManyRequests,
				)
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

type CtxKey string

const CtxKeyUser CtxKey = "user"

func (app *Application) contextGetUser(r *http.Request) *models.User {
	user, ok := r.Context().Value(CtxKeyUser).(*models.User)
	if !ok || user == nil {
		return models.AnonymousUser
	}
	return user
}

// Authenticate resolves the caller from the Authorization header. Requests
// without a header pass through as AnonymousUser; requests with a broken or
// expired token are rejected here.
func (app *Application) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := models.AnonymousUser

		authHeader := r.Header.Get("Authorization")
		if authHeader != "" {
			const bearerLength = len("Bearer ")
			if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < bearerLength+1 {
				app.log.Warn("Invalid auth header", "header", authHeader)
				app.Http.Unauthorized(w, r, "Invalid Authorization header, should be 'Bearer <token>'")
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")
			userID, err := app.services.Auth.Tokens.Verify(token)
			if err != nil {
				app.log.Warn("Invalid or expired token")
				app.Http.Unauthorized(w, r, "Invalid or expired token")
				return
			}
			user, err = app.services.Auth.GetUser(r.Context(), userID)
			if err != nil {
				if errors.Is(err, auth.ErrUserNotFound) {
					app.log.Warn("user from token not found", "user_id", userID)
					app.Http.Unauthorized(w, r, "Invalid or expired token")
					return
				}
				app.Http.ServerError(w, r, err, "")
				return
			}
		}
		r = r.WithContext(context.WithValue(r.Context(), CtxKeyUser, user))
		next.ServeHTTP(w, r)
	})
}

func (app *Application) requireAuthenticatedUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if app.contextGetUser(r).IsAnonymous() {
			app.Http.Unauthorized(w, r, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// requirePermission gates a route group with one of the permission rules.
// The action kind is derived from the HTTP method; detail-level ownership
// checks happen in the handlers where the resource is loaded.
func (app *Application) requirePermission(rule permissions.Rule) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			caller := app.contextGetUser(r)
			action := permissions.ActionRead
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
				action = permissions.ActionWrite
			}
			if !rule(caller, action, permissions.NoOwner) {
				app.permissionDenied(w, r, caller)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (app *Application) permissionDenied(w http.ResponseWriter, r *http.Request, caller *models.User) {
	if caller.IsAnonymous() {
		app.Http.Unauthorized(w, r, "Authentication required")
		return
	}
	app.Http.Forbidden(w, r, "You do not have permission to perform this action")
}
