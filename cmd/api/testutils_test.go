package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/MaximJrr/drf-movies/internal/config"
	"github.com/MaximJrr/drf-movies/internal/domain/fields"
	"github.com/MaximJrr/drf-movies/internal/domain/filters"
	"github.com/MaximJrr/drf-movies/internal/domain/models"
	libvalidator "github.com/MaximJrr/drf-movies/internal/lib/validator"
	"github.com/MaximJrr/drf-movies/internal/services"
	"github.com/MaximJrr/drf-movies/internal/services/auth"
	"github.com/MaximJrr/drf-movies/internal/services/catalog"
	"github.com/MaximJrr/drf-movies/internal/services/movies"
	"github.com/MaximJrr/drf-movies/internal/services/reviews"
	"github.com/MaximJrr/drf-movies/internal/services/users"
	"github.com/MaximJrr/drf-movies/internal/storage"

	govalidator "github.com/go-playground/validator/v10"
	"github.com/gorilla/schema"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeStore is an in-memory stand-in for the postgres models, shared by all
// handler tests. Access is guarded by a single mutex since the semantics of
// each model are trivial.
type fakeStore struct {
	mu        sync.Mutex
	nextID    int64
	users     map[int64]*models.User
	movies    map[int64]*models.Movie
	genres    map[int64]*models.Genre
	actors    map[int64]*models.Actor
	directors map[int64]*models.Director
	reviews   map[int64]*models.Review
	revoked   map[string]time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*models.User),
		movies:    make(map[int64]*models.Movie),
		genres:    make(map[int64]*models.Genre),
		actors:    make(map[int64]*models.Actor),
		directors: make(map[int64]*models.Director),
		reviews:   make(map[int64]*models.Review),
		revoked:   make(map[string]time.Time),
	}
}

func (s *fakeStore) id() int64 {
	s.nextID++
	return s.nextID
}

type fakeUsers struct{ s *fakeStore }

func (f fakeUsers) Get(_ context.Context, id int64) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	user, ok := f.s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *user
	return &cp, nil
}

func (f fakeUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, user := range f.s.users {
		if user.Username == username {
			cp := *user
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (f fakeUsers) List(_ context.Context) ([]models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := make([]models.User, 0, len(f.s.users))
	for _, user := range f.s.users {
		list = append(list, *user)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeUsers) Insert(_ context.Context, user *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, existing := range f.s.users {
		if existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email) {
			return nil, storage.ErrConflict
		}
	}
	cp := *user
	cp.ID = f.s.id()
	cp.RegisteredAt = time.Now()
	f.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeUsers) Update(_ context.Context, user *models.User) (*models.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[user.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	for id, existing := range f.s.users {
		if id != user.ID && (existing.Username == user.Username || strings.EqualFold(existing.Email, user.Email)) {
			return nil, storage.ErrConflict
		}
	}
	cp := *user
	f.s.users[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeUsers) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.users[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.users, id)
	return nil
}

type fakeMovies struct{ s *fakeStore }

func (f fakeMovies) Get(_ context.Context, id int64) (*models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	movie, ok := f.s.movies[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *movie
	return &cp, nil
}

func (f fakeMovies) all() []models.Movie {
	list := make([]models.Movie, 0, len(f.s.movies))
	for _, movie := range f.s.movies {
		list = append(list, *movie)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (f fakeMovies) List(_ context.Context, fl filters.Filters) ([]models.Movie, int, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := f.all()
	total := len(list)
	column := strings.ToLower(fl.SortColumn())
	desc := fl.SortDirection() == filters.DescSort
	sort.SliceStable(list, func(i, j int) bool {
		if desc {
			return lessMovie(&list[j], &list[i], column)
		}
		return lessMovie(&list[i], &list[j], column)
	})
	start := fl.Offset()
	if start > total {
		start = total
	}
	end := start + fl.Limit()
	if end > total {
		end = total
	}
	return list[start:end], total, nil
}

func lessMovie(a, b *models.Movie, column string) bool {
	switch column {
	case "title":
		return a.Title < b.Title
	case "rating":
		var ra, rb float64
		if a.Rating != nil {
			ra = *a.Rating
		}
		if b.Rating != nil {
			rb = *b.Rating
		}
		return ra < rb
	case "release_date":
		var ta, tb time.Time
		if a.ReleaseDate != nil {
			ta = a.ReleaseDate.Time
		}
		if b.ReleaseDate != nil {
			tb = b.ReleaseDate.Time
		}
		return ta.Before(tb)
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return a.ID < b.ID
	}
}

func (f fakeMovies) ListByYear(_ context.Context, year int) ([]models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var list []models.Movie
	for _, movie := range f.all() {
		if movie.ReleaseDate != nil && movie.ReleaseDate.Year() == year {
			list = append(list, movie)
		}
	}
	return list, nil
}

func (f fakeMovies) ListByAgeRestriction(_ context.Context, age int) ([]models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var list []models.Movie
	for _, movie := range f.all() {
		if movie.AgeRestriction != nil && int(*movie.AgeRestriction) == age {
			list = append(list, movie)
		}
	}
	return list, nil
}

func (f fakeMovies) SearchByTitle(_ context.Context, search string) ([]models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var list []models.Movie
	for _, movie := range f.all() {
		if strings.Contains(strings.ToLower(movie.Title), strings.ToLower(search)) {
			list = append(list, movie)
		}
	}
	return list, nil
}

func (f fakeMovies) ListRelated(_ context.Context, rel models.MovieRelation, id int64) ([]models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var list []models.Movie
	for _, movie := range f.all() {
		switch rel {
		case models.RelatedByGenre:
			if movie.GenreID != nil && *movie.GenreID == id {
				list = append(list, movie)
			}
		case models.RelatedByDirector:
			if movie.DirectorID != nil && *movie.DirectorID == id {
				list = append(list, movie)
			}
		case models.RelatedByActor:
			for _, actorID := range movie.Actors {
				if actorID == id {
					list = append(list, movie)
					break
				}
			}
		}
	}
	return list, nil
}

func (f fakeMovies) checkRefs(movie *models.Movie) error {
	if movie.GenreID != nil {
		if _, ok := f.s.genres[*movie.GenreID]; !ok {
			return storage.ErrInvalidRef
		}
	}
	if movie.DirectorID != nil {
		if _, ok := f.s.directors[*movie.DirectorID]; !ok {
			return storage.ErrInvalidRef
		}
	}
	for _, actorID := range movie.Actors {
		if _, ok := f.s.actors[actorID]; !ok {
			return storage.ErrInvalidRef
		}
	}
	return nil
}

func (f fakeMovies) Insert(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if err := f.checkRefs(movie); err != nil {
		return nil, err
	}
	cp := *movie
	cp.ID = f.s.id()
	cp.CreatedAt = time.Now()
	if cp.Actors == nil {
		cp.Actors = []int64{}
	}
	f.s.movies[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeMovies) Update(_ context.Context, movie *models.Movie) (*models.Movie, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[movie.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	if err := f.checkRefs(movie); err != nil {
		return nil, err
	}
	cp := *movie
	f.s.movies[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeMovies) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.movies, id)
	return nil
}

type fakeGenres struct{ s *fakeStore }

func (f fakeGenres) Get(_ context.Context, id int64) (*models.Genre, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	genre, ok := f.s.genres[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *genre
	return &cp, nil
}

func (f fakeGenres) List(_ context.Context) ([]models.Genre, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := make([]models.Genre, 0, len(f.s.genres))
	for _, genre := range f.s.genres {
		list = append(list, *genre)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeGenres) Insert(_ context.Context, name string) (*models.Genre, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	genre := &models.Genre{ID: f.s.id(), Name: name}
	f.s.genres[genre.ID] = genre
	cp := *genre
	return &cp, nil
}

func (f fakeGenres) Update(_ context.Context, genre *models.Genre) (*models.Genre, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.genres[genre.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *genre
	f.s.genres[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeGenres) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.genres[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.genres, id)
	return nil
}

type fakeActors struct{ s *fakeStore }

func (f fakeActors) Get(_ context.Context, id int64) (*models.Actor, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	actor, ok := f.s.actors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *actor
	return &cp, nil
}

func (f fakeActors) List(_ context.Context) ([]models.Actor, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := make([]models.Actor, 0, len(f.s.actors))
	for _, actor := range f.s.actors {
		list = append(list, *actor)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeActors) Insert(_ context.Context, name string, birthDate *fields.Date) (*models.Actor, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	actor := &models.Actor{ID: f.s.id(), Name: name, BirthDate: birthDate}
	f.s.actors[actor.ID] = actor
	cp := *actor
	return &cp, nil
}

func (f fakeActors) Update(_ context.Context, actor *models.Actor) (*models.Actor, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.actors[actor.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *actor
	f.s.actors[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeActors) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.actors[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.actors, id)
	return nil
}

type fakeDirectors struct{ s *fakeStore }

func (f fakeDirectors) Get(_ context.Context, id int64) (*models.Director, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	director, ok := f.s.directors[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *director
	return &cp, nil
}

func (f fakeDirectors) List(_ context.Context) ([]models.Director, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	list := make([]models.Director, 0, len(f.s.directors))
	for _, director := range f.s.directors {
		list = append(list, *director)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list, nil
}

func (f fakeDirectors) Insert(_ context.Context, name string, birthDate *fields.Date) (*models.Director, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	director := &models.Director{ID: f.s.id(), Name: name, BirthDate: birthDate}
	f.s.directors[director.ID] = director
	cp := *director
	return &cp, nil
}

func (f fakeDirectors) Update(_ context.Context, director *models.Director) (*models.Director, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.directors[director.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *director
	f.s.directors[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeDirectors) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.directors[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.directors, id)
	return nil
}

type fakeReviews struct{ s *fakeStore }

func (f fakeReviews) Get(_ context.Context, id int64) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	review, ok := f.s.reviews[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *review
	return &cp, nil
}

func (f fakeReviews) list(match func(*models.Review) bool) []models.Review {
	var list []models.Review
	for _, review := range f.s.reviews {
		if match(review) {
			list = append(list, *review)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

func (f fakeReviews) List(_ context.Context) ([]models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.list(func(*models.Review) bool { return true }), nil
}

func (f fakeReviews) ListForUser(_ context.Context, userID int64) ([]models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.list(func(r *models.Review) bool { return r.UserID == userID }), nil
}

func (f fakeReviews) ListForMovie(_ context.Context, movieID int64) ([]models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return f.list(func(r *models.Review) bool { return r.MovieID == movieID }), nil
}

func (f fakeReviews) Insert(_ context.Context, comment string, rating float64, movieID, userID int64) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.movies[movieID]; !ok {
		return nil, storage.ErrInvalidRef
	}
	review := &models.Review{
		ID:        f.s.id(),
		Comment:   comment,
		Rating:    rating,
		MovieID:   movieID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	f.s.reviews[review.ID] = review
	cp := *review
	return &cp, nil
}

func (f fakeReviews) Update(_ context.Context, review *models.Review) (*models.Review, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[review.ID]; !ok {
		return nil, storage.ErrNotFound
	}
	cp := *review
	f.s.reviews[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f fakeReviews) Delete(_ context.Context, id int64) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	if _, ok := f.s.reviews[id]; !ok {
		return storage.ErrNotFound
	}
	delete(f.s.reviews, id)
	return nil
}

type fakeBlacklist struct{ s *fakeStore }

func (f fakeBlacklist) Add(_ context.Context, jti string, _ int64, expiresAt time.Time) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.revoked[jti] = expiresAt
	return nil
}

func (f fakeBlacklist) Contains(_ context.Context, jti string) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	_, ok := f.s.revoked[jti]
	return ok, nil
}

func (f fakeBlacklist) PurgeExpired(_ context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	var purged int64
	for jti, expiresAt := range f.s.revoked {
		if expiresAt.Before(time.Now()) {
			delete(f.s.revoked, jti)
			purged++
		}
	}
	return purged, nil
}

type noopMailer struct{}

func (noopMailer) Send(string, string, any) error { return nil }

// syncTasks runs queued tasks inline so tests never race the worker pool.
type syncTasks struct{}

func (syncTasks) Add(task func()) { task() }

func newTestApplication(t *testing.T, store *fakeStore) *Application {
	t.Helper()
	cfg := &config.Config{
		Auth: config.Auth{
			Secret:          "test-secret",
			AccessTokenTTL:  time.Minute,
			RefreshTokenTTL: time.Hour,
		},
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	v := govalidator.New(govalidator.WithRequiredStructEnabled())
	require.NoError(t, v.RegisterValidation("sortbymoviefield", libvalidator.ValidateSortByMovieField))
	queryDecoder := schema.NewDecoder()
	queryDecoder.IgnoreUnknownKeys(true)
	tokens := auth.NewTokenManager(
		cfg.Auth.Secret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
		fakeBlacklist{store},
	)
	return &Application{
		cfg:          cfg,
		log:          log,
		validator:    v,
		queryDecoder: queryDecoder,
		services: &services.Services{
			Auth:    auth.New(log, fakeUsers{store}, tokens, noopMailer{}, syncTasks{}),
			Movies:  movies.New(log, fakeMovies{store}),
			Catalog: catalog.New(log, fakeGenres{store}, fakeActors{store}, fakeDirectors{store}),
			Reviews: reviews.New(log, fakeReviews{store}),
			Users:   users.New(log, fakeUsers{store}),
		},
		Http: &Http{log: log, cfg: cfg},
	}
}

func seedUser(t *testing.T, store *fakeStore, username, password string, superuser bool) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	user, err := fakeUsers{store}.Insert(context.Background(), &models.User{
		Name:         username,
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: hash,
		IsSuperuser:  superuser,
	})
	require.NoError(t, err)
	return user
}

func accessTokenFor(t *testing.T, app *Application, user *models.User) string {
	t.Helper()
	tokens, err := app.services.Auth.Tokens.Issue(user)
	require.NoError(t, err)
	return tokens.AccessToken
}

func newRawRequest(method, path string) (*http.Request, *httptest.ResponseRecorder) {
	return httptest.NewRequest(method, path, nil), httptest.NewRecorder()
}

// doRequest sends a request through the full middleware chain and decodes the
// response envelope.
func doRequest(t *testing.T, app *Application, method, path, token string, body any) (*http.Response, Response) {
	t.Helper()
	var buf io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.routes().ServeHTTP(rec, req)
	resp := rec.Result()
	t.Cleanup(func() { resp.Body.Close() })
	var envelope Response
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&envelope))
	}
	return resp, envelope
}
