package models

import (
	"time"

	"github.com/MaximJrr/drf-movies/internal/domain/fields"
)

type Movie struct {
	ID             int64        `json:"id"`
	Title          string       `json:"title"`
	Description    *string      `json:"description,omitempty"`
	ReleaseDate    *fields.Date `json:"release_date,omitempty"`
	Rating         *float64     `json:"rating,omitempty"`          // Average rating from 0.0 to 10.0
	Duration       *int32       `json:"duration,omitempty"`        // Runtime in minutes
	Budget         *int64       `json:"budget,omitempty"`
	AgeRestriction *int32       `json:"age_restriction,omitempty"` // Allowed values are 0 to 18
	GenreID        *int64       `json:"genre,omitempty"`
	DirectorID     *int64       `json:"director,omitempty"`
	Actors         []int64      `json:"actors"`
	CreatedAt      time.Time    `json:"-"`
}

// MovieSortColumns lists the movie columns the list endpoint may sort by,
// spelled the way the storage layer expects them.
var MovieSortColumns = []string{
	"id", "title", "description", "release_date", "rating", "duration",
	"budget", "age_restriction", "genre_id", "director_id", "created_at",
}

// MovieRelation names the foreign-key side of a related-movies lookup.
type MovieRelation int

const (
	RelatedByGenre MovieRelation = iota
	RelatedByActor
	RelatedByDirector
)

// MovieShort is the trimmed movie representation returned by the
// actors/directors related-movies endpoints.
type MovieShort struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

func (m *Movie) Short() MovieShort {
	return MovieShort{ID: m.ID, Title: m.Title}
}

type Genre struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Actor struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	BirthDate *fields.Date `json:"birth_date,omitempty"`
}

type Director struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	BirthDate *fields.Date `json:"birth_date,omitempty"`
}

type Review struct {
	ID        int64     `json:"id"`
	Comment   string    `json:"comment"`
	Rating    float64   `json:"rating"`
	MovieID   int64     `json:"movie"`
	UserID    int64     `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	LastName     string    `json:"last_name,omitempty"`
	Username     string    `json:"user_name"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	IsSuperuser  bool      `json:"is_superuser"`
	RegisteredAt time.Time `json:"registered_at"`
}

// AnonymousUser marks an unauthenticated caller in the request context.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser || u == nil
}

type AuthTokens struct {
	AccessToken  string `json:"access"`
	RefreshToken string `json:"refresh"`
}
