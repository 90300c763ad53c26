package catalog

import "errors"

var (
	ErrGenreNotFound    = errors.New("genre not found")
	ErrActorNotFound    = errors.New("actor not found")
	ErrDirectorNotFound = errors.New("director not found")
)
