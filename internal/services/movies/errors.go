package movies

import "errors"

var (
	ErrMovieNotFound   = errors.New("movie not found")
	ErrRelatedNotFound = errors.New("referenced genre, director or actor does not exist")
)
