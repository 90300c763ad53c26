package models

import "github.com/MaximJrr/drf-movies/internal/storage/postgres"

type Models struct {
	Movie     *MovieModel
	Genre     *GenreModel
	Actor     *ActorModel
	Director  *DirectorModel
	Review    *ReviewModel
	User      *UserModel
	Blacklist *BlacklistModel
}

func New(db *postgres.Storage) *Models {
	return &Models{
		Movie:     &MovieModel{db.Conn},
		Genre:     &GenreModel{db.Conn},
		Actor:     &ActorModel{db.Conn},
		Director:  &DirectorModel{db.Conn},
		Review:    &ReviewModel{db.Conn},
		User:      &UserModel{db.Conn},
		Blacklist: &BlacklistModel{db.Conn},
	}
}
