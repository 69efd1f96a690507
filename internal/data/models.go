package data

import (
	"database/sql"
	"errors"

	"github.com/leebrouse/movieBase/internal/jsonlog"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateEmail = errors.New("duplicate email")
)

type Models struct {
	Movies MovieModel
	People PersonModel
	Users  UserModel
}

func NewModels(db *sql.DB, logger *jsonlog.Logger) Models {
	return Models{
		Movies: MovieModel{DB: db, Logger: logger},
		People: PersonModel{DB: db},
		Users:  UserModel{DB: db},
	}
}
