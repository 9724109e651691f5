package postgre

import (
	"database/sql"

	"widget-srv/internal/widget/repository"
	"widget-srv/pkg/log"
)

type implRepository struct {
	db *sql.DB
	l  log.Logger
}

// New returns the repository reading the reporting database.
func New(db *sql.DB, l log.Logger) repository.PostgresRepository {
	return &implRepository{
		db: db,
		l:  l,
	}
}
