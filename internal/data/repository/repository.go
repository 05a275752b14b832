package repository

import (
	"context"

	"filme-catalog/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	Filme FilmeRepository

	db database.PgxIface
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		Filme: NewFilmeRepository(db, log),
		db:    db,
	}
}

// Ping checks the database connection.
func (r *Repository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
