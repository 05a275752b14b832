package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"filme-catalog/internal/data/entity"
	"filme-catalog/pkg/database"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	filmeTable   = "filme"
	filmeColumns = `id, titulo, descricao, duracao, genero, nota, disponibilidade, "createdAt"`

	uniqueViolation = "23505"
)

// FilmeFilter narrows FindAll and CountAll. Nil fields are ignored; the rest
// are combined with AND. Limit 0 means no limit.
type FilmeFilter struct {
	Titulo          *string
	Descricao       *string
	Genero          *string
	Duracao         *int
	Nota            *float64
	Disponibilidade *bool

	Limit  int
	Offset int
}

type FilmeRepository interface {
	FindAll(ctx context.Context, filter FilmeFilter) ([]*entity.Filme, error)
	CountAll(ctx context.Context, filter FilmeFilter) (int64, error)
	FindByID(ctx context.Context, id int64) (*entity.Filme, error)
	FindByTitle(ctx context.Context, titulo string) (*entity.Filme, error)
	Create(ctx context.Context, filme *entity.Filme) error
	CreateBatch(ctx context.Context, filmes []*entity.Filme) (int64, error)
	Update(ctx context.Context, filme *entity.Filme) error
	Delete(ctx context.Context, id int64) (*entity.Filme, error)
}

type filmeRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewFilmeRepository(db database.PgxIface, log *zap.Logger) FilmeRepository {
	return &filmeRepository{
		db:  db,
		log: log.With(zap.String("repository", "filme")),
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFilme(row rowScanner) (*entity.Filme, error) {
	var (
		filme  entity.Filme
		genero string
	)
	err := row.Scan(
		&filme.ID,
		&filme.Titulo,
		&filme.Descricao,
		&filme.Duracao,
		&genero,
		&filme.Nota,
		&filme.Disponibilidade,
		&filme.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	filme.Genero = entity.Genero(genero)
	return &filme, nil
}

// escapeLike makes s safe to embed in an ILIKE pattern.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// where renders the filter as a WHERE clause starting at placeholder $1.
func (f FilmeFilter) where() (string, []any) {
	var (
		clauses []string
		args    []any
	)

	like := func(column string, value *string) {
		if value == nil || *value == "" {
			return
		}
		args = append(args, escapeLike(*value))
		clauses = append(clauses, fmt.Sprintf("%s ILIKE '%%' || $%d || '%%'", column, len(args)))
	}
	equal := func(column string, value any) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	like("titulo", f.Titulo)
	like("descricao", f.Descricao)
	like("genero", f.Genero)
	if f.Duracao != nil {
		equal("duracao", *f.Duracao)
	}
	if f.Nota != nil {
		equal("nota", *f.Nota)
	}
	if f.Disponibilidade != nil {
		equal("disponibilidade", *f.Disponibilidade)
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *filmeRepository) FindAll(ctx context.Context, filter FilmeFilter) ([]*entity.Filme, error) {
	where, args := filter.where()

	var queryBuilder strings.Builder
	queryBuilder.WriteString("SELECT " + filmeColumns + " FROM " + filmeTable)
	queryBuilder.WriteString(where)
	queryBuilder.WriteString(` ORDER BY "createdAt" DESC, id DESC`)

	if filter.Limit > 0 {
		args = append(args, filter.Limit, filter.Offset)
		queryBuilder.WriteString(fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)-1, len(args)))
	}

	rows, err := r.db.Query(ctx, queryBuilder.String(), args...)
	if err != nil {
		r.log.Error("Failed to find all filmes",
			zap.Error(err),
			zap.Int("limit", filter.Limit),
			zap.Int("offset", filter.Offset),
		)
		return nil, fmt.Errorf("failed to find filmes: %w", err)
	}
	defer rows.Close()

	filmes := []*entity.Filme{}
	for rows.Next() {
		filme, err := scanFilme(rows)
		if err != nil {
			r.log.Error("Failed to scan filme row", zap.Error(err))
			return nil, fmt.Errorf("failed to scan filme: %w", err)
		}
		filmes = append(filmes, filme)
	}

	if err := rows.Err(); err != nil {
		r.log.Error("Rows iteration error", zap.Error(err))
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	r.log.Debug("Filmes found", zap.Int("count", len(filmes)))

	return filmes, nil
}

func (r *filmeRepository) CountAll(ctx context.Context, filter FilmeFilter) (int64, error) {
	where, args := filter.where()
	query := "SELECT COUNT(*) FROM " + filmeTable + where

	var total int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		r.log.Error("Failed to count filmes", zap.Error(err))
		return 0, fmt.Errorf("failed to count filmes: %w", err)
	}

	return total, nil
}

func (r *filmeRepository) FindByID(ctx context.Context, id int64) (*entity.Filme, error) {
	query := "SELECT " + filmeColumns + " FROM " + filmeTable + " WHERE id = $1"

	filme, err := scanFilme(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find filme by ID",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, fmt.Errorf("failed to find filme: %w", err)
	}

	return filme, nil
}

func (r *filmeRepository) FindByTitle(ctx context.Context, titulo string) (*entity.Filme, error) {
	query := "SELECT " + filmeColumns + " FROM " + filmeTable + " WHERE titulo = $1 LIMIT 1"

	filme, err := scanFilme(r.db.QueryRow(ctx, query, titulo))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find filme by title",
			zap.Error(err),
			zap.String("titulo", titulo),
		)
		return nil, fmt.Errorf("failed to find filme by title: %w", err)
	}

	return filme, nil
}

func (r *filmeRepository) Create(ctx context.Context, filme *entity.Filme) error {
	query := `
		INSERT INTO filme (titulo, descricao, duracao, genero, nota, disponibilidade)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + filmeColumns

	created, err := scanFilme(r.db.QueryRow(ctx, query,
		filme.Titulo,
		filme.Descricao,
		filme.Duracao,
		string(filme.Genero),
		filme.Nota,
		filme.Disponibilidade,
	))

	if isUniqueViolation(err) {
		return ErrDuplicateTitle
	}
	if err != nil {
		r.log.Error("Failed to create filme",
			zap.Error(err),
			zap.String("titulo", filme.Titulo),
		)
		return fmt.Errorf("failed to create filme: %w", err)
	}

	// Report what the database stored, not what was sent.
	*filme = *created
	return nil
}

// CreateBatch bulk loads rows with COPY. Rows bypass every business rule.
func (r *filmeRepository) CreateBatch(ctx context.Context, filmes []*entity.Filme) (int64, error) {
	columns := []string{"titulo", "descricao", "duracao", "genero", "nota", "disponibilidade"}

	n, err := r.db.CopyFrom(ctx, pgx.Identifier{filmeTable}, columns,
		pgx.CopyFromSlice(len(filmes), func(i int) ([]any, error) {
			f := filmes[i]
			return []any{f.Titulo, f.Descricao, f.Duracao, string(f.Genero), f.Nota, f.Disponibilidade}, nil
		}),
	)
	if err != nil {
		r.log.Error("Failed to bulk insert filmes",
			zap.Error(err),
			zap.Int("count", len(filmes)),
		)
		return 0, fmt.Errorf("failed to bulk insert filmes: %w", err)
	}

	return n, nil
}

// Update overwrites every mutable column. Rows with disponibilidade = false
// are never touched; such a miss is reported as ErrImmutable.
func (r *filmeRepository) Update(ctx context.Context, filme *entity.Filme) error {
	query := `
		UPDATE filme
		SET titulo = $2, descricao = $3, duracao = $4, genero = $5,
		    nota = $6, disponibilidade = $7
		WHERE id = $1 AND disponibilidade = true
		RETURNING ` + filmeColumns

	updated, err := scanFilme(r.db.QueryRow(ctx, query,
		filme.ID,
		filme.Titulo,
		filme.Descricao,
		filme.Duracao,
		string(filme.Genero),
		filme.Nota,
		filme.Disponibilidade,
	))

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return r.resolveMiss(ctx, filme.ID, ErrImmutable)
	case isUniqueViolation(err):
		return ErrDuplicateTitle
	case err != nil:
		r.log.Error("Failed to update filme",
			zap.Error(err),
			zap.Int64("filme_id", filme.ID),
		)
		return fmt.Errorf("failed to update filme: %w", err)
	}

	*filme = *updated
	return nil
}

// Delete removes the row and returns it. Rows whose nota is at or above the
// protection threshold are never removed; such a miss is reported as
// ErrProtected.
func (r *filmeRepository) Delete(ctx context.Context, id int64) (*entity.Filme, error) {
	query := "DELETE FROM " + filmeTable + " WHERE id = $1 AND nota < $2 RETURNING " + filmeColumns

	deleted, err := scanFilme(r.db.QueryRow(ctx, query, id, entity.NotaProtegida))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.resolveMiss(ctx, id, ErrProtected)
	}
	if err != nil {
		r.log.Error("Failed to delete filme",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, fmt.Errorf("failed to delete filme: %w", err)
	}

	r.log.Info("Filme deleted", zap.Int64("filme_id", id))
	return deleted, nil
}

// resolveMiss tells a missing row apart from one excluded by a guard.
func (r *filmeRepository) resolveMiss(ctx context.Context, id int64, guardErr error) error {
	existing, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}
	return guardErr
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
