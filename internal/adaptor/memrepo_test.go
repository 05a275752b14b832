package adaptor_test

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"filme-catalog/internal/data/entity"
	"filme-catalog/internal/data/repository"
)

// memFilmeRepository mimics the SQL repository, guards included.
type memFilmeRepository struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]entity.Filme
	clock  time.Time
	failOn string
}

func newMemFilmeRepository() *memFilmeRepository {
	return &memFilmeRepository{
		nextID: 1,
		rows:   make(map[int64]entity.Filme),
		clock:  time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

var errBroken = errors.New("connection refused")

func (m *memFilmeRepository) fail(op string) error {
	if m.failOn == op {
		return errBroken
	}
	return nil
}

func (m *memFilmeRepository) insert(f entity.Filme) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock = m.clock.Add(time.Minute)
	f.ID = m.nextID
	f.CreatedAt = m.clock
	m.rows[f.ID] = f
	m.nextID++
	return f.ID
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}

func (m *memFilmeRepository) matching(filter repository.FilmeFilter) []*entity.Filme {
	var out []*entity.Filme
	for _, row := range m.rows {
		f := row
		switch {
		case filter.Titulo != nil && !containsFold(f.Titulo, *filter.Titulo):
		case filter.Descricao != nil && !containsFold(f.Descricao, *filter.Descricao):
		case filter.Genero != nil && !containsFold(string(f.Genero), *filter.Genero):
		case filter.Duracao != nil && f.Duracao != *filter.Duracao:
		case filter.Nota != nil && f.Nota != *filter.Nota:
		case filter.Disponibilidade != nil && f.Disponibilidade != *filter.Disponibilidade:
		default:
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (m *memFilmeRepository) FindAll(_ context.Context, filter repository.FilmeFilter) ([]*entity.Filme, error) {
	if err := m.fail("FindAll"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.matching(filter)
	if filter.Limit > 0 {
		if filter.Offset >= len(out) {
			return []*entity.Filme{}, nil
		}
		end := filter.Offset + filter.Limit
		if end > len(out) {
			end = len(out)
		}
		out = out[filter.Offset:end]
	}
	if out == nil {
		out = []*entity.Filme{}
	}
	return out, nil
}

func (m *memFilmeRepository) CountAll(_ context.Context, filter repository.FilmeFilter) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.matching(filter))), nil
}

func (m *memFilmeRepository) FindByID(_ context.Context, id int64) (*entity.Filme, error) {
	if err := m.fail("FindByID"); err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	f, ok := m.rows[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (m *memFilmeRepository) FindByTitle(_ context.Context, titulo string) (*entity.Filme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, f := range m.rows {
		if f.Titulo == titulo {
			found := f
			return &found, nil
		}
	}
	return nil, nil
}

func (m *memFilmeRepository) titleTaken(titulo string, except int64) bool {
	for id, f := range m.rows {
		if id != except && f.Titulo == titulo {
			return true
		}
	}
	return false
}

func (m *memFilmeRepository) Create(_ context.Context, filme *entity.Filme) error {
	if err := m.fail("Create"); err != nil {
		return err
	}
	m.mu.Lock()
	taken := m.titleTaken(filme.Titulo, 0)
	m.mu.Unlock()
	if taken {
		return repository.ErrDuplicateTitle
	}

	id := m.insert(*filme)

	m.mu.Lock()
	defer m.mu.Unlock()
	*filme = m.rows[id]
	return nil
}

func (m *memFilmeRepository) CreateBatch(_ context.Context, filmes []*entity.Filme) (int64, error) {
	for _, f := range filmes {
		m.insert(*f)
	}
	return int64(len(filmes)), nil
}

func (m *memFilmeRepository) Update(_ context.Context, filme *entity.Filme) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rows[filme.ID]
	if !ok {
		return repository.ErrNotFound
	}
	if !stored.Disponibilidade {
		return repository.ErrImmutable
	}
	if m.titleTaken(filme.Titulo, filme.ID) {
		return repository.ErrDuplicateTitle
	}

	updated := *filme
	updated.CreatedAt = stored.CreatedAt
	m.rows[filme.ID] = updated
	*filme = updated
	return nil
}

func (m *memFilmeRepository) Delete(_ context.Context, id int64) (*entity.Filme, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	stored, ok := m.rows[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if stored.Protegido() {
		return nil, repository.ErrProtected
	}
	delete(m.rows, id)
	return &stored, nil
}

// setAvailability flips disponibilidade directly, the way a data fix would.
func (m *memFilmeRepository) setAvailability(id int64, available bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	f := m.rows[id]
	f.Disponibilidade = available
	m.rows[id] = f
}
