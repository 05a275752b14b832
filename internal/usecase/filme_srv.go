package usecase

import (
	"context"
	"fmt"
	"strconv"

	"filme-catalog/internal/data/repository"
	"filme-catalog/internal/dto/request"
	"filme-catalog/internal/dto/response"
	"filme-catalog/pkg/utils"

	"go.uber.org/zap"
)

type FilmeService interface {
	GetFilmes(ctx context.Context, query request.FilmeQuery) (*response.PaginatedResponse[response.FilmeResponse], error)
	GetFilmeByID(ctx context.Context, id int64) (*response.FilmeResponse, error)
	CreateFilme(ctx context.Context, payload request.FilmePayload) (*response.FilmeResponse, error)
	UpdateFilme(ctx context.Context, id int64, payload request.FilmePayload) (*response.FilmeResponse, error)
	DeleteFilme(ctx context.Context, id int64) (*response.FilmeResponse, error)
}

type filmeService struct {
	repo *repository.Repository
	log  *zap.Logger
}

func NewFilmeService(
	repo *repository.Repository,
	log *zap.Logger,
) FilmeService {
	return &filmeService{
		repo: repo,
		log:  log.With(zap.String("service", "filme")),
	}
}

func (s *filmeService) GetFilmes(ctx context.Context, query request.FilmeQuery) (*response.PaginatedResponse[response.FilmeResponse], error) {
	filter, page, err := buildFilter(query)
	if err != nil {
		s.log.Warn("Invalid filme filters", zap.Error(err))
		return nil, err
	}

	filmes, err := s.repo.Filme.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("get filmes: %w", err)
	}
	data := response.FilmesToResponse(filmes)

	if page == nil {
		s.log.Debug("Filmes retrieved", zap.Int("count", len(filmes)))
		return response.NewListResponse(data), nil
	}

	total, err := s.repo.Filme.CountAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count filmes: %w", err)
	}

	s.log.Debug("Filmes retrieved",
		zap.Int("count", len(filmes)),
		zap.Int64("total", total),
		zap.Int("page", page.Page),
		zap.Int("per_page", page.Limit()),
	)

	return response.NewPaginatedResponse(data, page.Page, page.Limit(), total), nil
}

func (s *filmeService) GetFilmeByID(ctx context.Context, id int64) (*response.FilmeResponse, error) {
	filme, err := s.repo.Filme.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get filme by id: %w", err)
	}
	if filme == nil {
		return nil, NewRuleError(ReasonNotFound)
	}

	resp := response.FilmeToResponse(filme)
	return &resp, nil
}

func (s *filmeService) CreateFilme(ctx context.Context, payload request.FilmePayload) (*response.FilmeResponse, error) {
	filme, err := ValidateCreate(ctx, payload, s.repo.Filme.FindByTitle)
	if err != nil {
		s.log.Warn("Create filme rejected", zap.Error(err))
		return nil, err
	}

	if err := s.repo.Filme.Create(ctx, filme); err != nil {
		s.log.Warn("Create filme failed",
			zap.Error(err),
			zap.String("titulo", filme.Titulo),
		)
		return nil, wrapRepository("create filme", err)
	}

	s.log.Info("Filme created",
		zap.Int64("filme_id", filme.ID),
		zap.String("titulo", filme.Titulo),
	)

	resp := response.FilmeToResponse(filme)
	return &resp, nil
}

func (s *filmeService) UpdateFilme(ctx context.Context, id int64, payload request.FilmePayload) (*response.FilmeResponse, error) {
	existing, err := s.repo.Filme.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find filme: %w", err)
	}

	filme, err := ValidateUpdate(ctx, id, payload, existing, s.repo.Filme.FindByTitle)
	if err != nil {
		s.log.Warn("Update filme rejected",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, err
	}

	if err := s.repo.Filme.Update(ctx, filme); err != nil {
		s.log.Warn("Update filme failed",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, wrapRepository("update filme", err)
	}

	s.log.Info("Filme updated",
		zap.Int64("filme_id", id),
		zap.String("titulo", filme.Titulo),
	)

	resp := response.FilmeToResponse(filme)
	return &resp, nil
}

func (s *filmeService) DeleteFilme(ctx context.Context, id int64) (*response.FilmeResponse, error) {
	existing, err := s.repo.Filme.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find filme: %w", err)
	}

	if err := ValidateDelete(existing); err != nil {
		s.log.Warn("Delete filme rejected",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, err
	}

	deleted, err := s.repo.Filme.Delete(ctx, id)
	if err != nil {
		s.log.Warn("Delete filme failed",
			zap.Error(err),
			zap.Int64("filme_id", id),
		)
		return nil, wrapRepository("delete filme", err)
	}

	s.log.Info("Filme deleted",
		zap.Int64("filme_id", id),
		zap.String("titulo", deleted.Titulo),
	)

	resp := response.FilmeToResponse(deleted)
	return &resp, nil
}

// wrapRepository keeps store guard errors as rejections and wraps the rest.
func wrapRepository(operation string, err error) error {
	if ruleErr, ok := fromRepository(err); ok {
		return ruleErr
	}
	return fmt.Errorf("%s: %w", operation, err)
}

// buildFilter validates the raw query string. page is nil unless the caller
// asked for pagination.
func buildFilter(query request.FilmeQuery) (repository.FilmeFilter, *request.PaginatedRequest, error) {
	var filter repository.FilmeFilter

	if errs := utils.ValidateStruct(query); len(errs) > 0 {
		return filter, nil, &RuleError{
			Reason:  ReasonInvalidFilter,
			Message: fmt.Sprintf("%s %s", reasonMessages[ReasonInvalidFilter], utils.FormatValidationErrors(errs)),
		}
	}

	if query.Titulo != "" {
		filter.Titulo = &query.Titulo
	}
	if query.Descricao != "" {
		filter.Descricao = &query.Descricao
	}
	if query.Genero != "" {
		filter.Genero = &query.Genero
	}
	if query.Duracao != "" {
		duracao, err := strconv.Atoi(query.Duracao)
		if err != nil {
			return filter, nil, NewRuleError(ReasonInvalidFilter)
		}
		filter.Duracao = &duracao
	}
	if query.Nota != "" {
		nota, err := strconv.ParseFloat(query.Nota, 64)
		if err != nil {
			return filter, nil, NewRuleError(ReasonInvalidFilter)
		}
		filter.Nota = &nota
	}
	if query.Disponibilidade != "" {
		disponibilidade, err := strconv.ParseBool(query.Disponibilidade)
		if err != nil {
			return filter, nil, NewRuleError(ReasonInvalidFilter)
		}
		filter.Disponibilidade = &disponibilidade
	}

	if !query.Paginated() {
		return filter, nil, nil
	}

	if query.Page != "" {
		n, err := strconv.Atoi(query.Page)
		if err != nil || n > request.MaxPage {
			return filter, nil, NewRuleError(ReasonInvalidFilter)
		}
	}

	page := &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Page, 1),
		PerPage: utils.ParseInt(query.PerPage, request.DefaultPerPage),
	}
	filter.Limit = page.Limit()
	filter.Offset = page.Offset()

	return filter, page, nil
}
