package usecase

import (
	"filme-catalog/internal/data/repository"

	"go.uber.org/zap"
)

type Service struct {
	Filme FilmeService
}

func NewService(repo *repository.Repository, log *zap.Logger) *Service {
	return &Service{
		Filme: NewFilmeService(repo, log),
	}
}
