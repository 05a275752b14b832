package adaptor

import (
	"filme-catalog/internal/usecase"

	"go.uber.org/zap"
)

type Handler struct {
	Filme  *FilmeHandler
	Health *HealthHandler
}

func NewHandler(service *usecase.Service, pinger Pinger, log *zap.Logger) *Handler {
	return &Handler{
		Filme:  NewFilmeHandler(service.Filme, log),
		Health: NewHealthHandler(pinger, log),
	}
}
