package adaptor

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"filme-catalog/internal/dto/request"
	"filme-catalog/internal/usecase"
	"filme-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const maxBodyBytes = 1 << 20

type FilmeHandler struct {
	service usecase.FilmeService
	log     *zap.Logger
}

func NewFilmeHandler(service usecase.FilmeService, log *zap.Logger) *FilmeHandler {
	return &FilmeHandler{
		service: service,
		log:     log.With(zap.String("handler", "filme")),
	}
}

// GetFilmes handles GET /filme
func (h *FilmeHandler) GetFilmes(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := request.FilmeQuery{
		Titulo:          query.Get("titulo"),
		Descricao:       query.Get("descricao"),
		Genero:          query.Get("genero"),
		Duracao:         query.Get("duracao"),
		Nota:            query.Get("nota"),
		Disponibilidade: query.Get("disponibilidade"),
		Page:            query.Get("page"),
		PerPage:         query.Get("per_page"),
	}

	filmes, err := h.service.GetFilmes(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, r, err, "get filmes")
		return
	}

	message := "Filmes encontrados."
	if len(filmes.Data) == 0 {
		message = "Nenhum filme encontrado."
	}

	if filmes.Pagination != nil {
		utils.ResponsePaginated(w, message, filmes.Data, filmes.Pagination)
		return
	}
	utils.ResponseSuccess(w, message, filmes.Data)
}

// GetFilmeByID handles GET /filme/{id}
func (h *FilmeHandler) GetFilmeByID(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		h.handleServiceError(w, r, usecase.NewRuleError(usecase.ReasonInvalidID), "get filme by ID")
		return
	}

	filme, err := h.service.GetFilmeByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "get filme by ID")
		return
	}

	utils.ResponseSuccess(w, "Filme encontrado.", filme)
}

// CreateFilme handles POST /filme
func (h *FilmeHandler) CreateFilme(w http.ResponseWriter, r *http.Request) {
	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	filme, err := h.service.CreateFilme(r.Context(), payload)
	if err != nil {
		h.handleServiceError(w, r, err, "create filme")
		return
	}

	utils.ResponseCreated(w, "Filme cadastrado com sucesso!", filme)
}

// UpdateFilme handles PUT /filme/{id}
func (h *FilmeHandler) UpdateFilme(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		h.handleServiceError(w, r, usecase.NewRuleError(usecase.ReasonInvalidID), "update filme")
		return
	}

	payload, ok := h.decodePayload(w, r)
	if !ok {
		return
	}

	filme, err := h.service.UpdateFilme(r.Context(), id, payload)
	if err != nil {
		h.handleServiceError(w, r, err, "update filme")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf(`Filme "%s" atualizado com sucesso!`, filme.Titulo), filme)
}

// DeleteFilme handles DELETE /filme/{id}
func (h *FilmeHandler) DeleteFilme(w http.ResponseWriter, r *http.Request) {
	id, ok := utils.ParseID(chi.URLParam(r, "id"))
	if !ok {
		h.handleServiceError(w, r, usecase.NewRuleError(usecase.ReasonInvalidID), "delete filme")
		return
	}

	filme, err := h.service.DeleteFilme(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, r, err, "delete filme")
		return
	}

	utils.ResponseSuccess(w, fmt.Sprintf(`O filme "%s" foi deletado com sucesso!`, filme.Titulo), filme)
}

// decodePayload reads a JSON object body. A missing body or a JSON null
// yields an empty payload, which the rule engine rejects.
func (h *FilmeHandler) decodePayload(w http.ResponseWriter, r *http.Request) (request.FilmePayload, bool) {
	var payload request.FilmePayload

	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&payload)
	if err != nil && !errors.Is(err, io.EOF) {
		h.log.Warn("Invalid request body", zap.Error(err))
		utils.ResponseBadRequest(w, "Corpo da requisição inválido. Envie um objeto JSON.", nil)
		return nil, false
	}

	return payload, true
}

// handleServiceError maps rejections to their status code. Anything else is
// logged and reported as a generic 500.
func (h *FilmeHandler) handleServiceError(w http.ResponseWriter, r *http.Request, err error, operation string) {
	ruleErr, ok := usecase.AsRuleError(err)
	if !ok {
		requestID, _ := utils.GetRequestIDFromContext(r.Context())
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation),
			zap.String("request_id", requestID),
		)
		utils.ResponseInternalError(w, "Erro interno no servidor.")
		return
	}

	details := map[string]string{"reason": string(ruleErr.Reason)}

	switch ruleErr.Reason {
	case usecase.ReasonNotFound:
		utils.ResponseNotFound(w, ruleErr.Message, details)
	case usecase.ReasonDuplicateTitle:
		utils.ResponseConflict(w, ruleErr.Message, details)
	default:
		utils.ResponseBadRequest(w, ruleErr.Message, details)
	}
}
