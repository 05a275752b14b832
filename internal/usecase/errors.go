package usecase

import (
	"errors"
	"fmt"

	"filme-catalog/internal/data/entity"
	"filme-catalog/internal/data/repository"
)

// Reason identifies why a request was rejected.
type Reason string

const (
	ReasonEmptyPayload       Reason = "EmptyPayload"
	ReasonInvalidID          Reason = "InvalidID"
	ReasonInvalidFilter      Reason = "InvalidFilter"
	ReasonInvalidTitle       Reason = "InvalidTitle"
	ReasonInvalidDescription Reason = "InvalidDescription"
	ReasonInvalidDuration    Reason = "InvalidDuration"
	ReasonDurationTooLong    Reason = "DurationTooLong"
	ReasonInvalidGenre       Reason = "InvalidGenre"
	ReasonInvalidRating      Reason = "InvalidRating"
	ReasonDuplicateTitle     Reason = "DuplicateTitle"
	ReasonNotFound           Reason = "NotFound"
	ReasonImmutable          Reason = "Immutable"
	ReasonProtected          Reason = "Protected"
)

var reasonMessages = map[Reason]string{
	ReasonEmptyPayload:       "Corpo da requisição vazio. Envie os dados do exemplo!",
	ReasonInvalidID:          "O ID enviado não é um número válido.",
	ReasonInvalidFilter:      "Filtros inválidos.",
	ReasonInvalidTitle:       fmt.Sprintf("O título é obrigatório e deve ter no mínimo %d caracteres.", entity.MinTituloLen),
	ReasonInvalidDescription: fmt.Sprintf("A descrição é obrigatória e deve ter no mínimo %d caracteres.", entity.MinDescricaoLen),
	ReasonInvalidDuration:    "A duração precisa ser um número inteiro e positivo.",
	ReasonDurationTooLong:    fmt.Sprintf("Filmes com duração superior a %d minutos não podem ser cadastrados.", entity.MaxDuracao),
	ReasonInvalidGenre:       fmt.Sprintf("O gênero deve ser um desses: %s.", entity.GenerosList("; ")),
	ReasonInvalidRating:      "A nota precisa estar entre 0 e 10.",
	ReasonDuplicateTitle:     "Não é permitido cadastrar filmes com título duplicado.",
	ReasonNotFound:           "Filme não encontrado.",
	ReasonImmutable:          "Filmes com disponibilidade igual a falso não podem ser atualizados.",
	ReasonProtected:          "Filmes com nota maior ou igual a 9 não podem ser deletados.",
}

// RuleError is a rejection the caller can act on. Message is safe to show
// to clients.
type RuleError struct {
	Reason  Reason
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Reason, e.Message)
}

// NewRuleError builds a RuleError with the default message for reason.
func NewRuleError(reason Reason) *RuleError {
	return &RuleError{Reason: reason, Message: reasonMessages[reason]}
}

// AsRuleError extracts a RuleError from err, if any.
func AsRuleError(err error) (*RuleError, bool) {
	var ruleErr *RuleError
	if errors.As(err, &ruleErr) {
		return ruleErr, true
	}
	return nil, false
}

// fromRepository turns the store's guard errors into rejections.
func fromRepository(err error) (*RuleError, bool) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return NewRuleError(ReasonNotFound), true
	case errors.Is(err, repository.ErrDuplicateTitle):
		return NewRuleError(ReasonDuplicateTitle), true
	case errors.Is(err, repository.ErrImmutable):
		return NewRuleError(ReasonImmutable), true
	case errors.Is(err, repository.ErrProtected):
		return NewRuleError(ReasonProtected), true
	default:
		return nil, false
	}
}
