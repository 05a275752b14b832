package usecase

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"filme-catalog/internal/data/entity"
	"filme-catalog/internal/dto/request"
	"filme-catalog/pkg/utils"

	"github.com/go-playground/validator/v10"
)

// TitleLookup finds a record by exact title. It returns nil when none exists.
type TitleLookup func(ctx context.Context, titulo string) (*entity.Filme, error)

const (
	tagTitulo     = "min=3"
	tagDescricao  = "min=10"
	tagDuracao    = "gt=0"
	tagDuracaoMax = "lte=300"
	tagGenero     = "genero"
	tagNota       = "gte=0,lte=10"
)

func init() {
	err := utils.RegisterValidation(tagGenero, func(fl validator.FieldLevel) bool {
		return entity.Genero(fl.Field().String()).Valid()
	})
	if err != nil {
		panic(err)
	}
}

// ValidateCreate checks a POST payload and returns the record to insert.
// Checks run in a fixed order and the first failure is returned. The record
// is always created available.
func ValidateCreate(ctx context.Context, payload request.FilmePayload, lookup TitleLookup) (*entity.Filme, error) {
	if payload.Empty() {
		return nil, NewRuleError(ReasonEmptyPayload)
	}

	titulo, descricao, err := checkText(payload)
	if err != nil {
		return nil, err
	}

	raw, _ := payload.Get(request.FieldDuracao)
	duracao, err := checkDuracao(raw)
	if err != nil {
		return nil, err
	}

	genero, err := checkGenero(payload)
	if err != nil {
		return nil, err
	}

	raw, _ = payload.Get(request.FieldNota)
	nota, err := checkNota(raw)
	if err != nil {
		return nil, err
	}

	existing, err := lookup(ctx, titulo)
	if err != nil {
		return nil, fmt.Errorf("lookup title: %w", err)
	}
	if existing != nil {
		return nil, NewRuleError(ReasonDuplicateTitle)
	}

	return &entity.Filme{
		Titulo:          titulo,
		Descricao:       descricao,
		Duracao:         duracao,
		Genero:          genero,
		Nota:            nota,
		Disponibilidade: true,
	}, nil
}

// ValidateUpdate checks a PUT payload against the stored record. Titulo,
// descricao and genero are always required. Duracao and nota are checked
// only when sent; when omitted the stored value is kept. Any disponibilidade
// in the payload is ignored and the result is always available.
func ValidateUpdate(ctx context.Context, id int64, payload request.FilmePayload, existing *entity.Filme, lookup TitleLookup) (*entity.Filme, error) {
	if existing == nil {
		return nil, NewRuleError(ReasonNotFound)
	}
	if payload.Empty() {
		return nil, NewRuleError(ReasonEmptyPayload)
	}
	if existing.Imutavel() {
		return nil, NewRuleError(ReasonImmutable)
	}

	titulo, descricao, err := checkText(payload)
	if err != nil {
		return nil, err
	}

	duracao := existing.Duracao
	if raw, ok := payload.Get(request.FieldDuracao); ok {
		if duracao, err = checkDuracao(raw); err != nil {
			return nil, err
		}
	}

	genero, err := checkGenero(payload)
	if err != nil {
		return nil, err
	}

	nota := existing.Nota
	if raw, ok := payload.Get(request.FieldNota); ok {
		if nota, err = checkNota(raw); err != nil {
			return nil, err
		}
	}

	other, err := lookup(ctx, titulo)
	if err != nil {
		return nil, fmt.Errorf("lookup title: %w", err)
	}
	if other != nil && other.ID != id {
		return nil, NewRuleError(ReasonDuplicateTitle)
	}

	return &entity.Filme{
		Base: entity.Base{
			ID:        id,
			CreatedAt: existing.CreatedAt,
		},
		Titulo:          titulo,
		Descricao:       descricao,
		Duracao:         duracao,
		Genero:          genero,
		Nota:            nota,
		Disponibilidade: true,
	}, nil
}

// ValidateDelete refuses to delete protected records.
func ValidateDelete(existing *entity.Filme) error {
	if existing == nil {
		return NewRuleError(ReasonNotFound)
	}
	if existing.Protegido() {
		return NewRuleError(ReasonProtected)
	}
	return nil
}

func checkText(payload request.FilmePayload) (string, string, error) {
	titulo, ok := trimmedString(payload, request.FieldTitulo)
	if !ok || !utils.ValidateVar(titulo, tagTitulo) {
		return "", "", NewRuleError(ReasonInvalidTitle)
	}

	descricao, ok := trimmedString(payload, request.FieldDescricao)
	if !ok || !utils.ValidateVar(descricao, tagDescricao) {
		return "", "", NewRuleError(ReasonInvalidDescription)
	}

	return titulo, descricao, nil
}

func checkDuracao(raw any) (int, error) {
	value, ok := parseNumber(raw)
	if !ok {
		return 0, NewRuleError(ReasonInvalidDuration)
	}

	minutes := math.Trunc(value)
	if !utils.ValidateVar(minutes, tagDuracao) {
		return 0, NewRuleError(ReasonInvalidDuration)
	}
	if !utils.ValidateVar(minutes, tagDuracaoMax) {
		return 0, NewRuleError(ReasonDurationTooLong)
	}

	return int(minutes), nil
}

func checkGenero(payload request.FilmePayload) (entity.Genero, error) {
	raw, _ := payload.Get(request.FieldGenero)
	genero, ok := raw.(string)
	if !ok || !utils.ValidateVar(genero, tagGenero) {
		return "", NewRuleError(ReasonInvalidGenre)
	}
	return entity.Genero(genero), nil
}

func checkNota(raw any) (float64, error) {
	nota, ok := parseNumber(raw)
	if !ok || !utils.ValidateVar(nota, tagNota) {
		return 0, NewRuleError(ReasonInvalidRating)
	}
	return nota, nil
}

func trimmedString(payload request.FilmePayload, key string) (string, bool) {
	raw, _ := payload.Get(key)
	s, ok := raw.(string)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(s), true
}

// parseNumber accepts JSON numbers and numeric strings.
func parseNumber(raw any) (float64, bool) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		value = f
	default:
		return 0, false
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}
