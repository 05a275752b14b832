package response

import (
	"time"

	"filme-catalog/internal/data/entity"
)

type FilmeResponse struct {
	ID              int64     `json:"id"`
	Titulo          string    `json:"titulo"`
	Descricao       string    `json:"descricao"`
	Duracao         int       `json:"duracao"`
	Genero          string    `json:"genero"`
	Nota            float64   `json:"nota"`
	Disponibilidade bool      `json:"disponibilidade"`
	CreatedAt       time.Time `json:"createdAt"`
}

func FilmeToResponse(filme *entity.Filme) FilmeResponse {
	return FilmeResponse{
		ID:              filme.ID,
		Titulo:          filme.Titulo,
		Descricao:       filme.Descricao,
		Duracao:         filme.Duracao,
		Genero:          string(filme.Genero),
		Nota:            filme.Nota,
		Disponibilidade: filme.Disponibilidade,
		CreatedAt:       filme.CreatedAt,
	}
}

func FilmesToResponse(filmes []*entity.Filme) []FilmeResponse {
	out := make([]FilmeResponse, len(filmes))
	for i, f := range filmes {
		out[i] = FilmeToResponse(f)
	}
	return out
}
