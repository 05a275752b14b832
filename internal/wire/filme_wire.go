package wire

import (
	"filme-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireFilme(r chi.Router, filmeHandler *adaptor.FilmeHandler) {
	r.Route("/filme", func(r chi.Router) {
		r.Post("/", filmeHandler.CreateFilme)
		r.Get("/", filmeHandler.GetFilmes)
		r.Get("/{id}", filmeHandler.GetFilmeByID)
		r.Put("/{id}", filmeHandler.UpdateFilme)
		r.Delete("/{id}", filmeHandler.DeleteFilme)
	})
}
