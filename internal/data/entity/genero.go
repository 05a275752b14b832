package entity

import "strings"

type Genero string

const (
	GeneroAcao             Genero = "Ação"
	GeneroDrama            Genero = "Drama"
	GeneroComedia          Genero = "Comédia"
	GeneroTerror           Genero = "Terror"
	GeneroRomance          Genero = "Romance"
	GeneroAnimacao         Genero = "Animação"
	GeneroFiccaoCientifica Genero = "Ficção Científica"
	GeneroSuspense         Genero = "Suspense"
)

// Generos is the closed set accepted on create and update, in display order.
var Generos = []Genero{
	GeneroAcao,
	GeneroDrama,
	GeneroComedia,
	GeneroTerror,
	GeneroRomance,
	GeneroAnimacao,
	GeneroFiccaoCientifica,
	GeneroSuspense,
}

// Valid reports whether g is one of Generos. The match is exact.
func (g Genero) Valid() bool {
	for _, v := range Generos {
		if g == v {
			return true
		}
	}
	return false
}

// GenerosList joins the accepted values with sep.
func GenerosList(sep string) string {
	names := make([]string, len(Generos))
	for i, g := range Generos {
		names[i] = string(g)
	}
	return strings.Join(names, sep)
}
