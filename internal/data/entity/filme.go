package entity

// Filme is one catalog entry.
type Filme struct {
	Base
	Titulo          string  `db:"titulo" json:"titulo"`
	Descricao       string  `db:"descricao" json:"descricao"`
	Duracao         int     `db:"duracao" json:"duracao"`
	Genero          Genero  `db:"genero" json:"genero"`
	Nota            float64 `db:"nota" json:"nota"`
	Disponibilidade bool    `db:"disponibilidade" json:"disponibilidade"`
}

const (
	MinTituloLen    = 3
	MinDescricaoLen = 10
	MaxDuracao      = 300
	MinNota         = 0.0
	MaxNota         = 10.0

	// NotaProtegida is the rating from which a record can no longer be deleted.
	NotaProtegida = 9.0
)

// Protegido reports whether the record is exempt from deletion.
func (f *Filme) Protegido() bool {
	return f.Nota >= NotaProtegida
}

// Imutavel reports whether the record is exempt from updates.
func (f *Filme) Imutavel() bool {
	return !f.Disponibilidade
}
