package request

const (
	FieldTitulo          = "titulo"
	FieldDescricao       = "descricao"
	FieldDuracao         = "duracao"
	FieldGenero          = "genero"
	FieldNota            = "nota"
	FieldDisponibilidade = "disponibilidade"
)

// FilmePayload is the decoded JSON body of POST and PUT /filme. Values keep
// their JSON types (string, float64, bool, nil, ...) so the rule engine can
// tell a missing field from a mistyped one.
type FilmePayload map[string]any

// Empty reports whether the body carried no fields at all.
func (p FilmePayload) Empty() bool {
	return len(p) == 0
}

// Get returns the raw value for key and whether the key was sent.
func (p FilmePayload) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// FilmeQuery holds the raw query string of GET /filme.
type FilmeQuery struct {
	Titulo          string `json:"titulo"`
	Descricao       string `json:"descricao"`
	Genero          string `json:"genero"`
	Duracao         string `json:"duracao" validate:"omitempty,number"`
	Nota            string `json:"nota" validate:"omitempty,numeric"`
	Disponibilidade string `json:"disponibilidade" validate:"omitempty,boolean"`
	Page            string `json:"page" validate:"omitempty,number"`
	PerPage         string `json:"per_page" validate:"omitempty,number"`
}

// Paginated reports whether the caller asked for a page.
func (q FilmeQuery) Paginated() bool {
	return q.Page != "" || q.PerPage != ""
}
