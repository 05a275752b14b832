package adaptor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"filme-catalog/cmd"
	"filme-catalog/internal/data/repository"
	"filme-catalog/internal/wire"
	"filme-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Status     bool              `json:"status"`
	Message    string            `json:"message"`
	Data       json.RawMessage   `json:"data"`
	Pagination json.RawMessage   `json:"pagination"`
	Errors     map[string]string `json:"errors"`
}

type filmeBody struct {
	ID              int64   `json:"id"`
	Titulo          string  `json:"titulo"`
	Descricao       string  `json:"descricao"`
	Duracao         int     `json:"duracao"`
	Genero          string  `json:"genero"`
	Nota            float64 `json:"nota"`
	Disponibilidade bool    `json:"disponibilidade"`
}

func newTestRouter(t *testing.T) (http.Handler, *memFilmeRepository) {
	t.Helper()

	repo := newMemFilmeRepository()
	_, err := repo.CreateBatch(context.Background(), cmd.SampleFilmes)
	require.NoError(t, err)

	config := &utils.Config{
		CORS: utils.CORSConfig{AllowedOrigins: []string{"*"}},
	}
	app := wire.Wiring(&repository.Repository{Filme: repo}, config, zap.NewNop())
	t.Cleanup(app.Close)

	return app.Router, repo
}

func do(t *testing.T, h http.Handler, method, target, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeFilme(t *testing.T, raw json.RawMessage) filmeBody {
	t.Helper()
	var f filmeBody
	require.NoError(t, json.Unmarshal(raw, &f))
	return f
}

const matrixReloaded = `{
	"titulo": "Matrix Reloaded",
	"descricao": "Sequência de ação e filosofia",
	"duracao": 138,
	"genero": "Ação",
	"nota": 7.2,
	"disponibilidade": false
}`

func TestCreateFilme(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodPost, "/filme", matrixReloaded)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.True(t, env.Status)
	assert.Equal(t, "Filme cadastrado com sucesso!", env.Message)

	created := decodeFilme(t, env.Data)
	assert.Equal(t, int64(11), created.ID)
	assert.Equal(t, "Matrix Reloaded", created.Titulo)
	assert.True(t, created.Disponibilidade)

	rec, env = do(t, router, http.MethodPost, "/filme", matrixReloaded)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Status)
	assert.Equal(t, "DuplicateTitle", env.Errors["reason"])
}

func TestCreateFilme_Rejections(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name   string
		body   string
		reason string
	}{
		{"no body", "", "EmptyPayload"},
		{"empty object", "{}", "EmptyPayload"},
		{"json null", "null", "EmptyPayload"},
		{"short title", `{"titulo":"ab","descricao":"descrição longa o bastante","duracao":90,"genero":"Drama","nota":5}`, "InvalidTitle"},
		{"duration too long", `{"titulo":"Longo","descricao":"descrição longa o bastante","duracao":301,"genero":"Drama","nota":5}`, "DurationTooLong"},
		{"unknown genre", `{"titulo":"Faroeste","descricao":"descrição longa o bastante","duracao":90,"genero":"Faroeste","nota":5}`, "InvalidGenre"},
		{"rating out of range", `{"titulo":"Nota alta","descricao":"descrição longa o bastante","duracao":90,"genero":"Drama","nota":11}`, "InvalidRating"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := do(t, router, http.MethodPost, "/filme", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Status)
			assert.NotEmpty(t, env.Message)
			assert.Equal(t, tt.reason, env.Errors["reason"])
		})
	}
}

func TestCreateFilme_MalformedJSON(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, body := range []string{`{"titulo":`, `[1,2]`, `"texto"`} {
		rec, env := do(t, router, http.MethodPost, "/filme", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, body)
		assert.Equal(t, "Corpo da requisição inválido. Envie um objeto JSON.", env.Message)
	}
}

func TestGetFilmes(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/filme", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Filmes encontrados.", env.Message)

	var all []filmeBody
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 10)
	assert.Equal(t, "O Senhor dos Anéis: A Sociedade do Anel", all[0].Titulo, "newest first")
	assert.Empty(t, env.Pagination)
}

func TestGetFilmes_Filters(t *testing.T) {
	router, _ := newTestRouter(t)

	_, env := do(t, router, http.MethodGet, "/filme?genero=drama&disponibilidade=true", "")
	var dramas []filmeBody
	require.NoError(t, json.Unmarshal(env.Data, &dramas))
	assert.Len(t, dramas, 3)

	_, env = do(t, router, http.MethodGet, "/filme?disponibilidade=false", "")
	var unavailable []filmeBody
	require.NoError(t, json.Unmarshal(env.Data, &unavailable))
	assert.Len(t, unavailable, 3)

	_, env = do(t, router, http.MethodGet, "/filme?titulo=MATRIX&nota=8.7", "")
	var matrix []filmeBody
	require.NoError(t, json.Unmarshal(env.Data, &matrix))
	require.Len(t, matrix, 1)
	assert.Equal(t, int64(6), matrix[0].ID)
}

func TestGetFilmes_EmptyResult(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/filme?titulo=inexistente", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Status)
	assert.Equal(t, "Nenhum filme encontrado.", env.Message)
	assert.JSONEq(t, "[]", string(env.Data))
}

func TestGetFilmes_InvalidFilter(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, q := range []string{"duracao=longo", "page=92233720368547759", "page=99999999999999999999&per_page=10"} {
		rec, env := do(t, router, http.MethodGet, "/filme?"+q, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, q)
		assert.Equal(t, "InvalidFilter", env.Errors["reason"], q)
	}
}

func TestGetFilmes_Paginated(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/filme?page=2&per_page=4", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page []filmeBody
	require.NoError(t, json.Unmarshal(env.Data, &page))
	require.Len(t, page, 4)
	assert.Equal(t, int64(6), page[0].ID)

	var meta struct {
		Total      int64 `json:"total"`
		Page       int   `json:"page"`
		PerPage    int   `json:"per_page"`
		TotalPages int   `json:"total_pages"`
	}
	require.NoError(t, json.Unmarshal(env.Pagination, &meta))
	assert.Equal(t, int64(10), meta.Total)
	assert.Equal(t, 2, meta.Page)
	assert.Equal(t, 4, meta.PerPage)
	assert.Equal(t, 3, meta.TotalPages)
}

func TestGetFilmeByID(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodGet, "/filme/4", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Filme encontrado.", env.Message)
	assert.Equal(t, "Parasita", decodeFilme(t, env.Data).Titulo)

	rec, env = do(t, router, http.MethodGet, "/filme/404", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", env.Errors["reason"])

	for _, id := range []string{"abc", "1.5", "-"} {
		rec, env = do(t, router, http.MethodGet, "/filme/"+id, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, id)
		assert.Equal(t, "InvalidID", env.Errors["reason"])
	}
}

func TestUpdateFilme(t *testing.T) {
	router, _ := newTestRouter(t)

	body := `{"titulo":"Toy Story","descricao":"Brinquedos ganham vida de novo","genero":"Animação","nota":9.1,"disponibilidade":false}`
	rec, env := do(t, router, http.MethodPut, "/filme/9", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `Filme "Toy Story" atualizado com sucesso!`, env.Message)

	updated := decodeFilme(t, env.Data)
	assert.Equal(t, 81, updated.Duracao, "omitted duration is kept")
	assert.InDelta(t, 9.1, updated.Nota, 1e-9)
	assert.True(t, updated.Disponibilidade)
}

func TestUpdateFilme_Rejections(t *testing.T) {
	router, repo := newTestRouter(t)

	rec, env := do(t, router, http.MethodPut, "/filme/6", matrixReloaded)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Immutable", env.Errors["reason"])

	rec, env = do(t, router, http.MethodPut, "/filme/404", matrixReloaded)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", env.Errors["reason"])

	rec, env = do(t, router, http.MethodPut, "/filme/1", "{}")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EmptyPayload", env.Errors["reason"])

	rec, env = do(t, router, http.MethodPut, "/filme/1",
		`{"titulo":"Gladiador","descricao":"Outro filme com o mesmo nome","genero":"Ação"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DuplicateTitle", env.Errors["reason"])

	rec, env = do(t, router, http.MethodPut, "/filme/x", matrixReloaded)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "InvalidID", env.Errors["reason"])

	// Becomes editable once made available again.
	repo.setAvailability(6, true)
	rec, _ = do(t, router, http.MethodPut, "/filme/6", matrixReloaded)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteFilme(t *testing.T) {
	router, _ := newTestRouter(t)

	rec, env := do(t, router, http.MethodDelete, "/filme/2", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Protected", env.Errors["reason"])

	rec, env = do(t, router, http.MethodDelete, "/filme/9", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `O filme "Toy Story" foi deletado com sucesso!`, env.Message)
	assert.Equal(t, int64(9), decodeFilme(t, env.Data).ID)

	rec, env = do(t, router, http.MethodDelete, "/filme/9", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NotFound", env.Errors["reason"])

	// Unavailable but unprotected rows can still be deleted.
	rec, _ = do(t, router, http.MethodDelete, "/filme/3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestStoreFailureIsInternalError(t *testing.T) {
	router, repo := newTestRouter(t)
	repo.failOn = "FindByID"

	rec, env := do(t, router, http.MethodGet, "/filme/1", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Erro interno no servidor.", env.Message)
	assert.NotContains(t, rec.Body.String(), errBroken.Error())
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}
