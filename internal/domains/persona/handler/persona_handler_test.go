package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personas-api/internal/domains/persona/model"
	"personas-api/internal/domains/persona/repository"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// stubService lets each test pin the outcome and inspect what the
// handler passed down.
type stubService struct {
	persona *model.Persona
	list    []*model.Persona
	err     error

	lastInput  *model.PersonaInput
	lastFilter repository.Filter
	lastID     int64
	calls      int
}

func (s *stubService) Create(_ context.Context, input *model.PersonaInput) (*model.Persona, error) {
	s.calls++
	s.lastInput = input
	return s.persona, s.err
}

func (s *stubService) GetByID(_ context.Context, id int64) (*model.Persona, error) {
	s.calls++
	s.lastID = id
	return s.persona, s.err
}

func (s *stubService) List(_ context.Context, filter repository.Filter) ([]*model.Persona, error) {
	s.calls++
	s.lastFilter = filter
	return s.list, s.err
}

func (s *stubService) Update(_ context.Context, id int64, input *model.PersonaInput) (*model.Persona, error) {
	s.calls++
	s.lastID = id
	s.lastInput = input
	return s.persona, s.err
}

func (s *stubService) Delete(_ context.Context, id int64) error {
	s.calls++
	s.lastID = id
	return s.err
}

func setupTestRouter(s *stubService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPersonaHandler(s)
	r := gin.New()

	persons := r.Group("/persons")
	persons.POST("", h.Create)
	persons.GET("", h.List)
	persons.GET("/:id", h.GetByID)
	persons.PUT("/:id", h.Update)
	persons.DELETE("/:id", h.Delete)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func samplePersona() *model.Persona {
	return &model.Persona{
		ID:                1,
		Nombre:            "Ana Garcia",
		Apellido:          "Garcia",
		Categoria:         "A",
		CorreoElectronico: "ana@x.com",
		URL:               "http://x.com",
		EsActivo:          true,
	}
}

func TestCreatePersona_Created(t *testing.T) {
	svc := &stubService{persona: samplePersona()}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/persons", gin.H{
		"nombre":             "Ana Garcia",
		"apellido":           "Garcia",
		"categoria":          "A",
		"correo_electronico": "ana@x.com",
		"url":                "http://x.com",
	})

	assert.Equal(t, http.StatusCreated, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["id"])
	assert.Equal(t, true, body["es_activo"])

	require.NotNil(t, svc.lastInput)
	assert.Equal(t, "Ana Garcia", *svc.lastInput.Nombre)
}

func TestCreatePersona_ValidationErrors(t *testing.T) {
	svc := &stubService{}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/persons", gin.H{
		"nombre":   "john",
		"apellido": "Garcia",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))

	assert.Len(t, errs["nombre"], 1)
	assert.NotEmpty(t, errs["categoria"])
	assert.NotEmpty(t, errs["correo_electronico"])
	assert.NotEmpty(t, errs["url"])
	assert.NotContains(t, errs, "apellido")

	assert.Zero(t, svc.calls, "validation failures never reach the store")
}

func TestCreatePersona_WrongTypeField(t *testing.T) {
	svc := &stubService{}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/persons", gin.H{"edad": "treinta"})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	assert.NotEmpty(t, errs["edad"])
	assert.Zero(t, svc.calls)
}

func TestCreatePersona_DuplicateEmail(t *testing.T) {
	svc := &stubService{err: model.ErrCorreoEnUso}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/persons", gin.H{
		"nombre":             "Ana Garcia",
		"apellido":           "Garcia",
		"categoria":          "A",
		"correo_electronico": "ana@x.com",
		"url":                "http://x.com",
	})

	assert.Equal(t, http.StatusConflict, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body["message"])
}

func TestGetPersona_OK(t *testing.T) {
	svc := &stubService{persona: samplePersona()}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons/1", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.lastID)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Ana Garcia", body["nombre"])
}

func TestGetPersona_NotFound(t *testing.T) {
	svc := &stubService{err: model.ErrPersonaNotFound}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Persona no encontrada"}`, w.Body.String())
}

func TestGetPersona_NonNumericID(t *testing.T) {
	svc := &stubService{}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons/abc", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Persona no encontrada"}`, w.Body.String())
	assert.Zero(t, svc.calls)
}

func TestUpdatePersona_PartialBody(t *testing.T) {
	updated := samplePersona()
	updated.Categoria = "C"
	svc := &stubService{persona: updated}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/persons/1", gin.H{"categoria": "C"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.lastID)

	// only the supplied field travels down as an overlay
	require.NotNil(t, svc.lastInput)
	assert.Equal(t, "C", *svc.lastInput.Categoria)
	assert.Nil(t, svc.lastInput.Nombre)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "C", body["categoria"])
}

func TestUpdatePersona_ValidationError(t *testing.T) {
	svc := &stubService{}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/persons/1", gin.H{"edad": 17})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var errs map[string][]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &errs))
	assert.NotEmpty(t, errs["edad"])
	assert.Zero(t, svc.calls)
}

func TestUpdatePersona_NotFound(t *testing.T) {
	svc := &stubService{err: model.ErrPersonaNotFound}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodPut, "/persons/99", gin.H{"categoria": "C"})

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message": "Persona no encontrada"}`, w.Body.String())
}

func TestDeletePersona_NoContent(t *testing.T) {
	svc := &stubService{}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodDelete, "/persons/1", nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestDeletePersona_NotFoundBothTimes(t *testing.T) {
	svc := &stubService{err: model.ErrPersonaNotFound}
	r := setupTestRouter(svc)

	for i := 0; i < 2; i++ {
		w := doJSON(t, r, http.MethodDelete, "/persons/7", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.JSONEq(t, `{"message": "Persona no encontrada"}`, w.Body.String())
	}
}

func TestListPersonas_FilterFromQueryString(t *testing.T) {
	svc := &stubService{list: []*model.Persona{samplePersona()}}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons?edad=34&nombre=Luis", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, repository.Filter{"edad": "34", "nombre": "Luis"}, svc.lastFilter)

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body, 1)
}

func TestListPersonas_EmptyResultIsEmptyArray(t *testing.T) {
	svc := &stubService{list: []*model.Persona{}}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestListPersonas_UnknownFilterField(t *testing.T) {
	svc := &stubService{err: model.NewUnknownFilterField("altura")}
	r := setupTestRouter(svc)

	w := doJSON(t, r, http.MethodGet, "/persons?altura=180", nil)

	// deliberately a 400, not the reference's 200-with-error-body
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "altura")
}
