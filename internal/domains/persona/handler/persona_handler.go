package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"personas-api/internal/domains/persona/model"
	"personas-api/internal/domains/persona/repository"
	"personas-api/internal/domains/persona/service"
	"personas-api/internal/shared/response"
	"personas-api/pkg/logger"
)

const msgPersonaNoEncontrada = "Persona no encontrada"

type PersonaHandler struct {
	service service.Service
}

func NewPersonaHandler(s service.Service) *PersonaHandler {
	return &PersonaHandler{service: s}
}

// Create handles POST /persons.
// Validation happens before the store is touched; a duplicate email is
// only discovered at commit time and comes back as a conflict.
func (h *PersonaHandler) Create(c *gin.Context) {
	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	if errs := input.Validate(false); errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, p)
}

// List handles GET /persons. The query string is the filter: an
// equality conjunction over column names (e.g. /persons?edad=34).
func (h *PersonaHandler) List(c *gin.Context) {
	filter := repository.Filter{}
	for campo, valores := range c.Request.URL.Query() {
		if len(valores) > 0 {
			filter[campo] = valores[0]
		}
	}

	personas, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, personas)
}

// GetByID handles GET /persons/:id.
func (h *PersonaHandler) GetByID(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Update handles PUT /persons/:id. The body is a sparse overlay: only
// supplied fields are validated and written, everything else stays.
func (h *PersonaHandler) Update(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	input, ok := h.bindInput(c)
	if !ok {
		return
	}

	if errs := input.Validate(true); errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// Delete handles DELETE /persons/:id. A second delete of the same id
// reports not-found, it does not succeed silently.
func (h *PersonaHandler) Delete(c *gin.Context) {
	id, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// parseID reads the :id path param. Non-integer ids read as not-found:
// routes in the reference system only ever matched integer ids.
func (h *PersonaHandler) parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.NotFound(c, msgPersonaNoEncontrada)
		return 0, false
	}
	return id, true
}

// bindInput decodes the JSON body. A type mismatch is mapped back to
// the offending field so the 400 body keeps the field→messages shape.
func (h *PersonaHandler) bindInput(c *gin.Context) (*model.PersonaInput, bool) {
	var input model.PersonaInput
	if err := c.ShouldBindJSON(&input); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			c.JSON(http.StatusBadRequest, model.ValidationErrors{typeErr.Field: {"Valor no válido."}})
		} else {
			response.BadRequest(c, "cuerpo de la petición no válido")
		}
		return nil, false
	}
	return &input, true
}

// respondError maps domain errors to status codes. Anything unknown is
// logged and hidden behind a generic 500; the process never crashes on
// a request error.
func (h *PersonaHandler) respondError(c *gin.Context, err error) {
	var filterErr *model.FilterError
	switch {
	case errors.Is(err, model.ErrPersonaNotFound):
		response.NotFound(c, msgPersonaNoEncontrada)
	case errors.Is(err, model.ErrCorreoEnUso):
		response.Conflict(c, err.Error())
	case errors.As(err, &filterErr):
		response.BadRequest(c, filterErr.Error())
	default:
		logger.Error("unhandled persona error", err)
		response.InternalServerError(c, "error interno del servidor")
	}
}
