package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/service"

	"github.com/rs/zerolog"
)

var categoriaFields = map[string]bool{
	"nombre":      true,
	"descripcion": true,
	"activo":      true,
	"id":          true,
	"submit":      true,
}

// CategoriaHandler handles categoria-related HTTP requests.
type CategoriaHandler struct {
	service service.CategoriaService
	logger  zerolog.Logger
}

// NewCategoriaHandler creates a new categoria handler.
func NewCategoriaHandler(service service.CategoriaService, logger zerolog.Logger) *CategoriaHandler {
	return &CategoriaHandler{
		service: service,
		logger:  logger.With().Str("handler", "categoria").Logger(),
	}
}

// List handles GET /api/categorias.
func (h *CategoriaHandler) List(w http.ResponseWriter, r *http.Request) {
	categorias, err := h.service.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categorias)
}

// Options handles GET /api/categorias/select.
func (h *CategoriaHandler) Options(w http.ResponseWriter, r *http.Request) {
	options, err := h.service.Options(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, options)
}

// Get handles GET /api/categorias/{id}.
func (h *CategoriaHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	c, err := h.service.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Create handles POST /api/categorias.
func (h *CategoriaHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, err := h.decode(w, r)
	if err != nil {
		writeBodyError(w, r, err, h.logger)
		return
	}

	c, err := h.service.Create(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/categorias/%d", c.ID))
	writeJSON(w, http.StatusCreated, c)
}

// Update handles PUT /api/categorias/{id}.
func (h *CategoriaHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	in, err := h.decode(w, r)
	if err != nil {
		writeBodyError(w, r, err, h.logger)
		return
	}

	c, err := h.service.Update(r.Context(), id, in)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, c)
}

// Delete handles DELETE /api/categorias/{id}.
func (h *CategoriaHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decode reads a categoria from a JSON or form body. On form posts activo
// is a checkbox: present means active, absent means inactive. A JSON body
// without activo leaves the categoria active.
func (h *CategoriaHandler) decode(w http.ResponseWriter, r *http.Request) (model.CategoriaInput, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	switch mediaType(r) {
	case "application/json":
		var in model.CategoriaInput
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return model.CategoriaInput{}, err
		}
		return in, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return model.CategoriaInput{}, err
		}
		if err := checkKeys(r.PostForm, categoriaFields); err != nil {
			return model.CategoriaInput{}, err
		}
		return categoriaInputFromValues(r.PostForm), nil

	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return model.CategoriaInput{}, err
		}
		if err := checkKeys(r.MultipartForm.Value, categoriaFields); err != nil {
			return model.CategoriaInput{}, err
		}
		if len(r.MultipartForm.File) > 0 {
			return model.CategoriaInput{}, invalidForm("las categorías no admiten archivos")
		}
		return categoriaInputFromValues(r.MultipartForm.Value), nil

	default:
		return model.CategoriaInput{}, invalidForm("tipo de contenido no soportado: %q", r.Header.Get("Content-Type"))
	}
}

func categoriaInputFromValues(v url.Values) model.CategoriaInput {
	_, activo := v["activo"]
	return model.CategoriaInput{
		Nombre:      v.Get("nombre"),
		Descripcion: v.Get("descripcion"),
		Activo:      &activo,
	}
}
