package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/LDtito/zend-crud-app/internal/imagen"
	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/service"

	"github.com/rs/zerolog"
)

// imagenField is the multipart file field carrying the producto image.
const imagenField = "imagen"

// multipartMemory is kept in memory while parsing uploads; the rest spills
// to temporary files.
const multipartMemory = 8 << 20

// productoFields lists the accepted form keys. id and submit come from the
// HTML form and are ignored.
var productoFields = map[string]bool{
	"nombre":               true,
	"codigo":               true,
	"email_contacto":       true,
	"fecha_lanzamiento":    true,
	"hora_disponible":      true,
	"fecha_hora_creacion":  true,
	"categoria_id":         true,
	"telefono_soporte":     true,
	"precio":               true,
	"descuento_porcentaje": true,
	imagenField:            true,
	"id":                   true,
	"submit":               true,
}

// ProductoResponse is a producto as returned by the API. The image blob is
// replaced by a link to it.
type ProductoResponse struct {
	*model.Producto
	TieneImagen bool   `json:"tiene_imagen"`
	ImagenURL   string `json:"imagen_url,omitempty"`
}

// ProductoDetalleResponse is a producto together with its categoria.
type ProductoDetalleResponse struct {
	Producto  ProductoResponse `json:"producto"`
	Categoria *model.Categoria `json:"categoria,omitempty"`
}

func newProductoResponse(p *model.Producto) ProductoResponse {
	resp := ProductoResponse{Producto: p, TieneImagen: p.HasImagen()}
	if resp.TieneImagen {
		resp.ImagenURL = fmt.Sprintf("/api/productos/%d/imagen", p.ID)
	}
	return resp
}

// ProductoHandler handles producto-related HTTP requests.
type ProductoHandler struct {
	service service.ProductoService
	logger  zerolog.Logger
}

// NewProductoHandler creates a new producto handler.
func NewProductoHandler(service service.ProductoService, logger zerolog.Logger) *ProductoHandler {
	return &ProductoHandler{
		service: service,
		logger:  logger.With().Str("handler", "producto").Logger(),
	}
}

// List handles GET /api/productos. ?search filters by text and
// ?categoria_id by categoria.
func (h *ProductoHandler) List(w http.ResponseWriter, r *http.Request) {
	var (
		productos []model.Producto
		err       error
	)

	query := r.URL.Query()
	if raw := query.Get("categoria_id"); raw != "" {
		categoriaID, perr := strconv.ParseInt(raw, 10, 64)
		if perr != nil || categoriaID <= 0 {
			writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidForm, "invalid categoria_id parameter", h.logger)
			return
		}
		productos, err = h.service.ListByCategoria(r.Context(), categoriaID)
	} else {
		productos, err = h.service.List(r.Context(), query.Get("search"))
	}
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp := make([]ProductoResponse, 0, len(productos))
	for i := range productos {
		resp = append(resp, newProductoResponse(&productos[i]))
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/productos/{id}.
func (h *ProductoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	detalle, err := h.service.View(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, ProductoDetalleResponse{
		Producto:  newProductoResponse(detalle.Producto),
		Categoria: detalle.Categoria,
	})
}

// Create handles POST /api/productos.
func (h *ProductoHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, file, err := h.decode(w, r)
	if err != nil {
		writeBodyError(w, r, err, h.logger)
		return
	}

	p, err := h.service.Create(r.Context(), in, file)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/productos/%d", p.ID))
	writeJSON(w, http.StatusCreated, newProductoResponse(p))
}

// Update handles PUT /api/productos/{id}.
func (h *ProductoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	in, file, err := h.decode(w, r)
	if err != nil {
		writeBodyError(w, r, err, h.logger)
		return
	}

	p, err := h.service.Update(r.Context(), id, in, file)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, newProductoResponse(p))
}

// Delete handles DELETE /api/productos/{id}.
func (h *ProductoHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

// Imagen handles GET /api/productos/{id}/imagen and serves the stored
// bytes with their sniffed content type.
func (h *ProductoHandler) Imagen(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, h.logger)
	if !ok {
		return
	}

	img, err := h.service.Imagen(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Data)))
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)
	w.Write(img.Data)
}

// decode reads a producto from a multipart, urlencoded or JSON body.
// Only multipart bodies can carry an image.
func (h *ProductoHandler) decode(w http.ResponseWriter, r *http.Request) (model.ProductoInput, *imagen.UploadedFile, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)

	switch mediaType(r) {
	case "multipart/form-data":
		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			return model.ProductoInput{}, nil, err
		}
		form := r.MultipartForm
		if err := checkKeys(form.Value, productoFields); err != nil {
			return model.ProductoInput{}, nil, err
		}
		for k := range form.File {
			if k != imagenField {
				return model.ProductoInput{}, nil, invalidForm("campo desconocido: %q", k)
			}
		}

		var file *imagen.UploadedFile
		if headers := form.File[imagenField]; len(headers) > 0 {
			file = imagen.FromMultipart(headers[0])
		}
		return productoInputFromValues(form.Value), file, nil

	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return model.ProductoInput{}, nil, err
		}
		if err := checkKeys(r.PostForm, productoFields); err != nil {
			return model.ProductoInput{}, nil, err
		}
		return productoInputFromValues(r.PostForm), nil, nil

	case "application/json":
		var in model.ProductoInput
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&in); err != nil {
			return model.ProductoInput{}, nil, err
		}
		return in, nil, nil

	default:
		return model.ProductoInput{}, nil, invalidForm("tipo de contenido no soportado: %q", r.Header.Get("Content-Type"))
	}
}

// productoInputFromValues copies the form values. Missing keys become
// empty strings and are reported by validation.
func productoInputFromValues(v url.Values) model.ProductoInput {
	return model.ProductoInput{
		Nombre:              v.Get("nombre"),
		Codigo:              v.Get("codigo"),
		EmailContacto:       v.Get("email_contacto"),
		FechaLanzamiento:    v.Get("fecha_lanzamiento"),
		HoraDisponible:      v.Get("hora_disponible"),
		FechaHoraCreacion:   v.Get("fecha_hora_creacion"),
		CategoriaID:         v.Get("categoria_id"),
		TelefonoSoporte:     v.Get("telefono_soporte"),
		Precio:              v.Get("precio"),
		DescuentoPorcentaje: v.Get("descuento_porcentaje"),
	}
}
