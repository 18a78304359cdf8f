package model

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Producto represents a product in the catalogue.
type Producto struct {
	ID                  int64               `json:"id" db:"id"`
	Nombre              string              `json:"nombre" db:"nombre"`
	Codigo              string              `json:"codigo" db:"codigo"`
	EmailContacto       string              `json:"email_contacto" db:"email_contacto"`
	FechaLanzamiento    string              `json:"fecha_lanzamiento" db:"fecha_lanzamiento"`
	HoraDisponible      string              `json:"hora_disponible" db:"hora_disponible"`
	FechaHoraCreacion   string              `json:"fecha_hora_creacion" db:"fecha_hora_creacion"`
	CategoriaID         int64               `json:"categoria_id" db:"categoria_id"`
	CategoriaNombre     *string             `json:"categoria_nombre" db:"categoria_nombre"`
	TelefonoSoporte     string              `json:"telefono_soporte" db:"telefono_soporte"`
	Imagen              []byte              `json:"-" db:"imagen"`
	Precio              decimal.NullDecimal `json:"precio" db:"precio"`
	DescuentoPorcentaje decimal.NullDecimal `json:"descuento_porcentaje" db:"descuento_porcentaje"`
	CreatedAt           time.Time           `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time           `json:"updated_at" db:"updated_at"`
}

// ProductoInput carries the raw form values for a producto. The image is
// passed separately as an upload.
type ProductoInput struct {
	Nombre              string `json:"nombre"`
	Codigo              string `json:"codigo"`
	EmailContacto       string `json:"email_contacto"`
	FechaLanzamiento    string `json:"fecha_lanzamiento"`
	HoraDisponible      string `json:"hora_disponible"`
	FechaHoraCreacion   string `json:"fecha_hora_creacion"`
	CategoriaID         string `json:"categoria_id"`
	TelefonoSoporte     string `json:"telefono_soporte"`
	Precio              string `json:"precio"`
	DescuentoPorcentaje string `json:"descuento_porcentaje"`
}

// ProductoDetalle is a producto together with its categoria.
type ProductoDetalle struct {
	Producto  *Producto  `json:"producto"`
	Categoria *Categoria `json:"categoria,omitempty"`
}

// NewProducto builds a producto from input, normalizing time fields.
func NewProducto(in ProductoInput) *Producto {
	p := &Producto{}
	p.Apply(in)
	return p
}

// Apply overwrites the mutable fields with the input values. Imagen, ID
// and the timestamps are left untouched.
func (p *Producto) Apply(in ProductoInput) {
	p.Nombre = in.Nombre
	p.Codigo = in.Codigo
	p.EmailContacto = in.EmailContacto
	p.FechaLanzamiento = in.FechaLanzamiento
	p.HoraDisponible = NormalizeTime(in.HoraDisponible)
	p.FechaHoraCreacion = NormalizeDateTime(in.FechaHoraCreacion)
	p.CategoriaID = parseID(in.CategoriaID)
	p.TelefonoSoporte = in.TelefonoSoporte
	p.Precio = parseDecimal(in.Precio)
	p.DescuentoPorcentaje = parseDecimal(in.DescuentoPorcentaje)
}

// Normalize canonicalizes the time fields. Called before persisting.
func (p *Producto) Normalize() {
	p.HoraDisponible = NormalizeTime(p.HoraDisponible)
	p.FechaHoraCreacion = NormalizeDateTime(p.FechaHoraCreacion)
}

// HasImagen reports whether an image blob is attached.
func (p *Producto) HasImagen() bool {
	return len(p.Imagen) > 0
}

func parseID(v string) int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return id
}

func parseDecimal(v string) decimal.NullDecimal {
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}
}
