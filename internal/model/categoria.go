package model

import "time"

// Categoria groups productos.
type Categoria struct {
	ID          int64     `json:"id" db:"id"`
	Nombre      string    `json:"nombre" db:"nombre"`
	Descripcion string    `json:"descripcion" db:"descripcion"`
	Activo      bool      `json:"activo" db:"activo"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CategoriaInput carries the raw values for a categoria. A nil Activo
// means active.
type CategoriaInput struct {
	Nombre      string `json:"nombre"`
	Descripcion string `json:"descripcion"`
	Activo      *bool  `json:"activo"`
}

// CategoriaOption is one entry of the category dropdown.
type CategoriaOption struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

// NewCategoria builds a categoria from input.
func NewCategoria(in CategoriaInput) *Categoria {
	c := &Categoria{}
	c.Apply(in)
	return c
}

// Apply overwrites the mutable fields with the input values.
func (c *Categoria) Apply(in CategoriaInput) {
	c.Nombre = in.Nombre
	c.Descripcion = in.Descripcion
	c.Activo = in.Activo == nil || *in.Activo
}
