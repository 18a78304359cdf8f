package service

import (
	"context"

	"github.com/LDtito/zend-crud-app/internal/imagen"
	"github.com/LDtito/zend-crud-app/internal/model"
)

// CategoriaService defines operations for categoria management.
type CategoriaService interface {
	// List retrieves every categoria ordered by nombre.
	List(ctx context.Context) ([]model.Categoria, error)

	// Options retrieves the active categorias for a dropdown.
	Options(ctx context.Context) ([]model.CategoriaOption, error)

	// Get retrieves a categoria by ID.
	Get(ctx context.Context, id int64) (*model.Categoria, error)

	// Create validates and stores a new categoria.
	Create(ctx context.Context, in model.CategoriaInput) (*model.Categoria, error)

	// Update validates and stores changes to an existing categoria.
	Update(ctx context.Context, id int64, in model.CategoriaInput) (*model.Categoria, error)

	// Delete removes a categoria without productos.
	Delete(ctx context.Context, id int64) error
}

// ProductoService defines operations for producto management.
type ProductoService interface {
	// List retrieves every producto, or those matching search when non-empty.
	List(ctx context.Context, search string) ([]model.Producto, error)

	// ListByCategoria retrieves the productos of one categoria.
	ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error)

	// Get retrieves a producto by ID.
	Get(ctx context.Context, id int64) (*model.Producto, error)

	// View retrieves a producto together with its categoria.
	View(ctx context.Context, id int64) (*model.ProductoDetalle, error)

	// Create validates and stores a new producto. file may be nil.
	Create(ctx context.Context, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error)

	// Update validates and stores changes to a producto. A nil or rejected
	// file keeps the stored image.
	Update(ctx context.Context, id int64, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error)

	// Delete removes a producto.
	Delete(ctx context.Context, id int64) error

	// Imagen retrieves the stored image of a producto.
	Imagen(ctx context.Context, id int64) (*imagen.Image, error)
}
