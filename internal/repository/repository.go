package repository

import (
	"context"

	"github.com/LDtito/zend-crud-app/internal/model"
)

// CategoriaRepository defines the interface for categoria data access operations.
type CategoriaRepository interface {
	// FetchAll retrieves every categoria ordered by nombre.
	FetchAll(ctx context.Context) ([]model.Categoria, error)

	// Get retrieves a categoria by ID. Fails with model.ErrNotFound when missing.
	Get(ctx context.Context, id int64) (*model.Categoria, error)

	// Save inserts the categoria when its ID is zero and updates it otherwise.
	// On insert the generated ID and timestamps are written back.
	Save(ctx context.Context, c *model.Categoria) error

	// Delete removes a categoria. Fails with model.ErrConflict while productos
	// reference it and with model.ErrNotFound when no row matches.
	Delete(ctx context.Context, id int64) error

	// NombreExists reports whether another categoria already uses nombre,
	// compared case-insensitively. excludeID 0 excludes nothing.
	NombreExists(ctx context.Context, nombre string, excludeID int64) (bool, error)

	// ListForSelect returns the active categorias ordered by nombre.
	ListForSelect(ctx context.Context) ([]model.CategoriaOption, error)
}

// ProductoRepository defines the interface for producto data access operations.
type ProductoRepository interface {
	// FetchAll retrieves every producto with its categoria nombre, newest first.
	FetchAll(ctx context.Context) ([]model.Producto, error)

	// Get retrieves a producto by ID. Fails with model.ErrNotFound when missing.
	Get(ctx context.Context, id int64) (*model.Producto, error)

	// Save inserts the producto when its ID is zero and returns the new ID.
	// Otherwise it updates the row and returns the affected row count.
	// A duplicate codigo fails with model.ErrConflict.
	Save(ctx context.Context, p *model.Producto) (int64, error)

	// Delete removes a producto and returns the affected row count.
	Delete(ctx context.Context, id int64) (int64, error)

	// Search matches term case-insensitively against nombre, codigo,
	// email_contacto and the categoria nombre, newest first.
	Search(ctx context.Context, term string) ([]model.Producto, error)

	// ListByCategoria retrieves the productos of one categoria, newest first.
	ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error)
}
