package repository

import (
	"context"
	"testing"

	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0x00, 0x01, 0xfe, 0xff}

func newTestProducto(codigo string, categoriaID int64) *model.Producto {
	return &model.Producto{
		Nombre:              "Producto " + codigo,
		Codigo:              codigo,
		EmailContacto:       "soporte@example.com",
		FechaLanzamiento:    "2025-03-15",
		HoraDisponible:      "09:00",
		FechaHoraCreacion:   "2025-01-15T14:30",
		CategoriaID:         categoriaID,
		TelefonoSoporte:     "+51987654321",
		Precio:              decimal.NewNullDecimal(decimal.RequireFromString("1299.99")),
		DescuentoPorcentaje: decimal.NewNullDecimal(decimal.RequireFromString("15.00")),
	}
}

func setupCatalog(t *testing.T) (CategoriaRepository, ProductoRepository, func()) {
	pool, cleanup := setupTestDB(t)
	logger := zerolog.Nop()
	return NewCategoriaRepository(pool, logger), NewProductoRepository(pool, logger), cleanup
}

func TestProductoRepository_InsertAndGet(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	electronicos := &model.Categoria{Nombre: "Electrónicos", Descripcion: "Dispositivos", Activo: true}
	seedCategorias(t, categorias, electronicos)

	p := newTestProducto("SGP2025001", electronicos.ID)
	p.Imagen = pngBytes

	id, err := productos.Save(ctx, p)
	require.NoError(t, err)
	assert.NotZero(t, id)
	assert.Equal(t, id, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := productos.Get(ctx, id)
	require.NoError(t, err)

	assert.Equal(t, "SGP2025001", got.Codigo)
	assert.Equal(t, "2025-03-15", got.FechaLanzamiento)
	assert.Equal(t, "09:00:00", got.HoraDisponible)
	assert.Equal(t, "2025-01-15 14:30:00", got.FechaHoraCreacion)
	require.NotNil(t, got.CategoriaNombre)
	assert.Equal(t, "Electrónicos", *got.CategoriaNombre)
	assert.Equal(t, pngBytes, got.Imagen)
	assert.True(t, got.Precio.Decimal.Equal(decimal.RequireFromString("1299.99")))
	assert.True(t, got.DescuentoPorcentaje.Decimal.Equal(decimal.RequireFromString("15")))
	assert.Nil(t, got.Validate())
}

func TestProductoRepository_InsertWithoutImagen(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	hogar := &model.Categoria{Nombre: "Hogar", Descripcion: "Casa", Activo: true}
	seedCategorias(t, categorias, hogar)

	id, err := productos.Save(ctx, newTestProducto("LLI2025003", hogar.ID))
	require.NoError(t, err)

	got, err := productos.Get(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, got.Imagen)
	assert.False(t, got.HasImagen())
}

func TestProductoRepository_GetNotFound(t *testing.T) {
	_, productos, cleanup := setupCatalog(t)
	defer cleanup()

	got, err := productos.Get(context.Background(), 77)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "No se encontró el producto con ID 77", err.Error())
}

func TestProductoRepository_DuplicateCodigo(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	categorias := NewCategoriaRepository(pool, zerolog.Nop())
	productos := NewProductoRepository(pool, zerolog.Nop())
	ctx := context.Background()

	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Vestimenta", Activo: true}
	seedCategorias(t, categorias, ropa)

	_, err := productos.Save(ctx, newTestProducto("CDN2025002", ropa.ID))
	require.NoError(t, err)

	dup := newTestProducto("CDN2025002", ropa.ID)
	id, err := productos.Save(ctx, dup)

	assert.Zero(t, id)
	assert.ErrorIs(t, err, model.ErrConflict)
	assert.Equal(t, model.MsgProductoCodigoExiste, err.Error())
	assert.Equal(t, 1, countRows(t, pool, "productos"))
}

func TestProductoRepository_MissingCategoria(t *testing.T) {
	_, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	p := newTestProducto("ORPHAN1", 9999)

	_, err := productos.Save(ctx, p)

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, model.ProductoErrors{model.MsgCategoriaInvalida}, err)
	assert.Zero(t, p.ID)
}

func TestProductoRepository_UpdateToMissingCategoria(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Prendas", Activo: true}
	seedCategorias(t, categorias, ropa)

	p := newTestProducto("CDN2025002", ropa.ID)
	_, err := productos.Save(ctx, p)
	require.NoError(t, err)

	p.CategoriaID = ropa.ID + 100
	_, err = productos.Save(ctx, p)

	assert.ErrorIs(t, err, model.ErrValidation)
	assert.Equal(t, model.ProductoErrors{model.MsgCategoriaInvalida}, err)

	got, err := productos.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, ropa.ID, got.CategoriaID)
}

func TestProductoRepository_UpdateRetainsImagen(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Vestimenta", Activo: true}
	seedCategorias(t, categorias, ropa)

	p := newTestProducto("CDN2025002", ropa.ID)
	p.Imagen = pngBytes
	id, err := productos.Save(ctx, p)
	require.NoError(t, err)

	stored, err := productos.Get(ctx, id)
	require.NoError(t, err)
	before := append([]byte(nil), stored.Imagen...)
	createdAt := stored.CreatedAt

	in := model.ProductoInput{
		Nombre:              "Camiseta Deportiva Nike",
		Codigo:              "CDN2025002",
		EmailContacto:       "ayuda@nike.com",
		FechaLanzamiento:    "2025-02-01",
		HoraDisponible:      "08:30",
		FechaHoraCreacion:   "2025-01-20T10:15",
		CategoriaID:         "0",
		TelefonoSoporte:     "+51123456789",
		Precio:              "89.90",
		DescuentoPorcentaje: "20",
	}
	stored.Apply(in)
	stored.CategoriaID = ropa.ID

	affected, err := productos.Save(ctx, stored)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	after, err := productos.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, before, after.Imagen)
	assert.Equal(t, "Camiseta Deportiva Nike", after.Nombre)
	assert.Equal(t, "08:30:00", after.HoraDisponible)
	assert.Equal(t, createdAt, after.CreatedAt)
	assert.True(t, after.UpdatedAt.After(createdAt))
}

func TestProductoRepository_UpdateMissing(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Vestimenta", Activo: true}
	seedCategorias(t, categorias, ropa)

	p := newTestProducto("GHOST1", ropa.ID)
	p.ID = 12345

	affected, err := productos.Save(ctx, p)

	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestProductoRepository_Delete(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	categorias := NewCategoriaRepository(pool, zerolog.Nop())
	productos := NewProductoRepository(pool, zerolog.Nop())
	ctx := context.Background()

	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Vestimenta", Activo: true}
	seedCategorias(t, categorias, ropa)
	id, err := productos.Save(ctx, newTestProducto("DEL001", ropa.ID))
	require.NoError(t, err)

	affected, err := productos.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	assert.Equal(t, 0, countRows(t, pool, "productos"))

	affected, err = productos.Delete(ctx, id)
	require.NoError(t, err)
	assert.Zero(t, affected)
}

func TestProductoRepository_SearchAndList(t *testing.T) {
	categorias, productos, cleanup := setupCatalog(t)
	defer cleanup()

	ctx := context.Background()
	electronicos := &model.Categoria{Nombre: "Electrónicos", Descripcion: "Dispositivos", Activo: true}
	ropa := &model.Categoria{Nombre: "Ropa", Descripcion: "Vestimenta", Activo: true}
	seedCategorias(t, categorias, electronicos, ropa)

	galaxy := newTestProducto("SGP2025001", electronicos.ID)
	galaxy.Nombre = "Smartphone Galaxy Pro"
	galaxy.EmailContacto = "soporte@galaxy.com"
	_, err := productos.Save(ctx, galaxy)
	require.NoError(t, err)

	nike := newTestProducto("CDN2025002", ropa.ID)
	nike.Nombre = "Camiseta Deportiva Nike"
	nike.EmailContacto = "ayuda@nike.com"
	_, err = productos.Save(ctx, nike)
	require.NoError(t, err)

	tests := []struct {
		name     string
		term     string
		expected []string
	}{
		{name: "Nombre lower case", term: "nike", expected: []string{"CDN2025002"}},
		{name: "Nombre upper case", term: "NIKE", expected: []string{"CDN2025002"}},
		{name: "Codigo fragment", term: "sgp2025", expected: []string{"SGP2025001"}},
		{name: "Email domain", term: "galaxy.com", expected: []string{"SGP2025001"}},
		{name: "Categoria nombre", term: "ropa", expected: []string{"CDN2025002"}},
		{name: "Shared fragment newest first", term: "2025", expected: []string{"CDN2025002", "SGP2025001"}},
		{name: "No match", term: "lampara", expected: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := productos.Search(ctx, tt.term)
			require.NoError(t, err)

			codigos := []string{}
			for _, p := range found {
				codigos = append(codigos, p.Codigo)
			}
			assert.Equal(t, tt.expected, codigos)
		})
	}

	all, err := productos.FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "CDN2025002", all[0].Codigo)

	byCategoria, err := productos.ListByCategoria(ctx, electronicos.ID)
	require.NoError(t, err)
	require.Len(t, byCategoria, 1)
	assert.Equal(t, "SGP2025001", byCategoria[0].Codigo)
}
