package handler

import (
	"context"

	"github.com/LDtito/zend-crud-app/internal/imagen"
	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockProductoService is a mock implementation of ProductoService.
type MockProductoService struct {
	mock.Mock
}

func (m *MockProductoService) List(ctx context.Context, search string) ([]model.Producto, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoService) ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error) {
	args := m.Called(ctx, categoriaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoService) Get(ctx context.Context, id int64) (*model.Producto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

func (m *MockProductoService) View(ctx context.Context, id int64) (*model.ProductoDetalle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ProductoDetalle), args.Error(1)
}

func (m *MockProductoService) Create(ctx context.Context, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error) {
	args := m.Called(ctx, in, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

func (m *MockProductoService) Update(ctx context.Context, id int64, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error) {
	args := m.Called(ctx, id, in, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

func (m *MockProductoService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockProductoService) Imagen(ctx context.Context, id int64) (*imagen.Image, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*imagen.Image), args.Error(1)
}

// MockCategoriaService is a mock implementation of CategoriaService.
type MockCategoriaService struct {
	mock.Mock
}

func (m *MockCategoriaService) List(ctx context.Context) ([]model.Categoria, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Categoria), args.Error(1)
}

func (m *MockCategoriaService) Options(ctx context.Context) ([]model.CategoriaOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoriaOption), args.Error(1)
}

func (m *MockCategoriaService) Get(ctx context.Context, id int64) (*model.Categoria, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaService) Create(ctx context.Context, in model.CategoriaInput) (*model.Categoria, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaService) Update(ctx context.Context, id int64, in model.CategoriaInput) (*model.Categoria, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
