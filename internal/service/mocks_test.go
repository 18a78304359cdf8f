package service

import (
	"context"

	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/stretchr/testify/mock"
)

// MockCategoriaRepository is a mock implementation of CategoriaRepository.
type MockCategoriaRepository struct {
	mock.Mock
}

func (m *MockCategoriaRepository) FetchAll(ctx context.Context) ([]model.Categoria, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) Get(ctx context.Context, id int64) (*model.Categoria, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Categoria), args.Error(1)
}

func (m *MockCategoriaRepository) Save(ctx context.Context, c *model.Categoria) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCategoriaRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCategoriaRepository) NombreExists(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	args := m.Called(ctx, nombre, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoriaRepository) ListForSelect(ctx context.Context) ([]model.CategoriaOption, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CategoriaOption), args.Error(1)
}

// MockProductoRepository is a mock implementation of ProductoRepository.
type MockProductoRepository struct {
	mock.Mock
}

func (m *MockProductoRepository) FetchAll(ctx context.Context) ([]model.Producto, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoRepository) Get(ctx context.Context, id int64) (*model.Producto, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Producto), args.Error(1)
}

func (m *MockProductoRepository) Save(ctx context.Context, p *model.Producto) (int64, error) {
	args := m.Called(ctx, p)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductoRepository) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockProductoRepository) Search(ctx context.Context, term string) ([]model.Producto, error) {
	args := m.Called(ctx, term)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Producto), args.Error(1)
}

func (m *MockProductoRepository) ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error) {
	args := m.Called(ctx, categoriaID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Producto), args.Error(1)
}
