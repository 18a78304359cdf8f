package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LDtito/zend-crud-app/internal/imagen"
	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/repository"

	"github.com/rs/zerolog"
)

// productoService implements ProductoService.
type productoService struct {
	productoRepo  repository.ProductoRepository
	categoriaRepo repository.CategoriaRepository
	maxImageBytes int64
	logger        zerolog.Logger
}

// NewProductoService creates a new producto service.
func NewProductoService(
	productoRepo repository.ProductoRepository,
	categoriaRepo repository.CategoriaRepository,
	maxImageBytes int64,
	logger zerolog.Logger,
) ProductoService {
	if maxImageBytes <= 0 {
		maxImageBytes = imagen.DefaultMaxSize
	}
	return &productoService{
		productoRepo:  productoRepo,
		categoriaRepo: categoriaRepo,
		maxImageBytes: maxImageBytes,
		logger:        logger.With().Str("service", "producto").Logger(),
	}
}

// List retrieves every producto, or those matching search when non-empty.
func (s *productoService) List(ctx context.Context, search string) ([]model.Producto, error) {
	var (
		productos []model.Producto
		err       error
	)

	search = strings.TrimSpace(search)
	if search != "" {
		productos, err = s.productoRepo.Search(ctx, search)
	} else {
		productos, err = s.productoRepo.FetchAll(ctx)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("search", search).Msg("failed to list productos")
		return nil, fmt.Errorf("failed to list productos: %w", err)
	}

	s.logger.Debug().
		Int("count", len(productos)).
		Str("search", search).
		Msg("retrieved productos")

	return productos, nil
}

// ListByCategoria retrieves the productos of one categoria.
func (s *productoService) ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error) {
	productos, err := s.productoRepo.ListByCategoria(ctx, categoriaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list productos by categoria: %w", err)
	}
	return productos, nil
}

// Get retrieves a producto by ID.
func (s *productoService) Get(ctx context.Context, id int64) (*model.Producto, error) {
	return s.productoRepo.Get(ctx, id)
}

// View retrieves a producto together with its categoria. A categoria that
// cannot be found leaves Categoria nil.
func (s *productoService) View(ctx context.Context, id int64) (*model.ProductoDetalle, error) {
	p, err := s.productoRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	detalle := &model.ProductoDetalle{Producto: p}

	c, err := s.categoriaRepo.Get(ctx, p.CategoriaID)
	switch {
	case err == nil:
		detalle.Categoria = c
	case errors.Is(err, model.ErrNotFound):
		s.logger.Warn().
			Int64("producto_id", id).
			Int64("categoria_id", p.CategoriaID).
			Msg("producto categoria not found")
	default:
		return nil, err
	}

	return detalle, nil
}

// Create validates and stores a new producto.
func (s *productoService) Create(ctx context.Context, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error) {
	p := model.NewProducto(in)

	if errs := p.Validate(); errs != nil {
		s.logger.Debug().Strs("errors", errs).Msg("producto validation failed")
		return nil, errs
	}

	if data, ok := s.readImage(file); ok {
		p.Imagen = data
	}

	if _, err := s.productoRepo.Save(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("producto_id", p.ID).
		Str("codigo", p.Codigo).
		Bool("imagen", p.HasImagen()).
		Msg("producto created")

	return p, nil
}

// Update validates and stores changes to a producto.
func (s *productoService) Update(ctx context.Context, id int64, in model.ProductoInput, file *imagen.UploadedFile) (*model.Producto, error) {
	p, err := s.productoRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Apply(in)

	if errs := p.Validate(); errs != nil {
		s.logger.Debug().Strs("errors", errs).Int64("producto_id", id).Msg("producto validation failed")
		return nil, errs
	}

	if data, ok := s.readImage(file); ok {
		p.Imagen = data
	}

	affected, err := s.productoRepo.Save(ctx, p)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		return nil, model.NewNotFound("No se encontró el producto con ID %d", id)
	}

	s.logger.Info().
		Int64("producto_id", p.ID).
		Bool("imagen", p.HasImagen()).
		Msg("producto updated")

	return p, nil
}

// readImage returns the uploaded content. A missing or rejected file
// reports false and is never an error.
func (s *productoService) readImage(file *imagen.UploadedFile) ([]byte, bool) {
	if file == nil {
		return nil, false
	}

	data, err := imagen.Process(file, s.maxImageBytes)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("filename", file.Filename).
			Str("content_type", file.ContentType).
			Int64("size", file.Size).
			Msg("image rejected")
		return nil, false
	}

	return data, true
}

// Delete removes a producto.
func (s *productoService) Delete(ctx context.Context, id int64) error {
	affected, err := s.productoRepo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return model.NewNotFound("No se encontró el producto con ID %d", id)
	}

	s.logger.Info().Int64("producto_id", id).Msg("producto deleted")
	return nil
}

// Imagen retrieves the stored image of a producto.
func (s *productoService) Imagen(ctx context.Context, id int64) (*imagen.Image, error) {
	p, err := s.productoRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !p.HasImagen() {
		return nil, model.NewNotFound("El producto con ID %d no tiene imagen", id)
	}

	return imagen.NewImage(p.Imagen), nil
}
