package service

import (
	"context"
	"fmt"

	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/repository"

	"github.com/rs/zerolog"
)

// categoriaService implements CategoriaService.
type categoriaService struct {
	categoriaRepo repository.CategoriaRepository
	logger        zerolog.Logger
}

// NewCategoriaService creates a new categoria service.
func NewCategoriaService(categoriaRepo repository.CategoriaRepository, logger zerolog.Logger) CategoriaService {
	return &categoriaService{
		categoriaRepo: categoriaRepo,
		logger:        logger.With().Str("service", "categoria").Logger(),
	}
}

// List retrieves every categoria ordered by nombre.
func (s *categoriaService) List(ctx context.Context) ([]model.Categoria, error) {
	categorias, err := s.categoriaRepo.FetchAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categorias: %w", err)
	}

	s.logger.Debug().Int("count", len(categorias)).Msg("retrieved categorias")
	return categorias, nil
}

// Options retrieves the active categorias for a dropdown.
func (s *categoriaService) Options(ctx context.Context) ([]model.CategoriaOption, error) {
	options, err := s.categoriaRepo.ListForSelect(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list categoria options: %w", err)
	}
	return options, nil
}

// Get retrieves a categoria by ID.
func (s *categoriaService) Get(ctx context.Context, id int64) (*model.Categoria, error) {
	return s.categoriaRepo.Get(ctx, id)
}

// Create validates and stores a new categoria.
func (s *categoriaService) Create(ctx context.Context, in model.CategoriaInput) (*model.Categoria, error) {
	c := model.NewCategoria(in)

	if err := s.check(ctx, c, 0, model.MsgCategoriaNombreExiste); err != nil {
		return nil, err
	}

	if err := s.categoriaRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("categoria_id", c.ID).
		Str("nombre", c.Nombre).
		Msg("categoria created")

	return c, nil
}

// Update validates and stores changes to an existing categoria.
func (s *categoriaService) Update(ctx context.Context, id int64, in model.CategoriaInput) (*model.Categoria, error) {
	c, err := s.categoriaRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	c.Apply(in)

	if err := s.check(ctx, c, c.ID, model.MsgCategoriaNombreOtra); err != nil {
		return nil, err
	}

	if err := s.categoriaRepo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("categoria_id", c.ID).Msg("categoria updated")
	return c, nil
}

// check validates c and then the nombre uniqueness. The uniqueness read
// and the later write are not atomic.
func (s *categoriaService) check(ctx context.Context, c *model.Categoria, excludeID int64, duplicateMsg string) error {
	if errs := c.Validate(); errs != nil {
		s.logger.Debug().Interface("errors", errs).Msg("categoria validation failed")
		return errs
	}

	exists, err := s.categoriaRepo.NombreExists(ctx, c.Nombre, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check categoria nombre: %w", err)
	}
	if exists {
		s.logger.Debug().Str("nombre", c.Nombre).Msg("categoria nombre taken")
		return &model.DomainError{
			Code: model.ErrCodeConflict,
			Err:  model.CategoriaErrors{"nombre": duplicateMsg},
		}
	}

	return nil
}

// Delete removes a categoria without productos.
func (s *categoriaService) Delete(ctx context.Context, id int64) error {
	if err := s.categoriaRepo.Delete(ctx, id); err != nil {
		s.logger.Warn().Err(err).Int64("categoria_id", id).Msg("categoria not deleted")
		return err
	}

	s.logger.Info().Int64("categoria_id", id).Msg("categoria deleted")
	return nil
}
