package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/LDtito/zend-crud-app/internal/model"
	"github.com/LDtito/zend-crud-app/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// TxBeginner starts a transaction. *pgxpool.Pool satisfies it.
type TxBeginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Result counts the rows handled by a seed run.
type Result struct {
	CategoriasCreated int `json:"categorias_created"`
	CategoriasSkipped int `json:"categorias_skipped"`
	ProductosCreated  int `json:"productos_created"`
	ProductosSkipped  int `json:"productos_skipped"`
}

// Seeder inserts datasets through the repositories.
type Seeder struct {
	db     TxBeginner
	logger zerolog.Logger
}

// NewSeeder creates a new seeder.
func NewSeeder(db TxBeginner, logger zerolog.Logger) *Seeder {
	return &Seeder{
		db:     db,
		logger: logger.With().Str("component", "seeder").Logger(),
	}
}

// Run inserts ds in a single transaction. Categorias whose nombre already
// exists (ignoring case) and productos whose codigo already exists are
// skipped. Any invalid row aborts the whole run.
func (s *Seeder) Run(ctx context.Context, ds *Dataset) (Result, error) {
	var res Result

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("failed to begin seed transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	categorias := repository.NewCategoriaRepository(tx, s.logger)

	for i, in := range ds.Categorias {
		c := model.NewCategoria(in)
		if errs := c.Validate(); errs != nil {
			return Result{}, fmt.Errorf("categoria %d (%q): %w", i, in.Nombre, errs)
		}

		exists, err := categorias.NombreExists(ctx, c.Nombre, 0)
		if err != nil {
			return Result{}, err
		}
		if exists {
			res.CategoriasSkipped++
			continue
		}

		if err := categorias.Save(ctx, c); err != nil {
			return Result{}, fmt.Errorf("categoria %q: %w", c.Nombre, err)
		}
		res.CategoriasCreated++
	}

	all, err := categorias.FetchAll(ctx)
	if err != nil {
		return Result{}, err
	}
	ids := make(map[string]int64, len(all))
	for _, c := range all {
		ids[strings.ToLower(c.Nombre)] = c.ID
	}

	for i, ps := range ds.Productos {
		p := model.NewProducto(ps.ProductoInput)
		if ps.Categoria != "" {
			id, ok := ids[strings.ToLower(ps.Categoria)]
			if !ok {
				return Result{}, fmt.Errorf("producto %d (%q): unknown categoria %q", i, ps.Codigo, ps.Categoria)
			}
			p.CategoriaID = id
		}

		if errs := p.Validate(); errs != nil {
			return Result{}, fmt.Errorf("producto %d (%q): %w", i, ps.Codigo, errs)
		}

		created, err := s.insertProducto(ctx, tx, p)
		if err != nil {
			return Result{}, err
		}
		if created {
			res.ProductosCreated++
		} else {
			res.ProductosSkipped++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return Result{}, fmt.Errorf("failed to commit seed transaction: %w", err)
	}

	s.logger.Info().
		Int("categorias_created", res.CategoriasCreated).
		Int("categorias_skipped", res.CategoriasSkipped).
		Int("productos_created", res.ProductosCreated).
		Int("productos_skipped", res.ProductosSkipped).
		Msg("seed completed")

	return res, nil
}

// insertProducto stores p inside a savepoint so a duplicate codigo leaves
// the outer transaction usable. It reports false for a duplicate.
func (s *Seeder) insertProducto(ctx context.Context, tx pgx.Tx, p *model.Producto) (bool, error) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create savepoint: %w", err)
	}
	defer sp.Rollback(ctx)

	if _, err := repository.NewProductoRepository(sp, s.logger).Save(ctx, p); err != nil {
		if errors.Is(err, model.ErrConflict) {
			s.logger.Debug().Str("codigo", p.Codigo).Msg("producto already exists, skipping")
			return false, nil
		}
		return false, fmt.Errorf("producto %q: %w", p.Codigo, err)
	}

	if err := sp.Commit(ctx); err != nil {
		return false, fmt.Errorf("failed to release savepoint: %w", err)
	}
	return true, nil
}
