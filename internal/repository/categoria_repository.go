package repository

import (
	"context"
	"errors"

	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// categoriaRepository implements the CategoriaRepository interface using PostgreSQL.
type categoriaRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewCategoriaRepository creates a new PostgreSQL-backed categoria repository.
func NewCategoriaRepository(db DBTX, logger zerolog.Logger) CategoriaRepository {
	return &categoriaRepository{
		db:     db,
		logger: logger.With().Str("repository", "categoria").Logger(),
	}
}

const categoriaColumns = `id, nombre, COALESCE(descripcion, ''), activo, created_at, updated_at`

func scanCategoria(row pgx.Row, c *model.Categoria) error {
	return row.Scan(&c.ID, &c.Nombre, &c.Descripcion, &c.Activo, &c.CreatedAt, &c.UpdatedAt)
}

// FetchAll retrieves every categoria ordered by nombre.
func (r *categoriaRepository) FetchAll(ctx context.Context) ([]model.Categoria, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias ORDER BY nombre ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categorias")
		return nil, model.NewStoreFailure("Error al consultar categorías", err)
	}
	defer rows.Close()

	categorias := []model.Categoria{}
	for rows.Next() {
		var c model.Categoria
		if err := scanCategoria(rows, &c); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan categoria row")
			return nil, model.NewStoreFailure("Error al leer categoría", err)
		}
		categorias = append(categorias, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating categoria rows")
		return nil, model.NewStoreFailure("Error al consultar categorías", err)
	}

	return categorias, nil
}

// Get retrieves a categoria by ID.
func (r *categoriaRepository) Get(ctx context.Context, id int64) (*model.Categoria, error) {
	query := `SELECT ` + categoriaColumns + ` FROM categorias WHERE id = $1`

	var c model.Categoria
	if err := scanCategoria(r.db.QueryRow(ctx, query, id), &c); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("categoria_id", id).Msg("categoria not found")
			return nil, model.NewNotFound("No se pudo encontrar la categoría con ID %d", id)
		}
		r.logger.Error().Err(err).Int64("categoria_id", id).Msg("failed to query categoria")
		return nil, model.NewStoreFailure("Error al consultar categoría", err)
	}

	return &c, nil
}

// Save inserts or updates a categoria depending on its ID.
func (r *categoriaRepository) Save(ctx context.Context, c *model.Categoria) error {
	if c.ID == 0 {
		return r.insert(ctx, c)
	}
	return r.update(ctx, c)
}

func (r *categoriaRepository) insert(ctx context.Context, c *model.Categoria) error {
	query := `
		INSERT INTO categorias (nombre, descripcion, activo, created_at, updated_at)
		VALUES ($1, $2, $3, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query, c.Nombre, c.Descripcion, c.Activo).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Warn().Str("nombre", c.Nombre).Msg("duplicate categoria nombre")
			return model.NewConflict(model.MsgCategoriaNombreExiste)
		}
		r.logger.Error().Err(err).Str("nombre", c.Nombre).Msg("failed to insert categoria")
		return model.NewStoreFailure("Error al insertar categoría", err)
	}

	r.logger.Debug().Int64("categoria_id", c.ID).Msg("categoria created successfully")
	return nil
}

func (r *categoriaRepository) update(ctx context.Context, c *model.Categoria) error {
	query := `
		UPDATE categorias
		SET nombre = $1, descripcion = $2, activo = $3, updated_at = CURRENT_TIMESTAMP
		WHERE id = $4
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query, c.Nombre, c.Descripcion, c.Activo, c.ID).Scan(&c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.NewNotFound("No se pudo encontrar la categoría con ID %d", c.ID)
		}
		if isUniqueViolation(err) {
			r.logger.Warn().Str("nombre", c.Nombre).Msg("duplicate categoria nombre")
			return model.NewConflict(model.MsgCategoriaNombreOtra)
		}
		r.logger.Error().Err(err).Int64("categoria_id", c.ID).Msg("failed to update categoria")
		return model.NewStoreFailure("Error al actualizar categoría", err)
	}

	r.logger.Debug().Int64("categoria_id", c.ID).Msg("categoria updated successfully")
	return nil
}

// Delete removes a categoria that no producto references.
func (r *categoriaRepository) Delete(ctx context.Context, id int64) error {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM productos WHERE categoria_id = $1`, id).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("categoria_id", id).Msg("failed to count productos")
		return model.NewStoreFailure("Error al eliminar categoría", err)
	}

	if count > 0 {
		r.logger.Warn().
			Int64("categoria_id", id).
			Int64("productos", count).
			Msg("categoria has productos")
		return model.NewConflict(model.MsgCategoriaTieneProductos)
	}

	tag, err := r.db.Exec(ctx, `DELETE FROM categorias WHERE id = $1`, id)
	if err != nil {
		// A producto inserted between the count and the delete.
		if isForeignKeyViolation(err) {
			return model.NewConflict(model.MsgCategoriaTieneProductos)
		}
		r.logger.Error().Err(err).Int64("categoria_id", id).Msg("failed to delete categoria")
		return model.NewStoreFailure("Error al eliminar categoría", err)
	}

	if tag.RowsAffected() == 0 {
		return model.NewNotFound("No se pudo encontrar la categoría con ID %d", id)
	}

	r.logger.Debug().Int64("categoria_id", id).Msg("categoria deleted successfully")
	return nil
}

// NombreExists reports whether nombre is taken, ignoring case.
func (r *categoriaRepository) NombreExists(ctx context.Context, nombre string, excludeID int64) (bool, error) {
	query := `SELECT COUNT(*) FROM categorias WHERE LOWER(nombre) = LOWER($1)`
	args := []any{nombre}
	if excludeID > 0 {
		query += ` AND id <> $2`
		args = append(args, excludeID)
	}

	var count int64
	if err := r.db.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		r.logger.Error().Err(err).Str("nombre", nombre).Msg("failed to check categoria nombre")
		return false, model.NewStoreFailure("Error al verificar nombre de categoría", err)
	}

	return count > 0, nil
}

// ListForSelect returns the active categorias ordered by nombre.
func (r *categoriaRepository) ListForSelect(ctx context.Context) ([]model.CategoriaOption, error) {
	query := `SELECT id, nombre FROM categorias WHERE activo = TRUE ORDER BY nombre ASC`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categoria options")
		return nil, model.NewStoreFailure("Error al consultar categorías", err)
	}
	defer rows.Close()

	options := []model.CategoriaOption{}
	for rows.Next() {
		var o model.CategoriaOption
		if err := rows.Scan(&o.ID, &o.Nombre); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan categoria option")
			return nil, model.NewStoreFailure("Error al leer categoría", err)
		}
		options = append(options, o)
	}

	if err := rows.Err(); err != nil {
		return nil, model.NewStoreFailure("Error al consultar categorías", err)
	}

	return options, nil
}
