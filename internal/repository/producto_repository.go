package repository

import (
	"context"
	"errors"

	"github.com/LDtito/zend-crud-app/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// productoRepository implements the ProductoRepository interface using PostgreSQL.
type productoRepository struct {
	db     DBTX
	logger zerolog.Logger
}

// NewProductoRepository creates a new PostgreSQL-backed producto repository.
func NewProductoRepository(db DBTX, logger zerolog.Logger) ProductoRepository {
	return &productoRepository{
		db:     db,
		logger: logger.With().Str("repository", "producto").Logger(),
	}
}

// Dates and times are read back in the same text form the entity validates.
const productoSelect = `
	SELECT p.id, p.nombre, p.codigo, p.email_contacto,
		to_char(p.fecha_lanzamiento, 'YYYY-MM-DD'),
		to_char(p.hora_disponible, 'HH24:MI:SS'),
		to_char(p.fecha_hora_creacion, 'YYYY-MM-DD HH24:MI:SS'),
		p.categoria_id, c.nombre, p.telefono_soporte, p.imagen,
		p.precio::text, p.descuento_porcentaje::text,
		p.created_at, p.updated_at
	FROM productos p
	LEFT JOIN categorias c ON p.categoria_id = c.id
`

func scanProducto(row pgx.Row, p *model.Producto) error {
	var precio, descuento *string
	err := row.Scan(
		&p.ID,
		&p.Nombre,
		&p.Codigo,
		&p.EmailContacto,
		&p.FechaLanzamiento,
		&p.HoraDisponible,
		&p.FechaHoraCreacion,
		&p.CategoriaID,
		&p.CategoriaNombre,
		&p.TelefonoSoporte,
		&p.Imagen,
		&precio,
		&descuento,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return err
	}
	p.Precio = scanDecimal(precio)
	p.DescuentoPorcentaje = scanDecimal(descuento)
	return nil
}

func (r *productoRepository) list(ctx context.Context, query string, args ...any) ([]model.Producto, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query productos")
		return nil, model.NewStoreFailure("Error al consultar productos", err)
	}
	defer rows.Close()

	productos := []model.Producto{}
	for rows.Next() {
		var p model.Producto
		if err := scanProducto(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan producto row")
			return nil, model.NewStoreFailure("Error al leer producto", err)
		}
		productos = append(productos, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating producto rows")
		return nil, model.NewStoreFailure("Error al consultar productos", err)
	}

	return productos, nil
}

// FetchAll retrieves every producto with its categoria nombre, newest first.
func (r *productoRepository) FetchAll(ctx context.Context) ([]model.Producto, error) {
	return r.list(ctx, productoSelect+` ORDER BY p.created_at DESC, p.id DESC`)
}

// Get retrieves a producto by ID.
func (r *productoRepository) Get(ctx context.Context, id int64) (*model.Producto, error) {
	var p model.Producto
	if err := scanProducto(r.db.QueryRow(ctx, productoSelect+` WHERE p.id = $1`, id), &p); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("producto_id", id).Msg("producto not found")
			return nil, model.NewNotFound("No se encontró el producto con ID %d", id)
		}
		r.logger.Error().Err(err).Int64("producto_id", id).Msg("failed to query producto")
		return nil, model.NewStoreFailure("Error al consultar producto", err)
	}

	return &p, nil
}

// Save inserts or updates a producto depending on its ID.
func (r *productoRepository) Save(ctx context.Context, p *model.Producto) (int64, error) {
	p.Normalize()
	if p.ID == 0 {
		return r.insert(ctx, p)
	}
	return r.update(ctx, p)
}

func (r *productoRepository) insert(ctx context.Context, p *model.Producto) (int64, error) {
	query := `
		INSERT INTO productos (
			nombre, codigo, email_contacto, fecha_lanzamiento, hora_disponible,
			fecha_hora_creacion, categoria_id, telefono_soporte, imagen,
			precio, descuento_porcentaje, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Nombre,
		p.Codigo,
		p.EmailContacto,
		p.FechaLanzamiento,
		p.HoraDisponible,
		p.FechaHoraCreacion,
		p.CategoriaID,
		p.TelefonoSoporte,
		Blob(p.Imagen),
		decimalParam(p.Precio),
		decimalParam(p.DescuentoPorcentaje),
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return 0, r.classify(err, p, "Error al insertar producto")
	}

	r.logger.Debug().
		Int64("producto_id", p.ID).
		Str("codigo", p.Codigo).
		Int("imagen_bytes", len(p.Imagen)).
		Msg("producto created successfully")

	return p.ID, nil
}

func (r *productoRepository) update(ctx context.Context, p *model.Producto) (int64, error) {
	query := `
		UPDATE productos SET
			nombre = $1, codigo = $2, email_contacto = $3, fecha_lanzamiento = $4,
			hora_disponible = $5, fecha_hora_creacion = $6, categoria_id = $7,
			telefono_soporte = $8, imagen = $9, precio = $10, descuento_porcentaje = $11,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = $12
		RETURNING updated_at
	`

	err := r.db.QueryRow(ctx, query,
		p.Nombre,
		p.Codigo,
		p.EmailContacto,
		p.FechaLanzamiento,
		p.HoraDisponible,
		p.FechaHoraCreacion,
		p.CategoriaID,
		p.TelefonoSoporte,
		Blob(p.Imagen),
		decimalParam(p.Precio),
		decimalParam(p.DescuentoPorcentaje),
		p.ID,
	).Scan(&p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Debug().Int64("producto_id", p.ID).Msg("no producto updated")
			return 0, nil
		}
		return 0, r.classify(err, p, "Error al actualizar producto")
	}

	r.logger.Debug().Int64("producto_id", p.ID).Msg("producto updated successfully")
	return 1, nil
}

// classify maps a write error to a domain error.
func (r *productoRepository) classify(err error, p *model.Producto, op string) error {
	if isUniqueViolation(err) {
		r.logger.Warn().Str("codigo", p.Codigo).Msg("duplicate producto codigo")
		return model.NewConflict(model.MsgProductoCodigoExiste)
	}
	if isForeignKeyViolation(err) {
		r.logger.Warn().Int64("categoria_id", p.CategoriaID).Msg("producto references missing categoria")
		return model.ProductoErrors{model.MsgCategoriaInvalida}
	}
	r.logger.Error().Err(err).
		Int64("producto_id", p.ID).
		Str("codigo", p.Codigo).
		Msg("failed to write producto")
	return model.NewStoreFailure(op, err)
}

// Delete removes a producto and returns the affected row count.
func (r *productoRepository) Delete(ctx context.Context, id int64) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM productos WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("producto_id", id).Msg("failed to delete producto")
		return 0, model.NewStoreFailure("Error al eliminar producto", err)
	}

	return tag.RowsAffected(), nil
}

// Search matches term against nombre, codigo, email and categoria nombre.
func (r *productoRepository) Search(ctx context.Context, term string) ([]model.Producto, error) {
	query := productoSelect + `
		WHERE p.nombre ILIKE $1
		   OR p.codigo ILIKE $1
		   OR p.email_contacto ILIKE $1
		   OR c.nombre ILIKE $1
		ORDER BY p.created_at DESC, p.id DESC
	`
	return r.list(ctx, query, "%"+term+"%")
}

// ListByCategoria retrieves the productos of one categoria, newest first.
func (r *productoRepository) ListByCategoria(ctx context.Context, categoriaID int64) ([]model.Producto, error) {
	query := productoSelect + ` WHERE p.categoria_id = $1 ORDER BY p.created_at DESC, p.id DESC`
	return r.list(ctx, query, categoriaID)
}
