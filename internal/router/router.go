package router

import (
	"context"
	"net/http"
	"time"

	"github.com/LDtito/zend-crud-app/internal/handler"
	"github.com/LDtito/zend-crud-app/internal/middleware"

	"github.com/rs/zerolog"
)

// healthTimeout bounds the database ping of the health check.
const healthTimeout = 2 * time.Second

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// New creates a new HTTP router with all routes and middleware configured.
func New(
	productoHandler *handler.ProductoHandler,
	categoriaHandler *handler.CategoriaHandler,
	db Pinger,
	logger zerolog.Logger,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
			defer cancel()

			if err := db.Ping(ctx); err != nil {
				logger.Warn().Err(err).Msg("health check failed")
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte(`{"status": "unhealthy", "database": "unreachable"}`))
				return
			}
		}

		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status": "healthy"}`))
	})

	// Producto routes
	mux.HandleFunc("GET /api/productos", productoHandler.List)
	mux.HandleFunc("POST /api/productos", productoHandler.Create)
	mux.HandleFunc("GET /api/productos/{id}", productoHandler.Get)
	mux.HandleFunc("PUT /api/productos/{id}", productoHandler.Update)
	mux.HandleFunc("DELETE /api/productos/{id}", productoHandler.Delete)
	mux.HandleFunc("GET /api/productos/{id}/imagen", productoHandler.Imagen)

	// Categoria routes; the literal select path wins over {id}
	mux.HandleFunc("GET /api/categorias", categoriaHandler.List)
	mux.HandleFunc("POST /api/categorias", categoriaHandler.Create)
	mux.HandleFunc("GET /api/categorias/select", categoriaHandler.Options)
	mux.HandleFunc("GET /api/categorias/{id}", categoriaHandler.Get)
	mux.HandleFunc("PUT /api/categorias/{id}", categoriaHandler.Update)
	mux.HandleFunc("DELETE /api/categorias/{id}", categoriaHandler.Delete)

	// Apply middleware in order: Recovery -> Logging -> RequestID -> CORS
	var handler http.Handler = mux
	handler = middleware.CORS(handler)
	handler = middleware.RequestID(handler)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Recovery(logger)(handler)

	return handler
}
