package rest

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/amenitygen/internal/config"
	"github.com/heartmarshall/amenitygen/internal/transport/middleware"
)

// NewRouter wires the preview endpoints behind the standard middleware chain.
// CORS headers are only sent when allowed origins are configured. published
// may be nil when no database is configured.
func NewRouter(categories *CategoryHandler, published *PublishedHandler, health *HealthHandler, cors config.CORSConfig, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /live", health.Live)
	mux.HandleFunc("GET /ready", health.Ready)
	mux.HandleFunc("GET /health", health.Health)

	mux.HandleFunc("GET /categories", categories.List)
	mux.HandleFunc("GET /categories/{name}", categories.Get)
	mux.HandleFunc("POST /classify", categories.Classify)

	if published != nil {
		mux.HandleFunc("GET /published/latest", published.Latest)
	}

	var corsMW middleware.Middleware
	if len(cors.AllowedOrigins) > 0 {
		corsMW = middleware.CORS(cors)
	}

	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		corsMW,
	)(mux)
}
