package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/joestump/joe-writer/internal/writer"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	// Writer is nil when the generation service failed to initialize.
	Writer       *writer.Writer
	GeneratorErr error
	MaxBodyBytes int64
	Logger       *zap.Logger
}

// NewAPIRouter creates a chi sub-router for /api/v1. All routes return
// application/json.
func NewAPIRouter(deps Deps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)

	h := &generateAPIHandler{
		writer:    deps.Writer,
		configErr: deps.GeneratorErr,
		maxBody:   deps.MaxBodyBytes,
		logger:    logger,
	}
	r.Post("/generate", h.Generate)
	r.Get("/personas", h.Personas)

	return r
}

func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
