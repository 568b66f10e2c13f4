package handler

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"

	_ "github.com/joestump/joe-writer/docs/swagger"
	"github.com/joestump/joe-writer/internal/api"
	"github.com/joestump/joe-writer/internal/writer"
	"github.com/joestump/joe-writer/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	// Writer is nil when the generation service failed to initialize.
	Writer *writer.Writer
	// GeneratorErr is the initialization failure, if any.
	GeneratorErr   error
	MaxUploadBytes int64
	Logger         *zap.Logger
}

// NewRouter assembles the chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	gen := NewGenerateHandler(deps.Writer, deps.GeneratorErr, deps.MaxUploadBytes, logger)
	r.Get("/", gen.Index)
	r.Post("/generate", gen.Generate)

	r.Mount("/api/v1", api.NewAPIRouter(api.Deps{
		Writer:       deps.Writer,
		GeneratorErr: deps.GeneratorErr,
		MaxBodyBytes: deps.MaxUploadBytes,
		Logger:       logger,
	}))
	r.Get("/api/docs/*", httpSwagger.WrapHandler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
