package api

import (
	"net/http"

	"github.com/abhisek/mathpractice/internal/logging"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// RouterOptions configures NewRouter.
type RouterOptions struct {
	Handler        *Handler
	Logger         *zap.Logger
	AllowedOrigins []string
	// Static serves everything outside /api. Nil disables it.
	Static http.Handler
}

// NewRouter builds the chi router with the global middleware stack.
func NewRouter(opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(logging.RequestLogger(logger.Named("http")))
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))
	r.Use(CORS(opts.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate-problem", opts.Handler.GenerateProblem)
		r.Post("/submit-answer", opts.Handler.SubmitAnswer)
		r.Get("/topics", opts.Handler.Topics)
		r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			Error(w, http.StatusNotFound, "not found")
		})
		r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
			Error(w, http.StatusMethodNotAllowed, "method not allowed")
		})
	})

	if opts.Static != nil {
		r.Handle("/*", opts.Static)
	}

	return r
}
