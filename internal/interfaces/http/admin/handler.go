package admin

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	adminapp "github.com/sngm3741/telecom-hire-backend/api/internal/admin/application"
)

// Handler wires admin HTTP endpoints to application services.
type Handler struct {
	logger         zerolog.Logger
	submissions    adminapp.SubmissionService
	requestTimeout time.Duration
}

// Config provides dependencies for Handler.
type Config struct {
	Logger         zerolog.Logger
	Submissions    adminapp.SubmissionService
	RequestTimeout time.Duration
}

// NewHandler constructs an admin HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{
		logger:         cfg.Logger,
		submissions:    cfg.Submissions,
		requestTimeout: timeout,
	}
}

// Register mounts admin routes onto router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/submissions", h.submissionListHandler())
	r.Get("/submissions/metrics", h.submissionMetricsHandler())
	r.Get("/submissions/{id}", h.submissionDetailHandler())
}
