package public

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	publicapp "github.com/sngm3741/telecom-hire-backend/api/internal/public/application"
)

// Handler wires public HTTP endpoints to application services.
type Handler struct {
	logger         zerolog.Logger
	commands       publicapp.SubmissionCommandService
	queries        publicapp.SubmissionQueryService
	client         *mongo.Client
	requestTimeout time.Duration
}

// Config defines dependencies required by Handler.
type Config struct {
	Logger         zerolog.Logger
	Commands       publicapp.SubmissionCommandService
	Queries        publicapp.SubmissionQueryService
	Client         *mongo.Client
	RequestTimeout time.Duration
}

// NewHandler constructs a public HTTP handler set.
func NewHandler(cfg Config) *Handler {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Handler{
		logger:         cfg.Logger,
		commands:       cfg.Commands,
		queries:        cfg.Queries,
		client:         cfg.Client,
		requestTimeout: timeout,
	}
}

// Register mounts all public routes onto the router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/health", h.healthHandler())
	r.Get("/ready", h.readyHandler())
	r.Get("/debug", h.debugHandler())
	r.Post("/submit", h.submitHandler())
}
