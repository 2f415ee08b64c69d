package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
)

// SchemaMigrator applies pending schema migrations.
type SchemaMigrator interface {
	Up(ctx context.Context) error
}

// IndexHandler serves the service index and the schema endpoint.
type IndexHandler struct {
	migrator SchemaMigrator
	logger   *slog.Logger
}

// NewIndexHandler creates a new IndexHandler.
func NewIndexHandler(migrator SchemaMigrator, logger *slog.Logger) *IndexHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &IndexHandler{
		migrator: migrator,
		logger:   logger.With(slog.String("component", "index_handler")),
	}
}

// Index handles GET /.
func (h *IndexHandler) Index(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, IndexResponse{
		Message: "E-commerce API is running!",
		Endpoints: map[string]string{
			"users":         "/users",
			"products":      "/products",
			"orders":        "/orders",
			"create_tables": "/create-tables",
		},
	})
}

// CreateTables handles GET /create-tables. Applying migrations is idempotent.
func (h *IndexHandler) CreateTables(w http.ResponseWriter, r *http.Request) {
	if err := h.migrator.Up(r.Context()); err != nil {
		respondWithServiceError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "schema migrations applied")
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: "Database tables created successfully!",
	})
}

// NotFound answers unmatched routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusNotFound, msgResourceNotFound)
}

// MethodNotAllowed answers known paths requested with the wrong method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, http.StatusMethodNotAllowed, msgMethodNotAllowed)
}
