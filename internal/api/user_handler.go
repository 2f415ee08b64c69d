package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/phrazzld/shop-api/internal/api/shared"
	"github.com/phrazzld/shop-api/internal/platform/logger"
	"github.com/phrazzld/shop-api/internal/service"
)

// UserHandler handles the /users endpoints.
type UserHandler struct {
	userService service.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService service.UserService, logger *slog.Logger) *UserHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserHandler{
		userService: userService,
		logger:      logger.With(slog.String("component", "user_handler")),
	}
}

// ListUsers handles GET /users.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.ListUsers(r.Context())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, usersToResponse(users))
}

// GetUser handles GET /users/{id}.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// CreateUser handles POST /users.
func (h *UserHandler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.userService.CreateUser(r.Context(), *req.Name, *req.Address, *req.Email)
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user created",
		slog.Int64("user_id", user.ID))
	shared.RespondWithJSON(w, r, http.StatusCreated, userToResponse(user))
}

// UpdateUser handles PUT /users/{id} as a partial update.
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	var req UserUpdateRequest
	if !decodeRequest(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateUser(r.Context(), id, req.Patch())
	if err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user updated",
		slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, userToResponse(user))
}

// DeleteUser handles DELETE /users/{id}.
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := handlePathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(r.Context(), id); err != nil {
		respondWithServiceError(w, r, err)
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Debug("user deleted",
		slog.Int64("user_id", id))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: fmt.Sprintf("User %d deleted successfully", id),
	})
}
