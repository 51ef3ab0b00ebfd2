package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/forgo/gatekeeper/internal/middleware"
	"github.com/forgo/gatekeeper/internal/model"
)

// UserReader loads users by ID
type UserReader interface {
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// MeHandler serves the authenticated principal
type MeHandler struct {
	users UserReader
}

// NewMeHandler creates a new me handler
func NewMeHandler(users UserReader) *MeHandler {
	return &MeHandler{users: users}
}

// MeResponse is the principal as seen by the API
type MeResponse struct {
	User  *model.User `json:"user"`
	Guard string      `json:"guard"`
}

// Get handles GET /v1/me
func (h *MeHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	if claims == nil {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	user, err := h.users.GetByID(r.Context(), claims.UserID)
	if err != nil {
		slog.ErrorContext(r.Context(), "failed to load principal",
			slog.String("user_id", claims.UserID),
			slog.String("error", err.Error()),
		)
		WriteError(w, MapServiceError(err))
		return
	}
	if user == nil {
		WriteError(w, model.NewNotFoundError("user"))
		return
	}

	WriteData(w, http.StatusOK, MeResponse{User: user, Guard: claims.Guard()}, map[string]string{
		"self": "/v1/me",
	})
}
