package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/forgo/gatekeeper/internal/database"
	"github.com/forgo/gatekeeper/internal/model"
	"github.com/forgo/gatekeeper/internal/service"
)

// DataResponse wraps a successful response with optional HATEOAS links
type DataResponse struct {
	Data  interface{}       `json:"data"`
	Links map[string]string `json:"_links,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// WriteData writes a successful data response
func WriteData(w http.ResponseWriter, status int, data interface{}, links map[string]string) {
	WriteJSON(w, status, DataResponse{Data: data, Links: links})
}

// WriteError writes an error response using RFC 9457 Problem Details
func WriteError(w http.ResponseWriter, err *model.ProblemDetails) {
	err.WriteJSON(w)
}

// MapServiceError converts a service or storage error to a ProblemDetails
// response
func MapServiceError(err error) *model.ProblemDetails {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, service.ErrUserNotFound), errors.Is(err, database.ErrNotFound):
		return model.NewNotFoundError("user")
	case errors.Is(err, service.ErrUnknownRole):
		return model.NewNotFoundError("role")
	case errors.Is(err, service.ErrUnknownPermission):
		return model.NewNotFoundError("permission")
	default:
		return model.NewInternalError("")
	}
}
