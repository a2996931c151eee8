package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/passvault/internal/common"
)

type errorResponse struct {
	Detail string `json:"detail"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, detail string) {
	respondJSON(w, status, errorResponse{Detail: detail})
}

// statusFor maps a service error onto an HTTP status. The second result is
// false for errors whose text must not reach the client.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, common.ErrValidation), errors.Is(err, common.ErrNotConfigured):
		return http.StatusBadRequest, true
	case errors.Is(err, common.ErrAlreadyConfigured):
		return http.StatusConflict, true
	case errors.Is(err, common.ErrAuthentication), errors.Is(err, common.ErrUnauthenticated):
		return http.StatusUnauthorized, true
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, true
	case errors.Is(err, common.ErrBackupDisabled):
		return http.StatusServiceUnavailable, true
	default:
		return http.StatusInternalServerError, false
	}
}

func (s *Server) respondServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status, public := statusFor(err)
	if !public {
		s.logger.Error(ctx, "request failed", "error", err)
		respondError(w, status, "internal server error")
		return
	}
	respondError(w, status, err.Error())
}
