package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	httperrors "github.com/gokatarajesh/trivia-arena/pkg/http/errors"
)

// HTTPHandlers provides REST endpoints for guest identity.
type HTTPHandlers struct {
	authSvc *Service
	logger  zerolog.Logger
}

// NewHTTPHandlers creates HTTP handlers for auth endpoints.
func NewHTTPHandlers(authSvc *Service, logger zerolog.Logger) *HTTPHandlers {
	return &HTTPHandlers{
		authSvc: authSvc,
		logger:  logger,
	}
}

// CreateGuest handles POST /v1/auth/guest. An empty body is fine, the
// display name is optional.
func (h *HTTPHandlers) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req GuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "Invalid JSON payload")
		return
	}

	session, err := h.authSvc.CreateGuest(req)
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeGuestCreationFailed, err.Error())
		return
	}

	h.respondJSON(w, http.StatusCreated, map[string]interface{}{
		"player_id":    session.Player.ID.String(),
		"display_name": session.Player.DisplayName,
		"token":        session.Token,
		"expires_in":   session.ExpiresIn,
	})
}

func (h *HTTPHandlers) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Warn().Err(err).Msg("failed to encode response")
	}
}
