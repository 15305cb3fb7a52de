package game

import (
	"net/http"

	"github.com/gokatarajesh/trivia-arena/internal/server"
	httperrors "github.com/gokatarajesh/trivia-arena/pkg/http/errors"
)

// HandleWebSocket upgrades HTTP connection to WebSocket and authenticates the player.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Extract and validate token from query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Missing token")
		return
	}

	// Validate token and extract claims
	claims, err := h.authSvc.ValidateToken(token)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket token validation failed")
		httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "Invalid token")
		return
	}

	// Upgrade to WebSocket
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	// Handle connection
	h.HandleConnection(conn, claims.PlayerID, claims.DisplayName)
}
