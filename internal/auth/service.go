package auth

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-arena/internal/auth/jwt"
)

const maxDisplayNameLen = 32

// Service issues and validates guest identities.
type Service struct {
	tokens *jwt.Manager
	logger zerolog.Logger
}

// ServiceOptions configures the auth service.
type ServiceOptions struct {
	TokenConfig jwt.TokenConfig
}

// NewService creates an authentication service.
func NewService(opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		tokens: jwt.NewManager(opts.TokenConfig),
		logger: logger,
	}
}

// CreateGuest mints a fresh guest identity. Display names are trimmed;
// empty ones get a generated name.
func (s *Service) CreateGuest(req GuestRequest) (*Session, error) {
	displayName := strings.TrimSpace(req.DisplayName)
	if displayName == "" {
		displayName = generateGuestName()
	}
	if utf8.RuneCountInString(displayName) > maxDisplayNameLen {
		return nil, fmt.Errorf("display name longer than %d characters", maxDisplayNameLen)
	}

	player := Player{
		ID:          uuid.New(),
		DisplayName: displayName,
		IsGuest:     true,
	}

	token, err := s.tokens.GenerateToken(jwt.Player{
		ID:          player.ID,
		DisplayName: player.DisplayName,
		IsGuest:     true,
	})
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	s.logger.Info().Str("player_id", player.ID.String()).Msg("guest created")

	return &Session{
		Player:    player,
		Token:     token,
		ExpiresIn: int64(s.tokens.TTL().Seconds()),
	}, nil
}

// ValidateToken returns the claims carried by a session token.
func (s *Service) ValidateToken(token string) (*jwt.Claims, error) {
	return s.tokens.ValidateToken(token)
}

func generateGuestName() string {
	return "Invitado-" + uuid.NewString()[:8]
}
