package auth

import "github.com/google/uuid"

// Player is an authenticated identity. Only guests exist: the identity lives
// entirely in the signed token, nothing is stored server-side.
type Player struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
}

// GuestRequest is the POST /v1/auth/guest body. The display name is
// optional; empty names get a generated one.
type GuestRequest struct {
	DisplayName string `json:"display_name"`
}

// Session is a freshly minted identity plus its token.
type Session struct {
	Player    Player `json:"player"`
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
