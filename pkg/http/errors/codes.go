package errors

// Error codes for standardized error responses
const (
	// Authentication errors
	ErrCodeUnauthorized        = "unauthorized"
	ErrCodeInvalidToken        = "invalid_token"
	ErrCodeTokenExpired        = "token_expired"
	ErrCodeGuestCreationFailed = "guest_creation_failed"

	// Validation errors
	ErrCodeInvalidRequest = "invalid_request"

	// Resource errors
	ErrCodeNotFound = "not_found"

	// WebSocket errors
	ErrCodeInvalidPayload     = "invalid_payload"
	ErrCodeUnknownMessageType = "unknown_message_type"

	// Scores errors
	ErrCodeScoresFetchFailed = "scores_fetch_failed"

	// Server errors
	ErrCodeInternalError = "internal_error"
)
