// Package tokenpkg provides access token creation and verification.
package tokenpkg

import "time"

// Maker is an interface for managing tokens.
type Maker interface {
	// CreateToken creates a new token for a specific username and duration.
	CreateToken(username string, duration time.Duration) (string, *Payload, error)
	// VerifyToken checks if the token is valid or not.
	VerifyToken(token string) (*Payload, error)
}

// Token types.
const (
	TypePaseto = "paseto"
	TypeJWT    = "jwt"
)

// New returns the token maker of the given type.
func New(tokenType, symmetricKey string) (Maker, error) {
	if tokenType == TypeJWT {
		return NewJWTMaker(symmetricKey)
	}

	return NewPasetoMaker(symmetricKey)
}
