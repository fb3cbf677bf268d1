package session

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// tokenClaims is the payload the backend embeds in user session tokens
type tokenClaims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// decodeUserClaims extracts the user payload from a session token WITHOUT
// verifying the signature. The result is display-only and must never feed
// an authorization decision; the backend alone decides whether the token is
// valid.
func decodeUserClaims(token string) (*User, error) {
	claims := &tokenClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil, fmt.Errorf("failed to decode token payload: %w", err)
	}

	if claims.UserID == 0 {
		return nil, fmt.Errorf("token carries no user payload")
	}

	return &User{ID: claims.UserID, Email: claims.Email}, nil
}
