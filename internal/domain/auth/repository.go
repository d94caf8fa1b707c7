package auth

import (
	"context"
)

// RefreshTokenRepository - interface for refresh_tokens table. Tokens are
// stored hashed.
type RefreshTokenRepository interface {
	Create(ctx context.Context, userID string, token string, expiresAt int64, sessionReq SessionTrackingRequest) error
	// GetActiveUserID returns the owner of a refresh token; ErrRefreshTokenRevoked
	// when it was revoked or has expired.
	GetActiveUserID(ctx context.Context, token string) (string, error)
	Revoke(ctx context.Context, token string) error
}
