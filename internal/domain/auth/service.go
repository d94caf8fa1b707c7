package auth

import (
	"context"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
)

type AuthService interface {
	Register(ctx context.Context, req RegisterRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest, sessionReq SessionTrackingRequest) (TokenResponse, error)
	RefreshToken(ctx context.Context, req RefreshTokenRequest) (AccessTokenResponse, error)
	// Logout revokes the refresh token (when given) and the session's access token.
	Logout(ctx context.Context, session Session, refreshToken string) error
	Me(ctx context.Context, session Session) (user.UserResponse, error)
	IssueSSEToken(ctx context.Context, session Session) (SSETokenResponse, error)
}
