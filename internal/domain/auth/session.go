package auth

import (
	"context"

	"github.com/cmlabs-hris/vacation-backend-go/internal/domain/user"
)

// Session is the authenticated caller, rebuilt from verified token claims on
// every request.
type Session struct {
	UserID             string
	RegistrationNumber string
	Name               string
	Role               user.Role
	Token              string
}

func (s Session) IsManager() bool {
	return s.Role == user.RoleManager
}

func (s Session) Can(permission user.Permission) bool {
	return user.HasPermission(s.Role, permission)
}

type sessionKey struct{}

func WithSession(ctx context.Context, session Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, session)
}

func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionKey{}).(Session)
	return session, ok
}
