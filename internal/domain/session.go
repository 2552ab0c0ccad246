package domain

import (
	"context"

	"github.com/google/uuid"
)

// Session identifies the authenticated caller of an owner-scoped operation.
// It is resolved from a bearer token by the HTTP layer and passed explicitly
// into every service method that reads or writes user-owned rows.
type Session struct {
	UserID uuid.UUID
}

// Valid reports whether the session carries a user identity.
func (s Session) Valid() bool {
	return s.UserID != uuid.Nil
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFrom returns the session stored in ctx by WithSession.
// The boolean is false when no session is present.
func SessionFrom(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(Session)
	return s, ok && s.Valid()
}
