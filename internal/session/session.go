// Package session models the viewer's authentication state. A Session
// is built once per request from the bearer token and passed down
// explicitly; nothing in the codebase reads token state from a global.
package session

import (
	"context"
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when the bearer token is not a JWT the
// edge can read an actor identity from.
var ErrMalformedToken = errors.New("malformed session token")

type claims struct {
	UserID int64 `json:"sub"`
	jwt.RegisteredClaims
}

// Session is the viewer of the current request. The zero value is the
// anonymous viewer.
type Session struct {
	token  string
	userID int64
}

// Anonymous returns the session of a logged-out viewer.
func Anonymous() Session { return Session{} }

// FromToken builds a session from a bearer token. The token is parsed
// unverified: the edge does not hold the signing key, the backend
// verifies every authenticated call itself. The edge only needs the
// actor id for defensive UX (disabling self-follow controls).
func FromToken(token string) (Session, error) {
	if token == "" {
		return Anonymous(), nil
	}
	var c claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &c); err != nil {
		return Anonymous(), ErrMalformedToken
	}
	return Session{token: token, userID: c.UserID}, nil
}

// IsAnonymous reports whether the viewer has no login session.
func (s Session) IsAnonymous() bool { return s.token == "" }

// Token returns the bearer token, empty for anonymous viewers.
func (s Session) Token() string { return s.token }

// UserID returns the actor's account id, 0 for anonymous viewers.
func (s Session) UserID() int64 { return s.userID }

// Owns reports whether the rendered profile belongs to the viewer.
func (s Session) Owns(userID int64) bool {
	return !s.IsAnonymous() && s.userID == userID && userID != 0
}

type ctxKey struct{}

// NewContext attaches the session to ctx.
func NewContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext is the single accessor for "current viewer or anonymous".
func FromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(ctxKey{}).(Session); ok {
		return s
	}
	return Anonymous()
}
