// Package middleware provides the gin middleware chain of the edge.
package middleware

import (
	"strings"
	"sync"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/bibocomdigital/bibomarket-frontend/internal/session"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/logger"
	"github.com/bibocomdigital/bibomarket-frontend/pkg/response"
)

const (
	// RequestIDHeader carries the per-request correlation id.
	RequestIDHeader = "X-Request-ID"

	sessionCookie = "bibo_session"
)

// RequestID attaches a correlation id to every request, reusing the
// caller's if present.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(RequestIDHeader, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// WithSession resolves the viewer's session from the Authorization
// header (or the session cookie set at login) and attaches it to the
// request context. Requests without a token proceed as anonymous; a
// token the edge cannot parse is rejected here rather than forwarded.
func WithSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		sess, err := session.FromToken(token)
		if err != nil {
			response.Unauthorized(c, err.Error())
			c.Abort()
			return
		}
		c.Request = c.Request.WithContext(session.NewContext(c.Request.Context(), sess))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		return cookie
	}
	return ""
}

// RequireSession guards routes that must not be reached anonymously.
// The redirect hint in the 401 body sends the web layer to the login
// flow; no backend call is ever made on behalf of an anonymous viewer.
func RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		if session.FromContext(c.Request.Context()).IsAnonymous() {
			response.Unauthorized(c, "login required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RateLimit applies a per-client token bucket, keyed by actor id when
// authenticated and client IP otherwise.
func RateLimit(r float64, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		l, ok := limiters[key]
		if !ok {
			l = rate.NewLimiter(rate.Limit(r), burst)
			limiters[key] = l
		}
		return l
	}
	return func(c *gin.Context) {
		sess := session.FromContext(c.Request.Context())
		key := c.ClientIP()
		if !sess.IsAnonymous() {
			key = "u:" + sess.Token()
		}
		if !limiterFor(key).Allow() {
			response.TooManyRequests(c, "too many requests")
			c.Abort()
			return
		}
		c.Next()
	}
}

// Recovery converts panics into 500s and reports them to Sentry when a
// hub is configured. A failed handler never takes the process down.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				if hub := sentry.CurrentHub(); hub.Client() != nil {
					hub.RecoverWithContext(c.Request.Context(), r)
				}
				logger.Error("handler panic",
					zap.Any("panic", r),
					zap.String("path", c.Request.URL.Path),
					zap.String("request_id", c.GetString("request_id")))
				c.AbortWithStatus(500)
			}
		}()
		c.Next()
	}
}
