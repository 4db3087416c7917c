// Package visitor provides anonymous per-browser visitor identity. The
// behavior profile is keyed by this ID; its lifetime is the cookie's
// lifetime, the server keeps no account of visitors beyond that.
package visitor

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// CookieName identifies the visitor cookie.
const CookieName = "g1_visitor_id"

const cookieMaxAge = 365 * 24 * time.Hour

type contextKey int

const visitorIDKey contextKey = iota

// IDFromContext extracts the visitor ID from the request context. It returns
// "" for requests that did not pass through the middleware.
func IDFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(visitorIDKey).(string); ok {
		return v
	}
	return ""
}

// WithID returns a context carrying the given visitor ID, for tests.
func WithID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorIDKey, id)
}

func isValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func setCookie(w http.ResponseWriter, id string, isDev bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		Expires:  time.Now().Add(cookieMaxAge),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Secure:   !isDev,
	})
}

func getOrCreateID(w http.ResponseWriter, r *http.Request, isDev bool) string {
	if c, err := r.Cookie(CookieName); err == nil && isValidID(c.Value) {
		// Refresh the expiry on every request so active visitors keep
		// their profile.
		setCookie(w, c.Value, isDev)
		return c.Value
	}

	id := uuid.NewString()
	setCookie(w, id, isDev)
	return id
}

// Middleware injects an anonymous visitor ID, issuing a cookie on first
// contact and replacing malformed ones.
func Middleware(isDev bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := getOrCreateID(w, r, isDev)
			ctx := context.WithValue(r.Context(), visitorIDKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
