package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/listenupapp/shelfnotes/internal/domain"
	"github.com/listenupapp/shelfnotes/internal/service"
)

// ctxKey is the type for context keys to avoid collisions.
type ctxKey string

// viewerKey is the context key for the authenticated caller.
const viewerKey ctxKey = "viewer"

// viewerFrom returns the authenticated caller, or nil for anonymous requests.
func viewerFrom(ctx context.Context) *domain.Viewer {
	v, _ := ctx.Value(viewerKey).(*domain.Viewer)
	return v
}

// withViewer stores the caller in context.
func withViewer(ctx context.Context, v *domain.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, v)
}

// bearerToken extracts the token from an Authorization header value.
func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// authMiddleware returns a middleware that validates Bearer tokens and stores the viewer in context.
// If no token is present or invalid, continues anonymously.
// Operations that need a user reject anonymous callers in the service layer.
func authMiddleware(auth *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			viewer, err := auth.VerifyAccessToken(r.Context(), token)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
		})
	}
}
