package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"Agora/internal/core/authz"
)

// Context key for the resolved viewer
type contextKey string

const viewerKey contextKey = "viewer"

// IdentityMiddleware adapts the surrounding auth layer's bearer token into a
// Viewer for the board workflow. Token issuance lives outside this system;
// the middleware only verifies the signature and lifts identity and roles out
// of the claims.
type IdentityMiddleware struct {
	secret []byte
}

// NewIdentityMiddleware creates an identity middleware verifying HS256
// tokens signed with secret.
func NewIdentityMiddleware(secret []byte) *IdentityMiddleware {
	return &IdentityMiddleware{secret: secret}
}

// identityClaims carries the caller identity (sub) and role set.
type identityClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// RequireAuth ensures the request carries a valid bearer token and injects
// the resolved Viewer into the context. Returns 401 otherwise.
func (m *IdentityMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.viewerFromRequest(r)
		if err != nil {
			log.Printf("[AUTH_FAILURE] ip=%s method=%s path=%s error=%v",
				r.RemoteAddr, r.Method, r.URL.Path, err)
			writeAuthError(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
	})
}

// OptionalAuth injects the Viewer when a valid token is present and the
// anonymous viewer otherwise. Read paths stay open to anonymous readers.
func (m *IdentityMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer, err := m.viewerFromRequest(r)
		if err != nil {
			viewer = authz.Anonymous
		}
		next.ServeHTTP(w, r.WithContext(withViewer(r.Context(), viewer)))
	})
}

func (m *IdentityMiddleware) viewerFromRequest(r *http.Request) (authz.Viewer, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return authz.Anonymous, fmt.Errorf("missing Authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return authz.Anonymous, fmt.Errorf("invalid Authorization header format")
	}
	tokenStr := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))

	claims := &identityClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return authz.Anonymous, fmt.Errorf("invalid token: %w", err)
	}
	if claims.Subject == "" {
		return authz.Anonymous, fmt.Errorf("missing subject claim")
	}

	return authz.Viewer{Identity: claims.Subject, Roles: claims.Roles}, nil
}

func withViewer(ctx context.Context, viewer authz.Viewer) context.Context {
	return context.WithValue(ctx, viewerKey, viewer)
}

// GetViewer returns the viewer resolved by the auth middleware, or the
// anonymous viewer when none was injected.
func GetViewer(r *http.Request) authz.Viewer {
	if viewer, ok := r.Context().Value(viewerKey).(authz.Viewer); ok {
		return viewer
	}
	return authz.Anonymous
}

func writeAuthError(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"error":   "AuthRequired",
		"message": message,
	}); err != nil {
		log.Printf("Failed to encode auth error response: %v", err)
	}
}
