package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/fintrack/ledger/internal/domain"
	"github.com/fintrack/ledger/internal/pkg/metrics"
)

// CORSMiddleware handles preflight requests and adds CORS headers.
func CORSMiddleware(allowedOrigins []string) func(http.Handler) http.Handler {
	originsSet := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		originsSet[o] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if originsSet[origin] || originsSet["*"] {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			if r.Method == http.MethodOptions {
				w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
				w.Header().Set("Access-Control-Max-Age", "86400")
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

type contextKey string

// identityKey stores the resolved CallerIdentity in the request context.
const identityKey contextKey = "caller_identity"

// SessionResolver resolves request credentials to a caller identity.
// It is the only view this layer has of the identity gateway.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.CallerIdentity, error)
}

// AuthMiddleware resolves the caller from the Authorization bearer token
// and attaches the identity to the request context. Requests without a
// valid session are rejected with 401 before any business logic runs.
func AuthMiddleware(resolver SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
				Error(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
				Error(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			identity, err := resolver.ResolveSession(r.Context(), parts[1])
			if err != nil || identity == nil {
				metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
				Error(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects callers whose role does not satisfy the required
// role. Role matching is case-sensitive and exact for ADMIN routes.
func RequireRole(required domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := CallerFromContext(r.Context())
			if identity == nil {
				metrics.AuthFailures.WithLabelValues("unauthenticated").Inc()
				Error(w, http.StatusUnauthorized, "No autorizado")
				return
			}

			if !identity.Role.HasPermission(required) {
				metrics.AuthFailures.WithLabelValues("forbidden").Inc()
				Error(w, http.StatusForbidden, "Acceso denegado - Solo administradores")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CallerFromContext extracts the resolved caller identity, or nil when
// the request did not pass through AuthMiddleware.
func CallerFromContext(ctx context.Context) *domain.CallerIdentity {
	if identity, ok := ctx.Value(identityKey).(*domain.CallerIdentity); ok {
		return identity
	}
	return nil
}

// WithCaller attaches a caller identity to the context. Used by tests.
func WithCaller(ctx context.Context, identity *domain.CallerIdentity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
