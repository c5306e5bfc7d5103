package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/vkaradzhov/belot-server/internal/api/apierr"
	"github.com/vkaradzhov/belot-server/internal/model"
	"github.com/vkaradzhov/belot-server/internal/services/auth"
)

type contextKey string

const (
	playerContextKey contextKey = "player"
	tokenContextKey  contextKey = "token"
)

// Auth creates authentication middleware
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			value := extractToken(r)
			if value == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			token, err := authService.Validate(value)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, tokenContextKey, token)
			ctx = context.WithValue(ctx, playerContextKey, &token.Player)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the bearer token from the request. SSE clients
// cannot set headers through EventSource, so a query parameter works too.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// GetPlayer returns the authenticated player from the request context
func GetPlayer(ctx context.Context) *model.Player {
	player, _ := ctx.Value(playerContextKey).(*model.Player)
	return player
}

// GetToken returns the token from the request context
func GetToken(ctx context.Context) *auth.Token {
	token, _ := ctx.Value(tokenContextKey).(*auth.Token)
	return token
}

// MustGetPlayer returns the authenticated player or panics
func MustGetPlayer(ctx context.Context) *model.Player {
	player := GetPlayer(ctx)
	if player == nil {
		panic("no player in context - auth middleware not applied?")
	}
	return player
}
