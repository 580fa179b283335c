package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"fareast-server/internal/auth"
	"fareast-server/internal/shared/errors"
	"fareast-server/internal/shared/response"
)

type contextKey string

const PlayerContextKey contextKey = "player"

// PlayerSession validates the session cookie and puts the player claims on
// the request context. Handlers compare the claims against the player id in
// the request so a player can only act for themselves.
func PlayerSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := slog.With(
			"middleware", "player_session",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
		)
		logger.Debug("Processing session authentication")

		cookie, err := r.Cookie("session_token")
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("authentication required"))
			return
		}

		claims, err := auth.ValidateSessionToken(cookie.Value)
		if err != nil {
			response.Error(w, r, logger, errors.Unauthorized("invalid session token"))
			return
		}

		ctx := context.WithValue(r.Context(), PlayerContextKey, claims)
		logger.Debug("Session authentication successful", "player_id", claims.PlayerID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetPlayerFromContext returns the session claims, or nil outside PlayerSession.
func GetPlayerFromContext(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(PlayerContextKey).(*auth.Claims); ok {
		return claims
	}
	return nil
}

// RequirePlayer rejects a request whose session does not belong to playerID.
func RequirePlayer(r *http.Request, playerID int) error {
	claims := GetPlayerFromContext(r)
	if claims == nil {
		return errors.Unauthorized("authentication required")
	}
	if claims.PlayerID != playerID {
		return errors.Forbidden("session does not match the acting player")
	}
	return nil
}
