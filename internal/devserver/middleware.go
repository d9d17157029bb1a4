package devserver

import (
	"context"
	"log"
	"net/http"
	"strings"
)

type contextKey string

const userIDKey = contextKey("user_id")

// authMiddleware resolves the bearer token to a user ID. Missing, invalid,
// expired and revoked tokens are all 401s.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		tokenStr := strings.TrimPrefix(header, "Bearer ")

		userID, err := s.parseToken(tokenStr)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		revoked, err := s.revoked.Revoked(r.Context(), tokenStr)
		if err != nil {
			log.Printf("revocation check failed: %v", err)
			writeError(w, http.StatusInternalServerError, "could not verify token")
			return
		}
		if revoked {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		if _, err := s.users.GetByID(userID); err != nil {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// userID returns the authenticated user's ID set by authMiddleware.
func userID(r *http.Request) string {
	if id, ok := r.Context().Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// bearerToken returns the raw token from the Authorization header.
func bearerToken(r *http.Request) string {
	return strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
}
