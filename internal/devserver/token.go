package devserver

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/labstock-id/labstock/internal/models"
)

const tokenTTL = 24 * time.Hour

var errInvalidToken = errors.New("invalid token")

// issueToken signs a bearer token for user.
func (s *Server) issueToken(user models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":   user.ID,
		"email": user.Email,
		"exp":   time.Now().Add(tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// parseToken verifies tokenStr and returns the subject user ID.
func (s *Server) parseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", errInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errInvalidToken
	}
	sub, ok := claims["sub"].(string)
	if !ok || sub == "" {
		return "", errInvalidToken
	}
	return sub, nil
}
