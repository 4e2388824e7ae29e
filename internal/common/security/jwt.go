package security

import (
	"errors"
	"strings"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
)

// TokenIssuer signs and verifies the session tokens handed out at login.
type TokenIssuer struct {
	Auth *jwtauth.JWTAuth
	exp  time.Duration
}

func NewTokenIssuer(key []byte, exp time.Duration) *TokenIssuer {
	return &TokenIssuer{
		Auth: jwtauth.New("HS256", key, nil),
		exp:  exp,
	}
}

// GenerateToken encodes the user identity and role set. Roles travel as a
// comma-joined claim so the middleware can gate admin routes without a
// database round trip.
func (t *TokenIssuer) GenerateToken(userID, username string, roles []string) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  userID,
		"username": username,
		"roles":    strings.Join(roles, ","),
		"exp":      time.Now().Add(t.exp).Unix(),
		"iat":      time.Now().Unix(),
	}
	_, tokenString, err := t.Auth.Encode(claims)
	return tokenString, err
}

func GetUserIDFromClaims(claims map[string]interface{}) (string, error) {
	id, ok := claims["user_id"].(string)
	if !ok {
		return "", errors.New("user_id claim is missing or not a string")
	}
	return id, nil
}

func GetUsernameFromClaims(claims map[string]interface{}) (string, error) {
	username, ok := claims["username"].(string)
	if !ok {
		return "", errors.New("username claim is missing or not a string")
	}
	return username, nil
}

func GetRolesFromClaims(claims map[string]interface{}) ([]string, error) {
	joined, ok := claims["roles"].(string)
	if !ok {
		return nil, errors.New("roles claim is missing or not a string")
	}
	return strings.Split(joined, ","), nil
}
