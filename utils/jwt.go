package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt"
)

// AdminRole is the role claim required on admin tokens.
const AdminRole = "admin"

var (
	ErrMissingSecret = errors.New("jwt secret is not configured")
	ErrNotAdmin      = errors.New("token does not carry the admin role")
)

// GenerateAdminToken creates a signed admin JWT for subject. The token expires after duration.
func GenerateAdminToken(secret, subject string, duration time.Duration) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": AdminRole,
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(duration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateAdminToken parses tokenString and returns its subject when it is a valid admin token.
func ValidateAdminToken(secret, tokenString string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure that the token's signing method is HMAC.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	if role, _ := claims["role"].(string); role != AdminRole {
		return "", ErrNotAdmin
	}
	sub, _ := claims["sub"].(string)
	return sub, nil
}
