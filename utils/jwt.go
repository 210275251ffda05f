package utils

import (
	"errors"
	"time"

	"mentorship/config"

	"github.com/golang-jwt/jwt"
)

const fallbackSecret = "mentorship-dev-secret"

func secretKey() []byte {
	if s := config.AppConfig.JWTSecret; s != "" {
		return []byte(s)
	}
	return []byte(fallbackSecret)
}

// Claims carries the caller identity extracted from a bearer token.
type Claims struct {
	Role string `json:"role"`
	jwt.StandardClaims
}

// GenerateToken creates a signed JWT for subject with the given role
// ("mentor" or "mentee"). The token expires after duration.
func GenerateToken(subject, role string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		StandardClaims: jwt.StandardClaims{
			Subject:   subject,
			IssuedAt:  now.Unix(),
			ExpiresAt: now.Add(duration).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secretKey())
}

// ValidateToken parses and validates a token string and returns its claims.
func ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secretKey(), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token does not contain a valid 'sub' claim")
	}
	if claims.Role != RoleMentor && claims.Role != RoleMentee {
		return nil, errors.New("token does not contain a valid 'role' claim")
	}
	return claims, nil
}
