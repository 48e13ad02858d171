package utils

import (
	"errors"
	"fmt"
	"time"

	"tripsplit-backend/config"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid or expired token")

const tokenDuration = 24 * time.Hour

// Claims carries the authenticated username and a snapshot of the IDs of the
// trips that user had created when the token was issued. The snapshot is not
// refreshed until the next login; trips created afterwards are covered by the
// live created_by check instead.
type Claims struct {
	Username string `json:"username"`
	Trips    []uint `json:"trips"`
	jwt.RegisteredClaims
}

// OwnsTrip reports whether the trip ID is in the token's ownership snapshot.
func (c *Claims) OwnsTrip(tripID uint) bool {
	for _, id := range c.Trips {
		if id == tripID {
			return true
		}
	}
	return false
}

// GenerateToken signs a token for the given username, embedding the trip
// ownership snapshot. Expires after 24 hours.
func GenerateToken(username string, tripIDs []uint) (string, error) {
	claims := &Claims{
		Username: username,
		Trips:    tripIDs,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// ParseToken validates the signature and expiry of a token and returns its
// claims. Any failure is reported as ErrInvalidToken.
func ParseToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(config.AppConfig.JWTSecret), nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
