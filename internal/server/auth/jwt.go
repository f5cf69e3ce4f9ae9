// Package auth implements admin session auth: one-time login nonces, wallet
// signature verification, and HS256 JWTs carrying the caller's address.
package auth

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/anocare/anocare/internal/common"
)

// Claims carries the authenticated wallet address alongside the registered
// claim set.
type Claims struct {
	jwt.RegisteredClaims
	Address string `json:"address"`
}

func GenerateToken(address string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Address: strings.ToLower(address),
	})

	return token.SignedString(secretKey)
}

func GetAddressFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		return "", common.ErrInvalidToken
	}

	if !token.Valid || claims.Address == "" {
		return "", common.ErrInvalidToken
	}

	return claims.Address, nil
}
