// Package auth implements the authentication primitives of the service:
// bearer-token issuance/verification (HS256) and one-way password hashing.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/tasklist/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the token lifetime used when the configuration does not
// override it.
const DefaultTokenTTL = 24 * time.Hour

// Claims is the fixed claim set carried by every token: subject id and
// expiry via RegisteredClaims, plus the user's email.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// GenerateToken signs a token for the given user with the shared secret.
func GenerateToken(userID, email string, secretKey []byte, validityDuration time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(validityDuration)),
		},
		Email: email,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies the signature and expiry of tokenString and returns its
// claims. Failures map to the common sentinels so callers can tell the
// sub-causes apart without depending on the jwt package:
// ErrTokenExpired, ErrInvalidSignature, ErrTokenMalformed.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, common.ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, common.ErrInvalidSignature
		default:
			return nil, common.ErrTokenMalformed
		}
	}

	if !token.Valid {
		return nil, common.ErrTokenMalformed
	}

	return claims, nil
}
