// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "rosterhub"

var (
	ErrEmptyToken   = errors.New("token string is empty")
	ErrEmptySecret  = errors.New("jwt secret key is empty")
	ErrTokenExpired = errors.New("token has expired")
	ErrMissingUser  = errors.New("user_id claim is missing or zero")
)

// Claims defines the structure of the JWT claims the API issues.
type Claims struct {
	UserID uint `json:"user_id"`
	jwt.RegisteredClaims
}

// ValidateJWT parses an HS256 token and returns its claims.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrEmptyToken
	}
	if secretKey == "" {
		return nil, ErrEmptySecret
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithExpirationRequired(), jwt.WithIssuer(issuer))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		if errors.Is(err, jwt.ErrTokenSignatureInvalid) {
			return nil, errors.New("token signature is invalid")
		}
		return nil, fmt.Errorf("could not parse token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.UserID == 0 {
		return nil, ErrMissingUser
	}
	return claims, nil
}

// GenerateJWT issues an access token for userID.
func GenerateJWT(userID uint, secretKey string, expiryMinutes int) (string, error) {
	if secretKey == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(userID), 10),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expiryMinutes) * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secretKey))
}
