package auth

import (
	"errors"
	"fmt"
	"time"

	"mbaymi-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type TokenType string

const (
	AccessToken  TokenType = "access"
	RefreshToken TokenType = "refresh"
)

var ErrWrongTokenType = errors.New("wrong token type")

type JWTCustomClaims struct {
	UserID uint            `json:"user_id"`
	Email  string          `json:"email,omitempty"`
	Role   models.UserRole `json:"role,omitempty"`
	Type   TokenType       `json:"type"`
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User, typ TokenType, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &JWTCustomClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
		Type:   typ,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(user.ID),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies signature, expiry and token type.
func ParseToken(secret, tokenStr string, want TokenType) (*JWTCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*JWTCustomClaims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Type != want {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}
