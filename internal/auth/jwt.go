package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/cgdmohamed/drznmobile-sub000/pkg/middleware"
)

// Claims represents the JWT claims carried by access tokens issued by the
// auth backend.
type Claims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// Validator verifies HS256 access tokens. Token issuance and refresh are
// handled by the auth backend; this service only validates.
type Validator struct {
	secret []byte
}

// NewValidator creates a token validator with the given shared secret.
func NewValidator(secret string) *Validator {
	return &Validator{secret: []byte(secret)}
}

// Validate parses and verifies a token, returning the claims the HTTP auth
// middleware expects.
func (v *Validator) Validate(tokenString string) (*middleware.Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token missing user_id claim")
	}

	return &middleware.Claims{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
