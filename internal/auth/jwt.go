package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims is what the API trusts about a caller after token validation.
type Claims struct {
	UserID string
	Email  string
	Role   string
}

// Tokens issues and validates HS256 access tokens.
type Tokens struct {
	secret []byte
	ttl    time.Duration
}

func NewTokens(secret string) *Tokens {
	return &Tokens{secret: []byte(secret), ttl: 24 * time.Hour}
}

func (t *Tokens) Generate(userID, email, role string) (string, error) {
	if userID == "" {
		return "", errors.New("empty userID passed to GenerateToken")
	}
	if len(t.secret) == 0 {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"userID": userID,
		"email":  email,
		"role":   role,
		"exp":    time.Now().Add(t.ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

func (t *Tokens) Validate(tokenString string) (*Claims, error) {
	if len(t.secret) == 0 {
		return nil, errors.New("JWT_SECRET not set")
	}

	token, err := jwt.Parse(tokenString, func(tok *jwt.Token) (interface{}, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}

	userID, _ := claims["userID"].(string)
	if userID == "" {
		return nil, errors.New("token has no subject")
	}
	email, _ := claims["email"].(string)
	role, _ := claims["role"].(string)

	return &Claims{UserID: userID, Email: email, Role: role}, nil
}
