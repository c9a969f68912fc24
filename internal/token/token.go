package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/amazoniatrade/marketplace/internal/models"
)

var (
	ErrMalformed        = errors.New("token malformed")
	ErrExpired          = errors.New("token expired")
	ErrInvalidSignature = errors.New("token signature invalid")
)

const TTL = 24 * time.Hour

type Claims struct {
	UserID uint
	Role   models.Role
}

// Service signs and verifies stateless session tokens. The secret comes from
// configuration and is fixed for the lifetime of the process.
type Service struct {
	Secret []byte

	// Now is overridable in tests to pin the clock. Nil means time.Now.
	Now func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *Service) Issue(userID uint, role models.Role) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": string(role),
		"iat":  now.Unix(),
		"exp":  now.Add(TTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.Secret)
}

func (s *Service) Verify(raw string) (*Claims, error) {
	t, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.Secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrMalformed
		}
	}
	if !t.Valid {
		return nil, ErrInvalidSignature
	}

	claims, ok := t.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrMalformed
	}
	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, ErrMalformed
	}
	roleRaw, ok := claims["role"].(string)
	if !ok {
		return nil, ErrMalformed
	}
	role := models.Role(roleRaw)
	if !role.Valid() {
		return nil, ErrMalformed
	}

	return &Claims{UserID: uint(sub), Role: role}, nil
}
