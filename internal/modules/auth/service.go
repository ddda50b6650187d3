// Package auth implements the single-admin login flow. The password comes
// from configuration and is compared with bcrypt; successful login issues a
// JWT the admin middleware validates on every request.
package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/OlegRadinuk/lifestyle-crimea/internal/pkg/jwt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

type Service struct {
	passwordHash []byte
	tokens       *jwt.Service
}

// NewService hashes the configured plaintext password once at startup so the
// raw value never sits in the struct.
func NewService(adminPassword string, tokens *jwt.Service) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{passwordHash: hash, tokens: tokens}, nil
}

func (s *Service) Login(password string) (string, error) {
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.tokens.GenerateToken("admin")
}
