package auth

import (
	"errors"
	"fmt"
	"log"
	"time"

	"broilers/middleware"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"
	"golang.org/x/crypto/bcrypt"
)

const accessTokenTTL = 12 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrLoginDisabled      = errors.New("admin login is not configured")
)

// Service checks the admin password and issues signed access tokens.
type Service struct {
	secret []byte
	hash   []byte
	clock  clock.Clock
}

// NewService takes either a bcrypt hash or a plain password; the plain
// password is hashed once here and never kept. With neither set, every
// login fails.
func NewService(secret []byte, passwordHash, password string, clk clock.Clock) (*Service, error) {
	if clk == nil {
		clk = clock.WallClock
	}
	s := &Service{secret: secret, clock: clk}

	switch {
	case passwordHash != "":
		if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
			return nil, fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash: %w", err)
		}
		s.hash = []byte(passwordHash)
	case password != "":
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("cannot hash admin password: %w", err)
		}
		s.hash = hash
	default:
		log.Println("auth: no admin password configured; admin login disabled")
	}
	return s, nil
}

// Login returns a signed admin token when password matches.
func (s *Service) Login(password string) (string, time.Time, error) {
	if s.hash == nil {
		return "", time.Time{}, ErrLoginDisabled
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	return s.IssueToken()
}

func (s *Service) IssueToken() (string, time.Time, error) {
	now := s.clock.Now()
	expires := now.Add(accessTokenTTL)
	claims := &middleware.Claims{
		Username: "admin",
		Role:     []string{middleware.RoleAdmin},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expires, nil
}
