package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Provider authenticates a caller and issues a bearer token.
type Provider interface {
	Authenticate(username string, password string) (string, error)
}

const tokenTTL = 12 * time.Hour

// StaticProvider holds a single credential pair, hashed at construction.
type StaticProvider struct {
	username     string
	passwordHash []byte
	secret       []byte
}

func NewStaticProvider(username string, password string, secret string) (*StaticProvider, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return &StaticProvider{
		username:     username,
		passwordHash: hash,
		secret:       []byte(secret),
	}, nil
}

// Authenticate checks the credential pair and returns a signed HS256 token.
func (p *StaticProvider) Authenticate(username string, password string) (string, error) {
	if username != p.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(p.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": username,
		"iat": now.Unix(),
		"exp": now.Add(tokenTTL).Unix(),
	})

	return token.SignedString(p.secret)
}
