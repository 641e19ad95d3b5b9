package auth

import (
	"errors"

	"storefront-api/internal/domain/user"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Credentials is a validated login attempt; the password is only held long enough to compare it.
type Credentials struct {
	email    user.Email
	password user.Password
}

func NewCredentials(email, password string) (Credentials, error) {
	e, err := user.NewEmail(email)
	if err != nil {
		return Credentials{}, ErrInvalidCredentials
	}
	p, err := user.NewPassword(password)
	if err != nil {
		return Credentials{}, ErrInvalidCredentials
	}
	return Credentials{email: e, password: p}, nil
}

func (c Credentials) Email() user.Email       { return c.email }
func (c Credentials) Password() user.Password { return c.password }

// TokenPair is the session issued on login and rotated on refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
