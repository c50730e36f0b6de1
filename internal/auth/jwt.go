// Package auth issues and verifies the signed session tokens handed out on
// sign-in. Tokens are HS256 JWTs whose subject is the user's case-folded
// email.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by Verify for any token that cannot be
// trusted: bad signature, wrong algorithm, wrong issuer, expired or missing
// subject.
var ErrInvalidToken = errors.New("invalid session token")

// Claims is the JWT payload of a session.
type Claims struct {
	jwt.RegisteredClaims
}

// Signer mints and checks session tokens.
type Signer struct {
	Secret []byte
	Issuer string
	TTL    time.Duration

	now func() time.Time
}

// NewSigner returns a Signer for the given secret.
func NewSigner(secret, issuer string, ttl time.Duration) *Signer {
	return &Signer{Secret: []byte(secret), Issuer: issuer, TTL: ttl, now: time.Now}
}

func (s *Signer) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// Issue signs a token for subject valid for TTL.
func (s *Signer) Issue(subject string) (string, time.Time, error) {
	now := s.clock().UTC()
	exp := now.Add(s.TTL)
	claims := Claims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.Issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	}}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session: %w", err)
	}
	return tok, exp.Truncate(time.Second), nil
}

// Verify parses raw and returns its subject.
func (s *Signer) Verify(raw string) (string, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.clock),
	}
	if s.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.Issuer))
	}
	var c Claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(*jwt.Token) (any, error) {
		return s.Secret, nil
	}, opts...)
	if err != nil || !tok.Valid {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if c.Subject == "" {
		return "", fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}
	return c.Subject, nil
}
