package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenService issues and verifies the API's bearer tokens.
//
// Tokens are stateless JWTs: the subject claim carries the user's email and
// the expiry claim carries an absolute timestamp. The server keeps no
// session store — every request re-verifies the signature and expiry with
// the configured secret, and that's the entire session model.
//
//	HEADER.PAYLOAD.SIGNATURE
//	- Header: {"alg":"HS256","typ":"JWT"}
//	- Payload: {"sub":"a@x.com","exp":1234567890,...}
//	- Signature: HMAC(header+"."+payload, secret)
type TokenService struct {
	secret []byte
	method *jwt.SigningMethodHMAC
	ttl    time.Duration
}

// NewTokenService creates a TokenService.
//
// algorithm names the HMAC signing method (HS256, HS384 or HS512) — it comes
// from configuration, as does the secret and the token lifetime. Asymmetric
// methods are rejected: issue and verify happen in the same process, so
// there's no key-distribution problem for RS/ES to solve.
func NewTokenService(secret, algorithm string, ttl time.Duration) (*TokenService, error) {
	if len(secret) < 16 {
		return nil, errors.New("auth: token secret must be at least 16 characters")
	}
	if ttl <= 0 {
		return nil, errors.New("auth: token ttl must be positive")
	}

	method, ok := jwt.GetSigningMethod(algorithm).(*jwt.SigningMethodHMAC)
	if !ok || method == nil {
		return nil, fmt.Errorf("auth: unsupported signing algorithm %q", algorithm)
	}

	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}, nil
}

type claims struct {
	jwt.RegisteredClaims
}

// Generate signs a new access token for the given subject (the user's
// email), expiring after the configured ttl.
func (s *TokenService) Generate(subject string) (string, error) {
	return s.GenerateWithDuration(subject, s.ttl)
}

// GenerateWithDuration signs a token with a custom lifetime.
// Used by tests to mint already-expired tokens.
func (s *TokenService) GenerateWithDuration(subject string, d time.Duration) (string, error) {
	now := time.Now()

	c := claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(d)),
		},
	}

	token := jwt.NewWithClaims(s.method, c)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("auth: signing token: %w", err)
	}

	return signed, nil
}

// Validate parses and verifies a token string, returning the subject claim.
//
// A token fails when its signature doesn't verify, its claims don't parse,
// the subject is absent, or it has expired. Callers collapse every one of
// these into the same unauthorized outcome — the reason a token was rejected
// is never surfaced to the client.
//
// jwt.WithValidMethods pins verification to the configured algorithm so a
// token claiming alg=none (or any other method) is rejected outright.
func (s *TokenService) Validate(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(
		tokenStr,
		&claims{},
		func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("auth: unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{s.method.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", fmt.Errorf("auth: token expired")
		}
		return "", fmt.Errorf("auth: invalid token: %w", err)
	}

	c, ok := token.Claims.(*claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("auth: invalid token claims")
	}

	if c.Subject == "" {
		return "", fmt.Errorf("auth: token has no subject")
	}

	return c.Subject, nil
}
