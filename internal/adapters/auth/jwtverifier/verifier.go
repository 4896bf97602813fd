package jwtverifier

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"campus-dashboard/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrNotConfigured = errors.New("jwt verifier not configured")
	ErrTokenEmpty    = errors.New("token is empty")
	ErrInvalidToken  = errors.New("invalid token")
)

type Config struct {
	// Secret HMAC compartido con el emisor de tokens del campus (HS256).
	Secret   string
	Issuer   string // opcional
	Audience string // opcional
}

// campusClaims: sub es el id del usuario; preferred_username el username.
type campusClaims struct {
	jwt.RegisteredClaims
	PreferredUsername string `json:"preferred_username"`
	Email             string `json:"email"`
}

// Verifier implementa auth.AuthVerifier validando el JWT localmente.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func New(cfg Config) *Verifier {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if iss := strings.TrimSpace(cfg.Issuer); iss != "" {
		opts = append(opts, jwt.WithIssuer(iss))
	}
	if aud := strings.TrimSpace(cfg.Audience); aud != "" {
		opts = append(opts, jwt.WithAudience(aud))
	}

	return &Verifier{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

func (v *Verifier) IsConfigured() bool {
	return v != nil && len(v.secret) > 0
}

func (v *Verifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	if !v.IsConfigured() {
		return auth.Claims{}, ErrNotConfigured
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return auth.Claims{}, ErrTokenEmpty
	}

	var claims campusClaims
	_, err := v.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return auth.Claims{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	out := auth.Claims{
		UserID:   strings.TrimSpace(claims.Subject),
		Username: strings.TrimSpace(claims.PreferredUsername),
		Email:    strings.TrimSpace(claims.Email),
	}
	if out.UserID == "" && out.Username == "" {
		return auth.Claims{}, fmt.Errorf("%w: missing sub and preferred_username", ErrInvalidToken)
	}
	return out, nil
}
