// Package session issues and verifies the bearer tokens that scope a cart.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "minicart"

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSecret     = errors.New("session secret not configured")
)

type Claims struct {
	SessionID string `json:"sid"`
	jwt.RegisteredClaims
}

type TokenMaker struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenMaker(secret string, ttl time.Duration) *TokenMaker {
	return &TokenMaker{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Enabled reports whether tokens can be issued at all.
func (t *TokenMaker) Enabled() bool {
	return t != nil && len(t.secret) > 0
}

// NewSession starts a session with a fresh id and returns its signed token.
func (t *TokenMaker) NewSession() (token, sessionID string, err error) {
	if !t.Enabled() {
		return "", "", ErrNoSecret
	}

	sessionID = uuid.NewString()
	now := t.now()

	claims := Claims{
		SessionID: sessionID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sessionID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.ttl)),
		},
	}

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
	if err != nil {
		return "", "", err
	}
	return token, sessionID, nil
}

func (t *TokenMaker) Parse(tokenStr string) (Claims, error) {
	if !t.Enabled() {
		return Claims{}, ErrNoSecret
	}

	var c Claims
	token, err := jwt.ParseWithClaims(tokenStr, &c, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil || token == nil || !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if _, err := uuid.Parse(c.SessionID); err != nil {
		return Claims{}, ErrInvalidToken
	}
	return c, nil
}

type ctxKey struct{}

func WithSessionID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IDFromContext returns the session id set by the auth middleware, or "".
func IDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}
