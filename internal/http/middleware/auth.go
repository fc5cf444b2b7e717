// Package middleware authenticates bearer tokens issued by the identity
// provider and exposes the caller's account to handlers.
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/intima/internal/account"
	"github.com/MrJamesThe3rd/intima/internal/http/respond"
)

type Claims struct {
	Role account.Role `json:"role,omitempty"`
	jwt.RegisteredClaims
}

type AccountEnsurer interface {
	Ensure(ctx context.Context, id uuid.UUID, role account.Role) (*account.Account, error)
}

type Auth struct {
	accounts AccountEnsurer
	secret   []byte
	issuer   string
}

func NewAuth(accounts AccountEnsurer, secret, issuer string) *Auth {
	return &Auth{accounts: accounts, secret: []byte(secret), issuer: issuer}
}

type ctxKey struct{}

func WithAccount(ctx context.Context, acc *account.Account) context.Context {
	return context.WithValue(ctx, ctxKey{}, acc)
}

// AccountFrom returns the authenticated account. It panics outside Authenticate.
func AccountFrom(ctx context.Context) *account.Account {
	return ctx.Value(ctxKey{}).(*account.Account)
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="intima"`)
	respond.JSON(w, http.StatusUnauthorized, respond.ErrorBody{Code: "unauthorized", Message: msg})
}

func (a *Auth) parse(raw string) (*Claims, uuid.UUID, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims Claims

	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, uuid.Nil, err
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return nil, uuid.Nil, errors.New("subject is not an account id")
	}

	return &claims, id, nil
}

// Authenticate registers the account on its first authenticated request.
func (a *Auth) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		scheme, raw, ok := strings.Cut(r.Header.Get("Authorization"), " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || raw == "" {
			unauthorized(w, "bearer token required")
			return
		}

		claims, id, err := a.parse(strings.TrimSpace(raw))
		if err != nil {
			unauthorized(w, "invalid token")
			return
		}

		acc, err := a.accounts.Ensure(r.Context(), id, claims.Role)
		if err != nil {
			respond.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithAccount(r.Context(), acc)))
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !AccountFrom(r.Context()).IsAdmin() {
			respond.JSON(w, http.StatusForbidden, respond.ErrorBody{Code: "forbidden", Message: "admin role required"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IssueToken signs a token the way the identity provider does. It backs
// local tooling and tests.
func IssueToken(secret string, id uuid.UUID, role account.Role, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
