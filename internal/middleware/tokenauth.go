// Package middleware provides HTTP middlewares for authentication, logging
// and metrics.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/atinyakov/FotoShop/internal/models"
	"github.com/atinyakov/FotoShop/internal/service"
)

type ctxKey string

const userKey ctxKey = "user"

// TokenResolver maps a bearer token to the user who owns it.
type TokenResolver interface {
	UserByToken(ctx context.Context, token string) (models.User, error)
}

// TokenAuth is a middleware that enforces bearer token authentication.
//
// The token is taken from the Authorization header and resolved through
// resolver. On success the user is stored in the request context. A missing
// or unknown token answers 401; a resolver failure answers 500. Both carry a
// JSON {message} body.
func TokenAuth(resolver TokenResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				unauthorized(w, "missing bearer token")
				return
			}
			user, err := resolver.UserByToken(r.Context(), token)
			if errors.Is(err, service.ErrSessionNotFound) {
				unauthorized(w, "invalid or expired token")
				return
			}
			if err != nil {
				writeMessage(w, http.StatusInternalServerError, "internal error")
				return
			}
			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	h := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	writeMessage(w, http.StatusUnauthorized, msg)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": msg})
}

// UserFromContext returns the authenticated user stored by TokenAuth.
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
