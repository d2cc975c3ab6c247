package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/campus-market/listing-service/internal/platform/logger"
	"github.com/campus-market/listing-service/internal/product/domain"
	"github.com/golang-jwt/jwt/v5"
)

// Authorizer is the capability check guarding destructive operations. It is
// deliberately pluggable: the shared-secret variant can be swapped for a
// real credential scheme without touching the delete handler.
type Authorizer interface {
	Authorize(r *http.Request) error
}

// forbiddenError carries the caller-facing denial message; every denial
// matches domain.ErrForbidden under errors.Is.
type forbiddenError struct{ msg string }

func (e *forbiddenError) Error() string { return e.msg }

func (e *forbiddenError) Unwrap() error { return domain.ErrForbidden }

// SecretAuthorizer compares the "password" query parameter against one fixed
// secret. Stateless, no expiry, no per-user identity.
type SecretAuthorizer struct {
	secret string
}

func NewSecretAuthorizer(secret string) *SecretAuthorizer {
	return &SecretAuthorizer{secret: secret}
}

func (a *SecretAuthorizer) Authorize(r *http.Request) error {
	supplied := r.URL.Query().Get("password")
	if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(a.secret)) != 1 {
		return &forbiddenError{msg: "Forbidden: Incorrect password"}
	}
	return nil
}

// adminClaims is the token payload expected from an admin-issued JWT.
type adminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// TokenAuthorizer validates a Bearer HMAC token carrying an admin claim.
type TokenAuthorizer struct {
	jwtSecret string
}

func NewTokenAuthorizer(jwtSecret string) *TokenAuthorizer {
	return &TokenAuthorizer{jwtSecret: jwtSecret}
}

func (a *TokenAuthorizer) Authorize(r *http.Request) error {
	authHeader := r.Header.Get("Authorization")
	parts := strings.Fields(authHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return &forbiddenError{msg: "Forbidden: missing bearer token"}
	}

	claims := &adminClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, &forbiddenError{msg: "unexpected signing method"}
		}
		return []byte(a.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return &forbiddenError{msg: "Forbidden: invalid token"}
	}
	if !claims.Admin {
		return &forbiddenError{msg: "Forbidden: not an administrator"}
	}
	return nil
}

// AdminOnly rejects the request with 403 before the handler runs when the
// authorizer denies it. No store mutation can happen on a deny.
func AdminOnly(auth Authorizer, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := auth.Authorize(r); err != nil {
				log.Warn("AdminOnly: authorization denied", "path", r.URL.Path, "error", err.Error())
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusForbidden)
				json.NewEncoder(w).Encode(map[string]string{"message": err.Error()})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
