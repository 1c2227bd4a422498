package httpx

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

var (
	errMissingCredentials = errors.New("missing credentials")
	errUnexpectedSigning  = errors.New("unexpected signing method")
	errNotAdmin           = errors.New("token does not carry an admin role")
)

// Admin roles accepted in the bearer token "role" claim. service_role is
// what the platform's service tokens carry.
var adminRoles = map[string]struct{}{
	"admin":        {},
	"service_role": {},
}

// AdminAuth guards the diagnostics API. Requests authenticate with either
// the static X-API-Key or an HMAC-signed bearer token carrying an admin
// role claim. An empty AuthConfig disables the gate (local development).
type AdminAuth struct {
	APIKey    string
	JWTSecret string
}

// Middleware wraps next with the admin gate.
func (a *AdminAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.APIKey == "" && a.JWTSecret == "" {
			next.ServeHTTP(w, r)
			return
		}

		if err := a.authorize(r); err != nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (a *AdminAuth) authorize(r *http.Request) error {
	if a.APIKey != "" && r.Header.Get("X-API-Key") == a.APIKey {
		return nil
	}

	if a.JWTSecret == "" {
		return errMissingCredentials
	}

	raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if raw == "" || raw == r.Header.Get("Authorization") {
		return errMissingCredentials
	}

	return a.verifyToken(raw)
}

func (a *AdminAuth) verifyToken(raw string) error {
	claims := jwt.MapClaims{}

	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigning
		}

		return []byte(a.JWTSecret), nil
	})
	if err != nil {
		return err
	}

	role, _ := claims["role"].(string)
	if _, ok := adminRoles[role]; !ok {
		return errNotAdmin
	}

	return nil
}
