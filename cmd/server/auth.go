package main

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/http"
	"strings"
)

const sessionCookieName = "precificalc_session"

type userContextKey struct{}

// authService implements the demo login: any non-empty e-mail and password
// pair is accepted and remembered in an HMAC-signed cookie. It gates nothing.
type authService struct {
	sessionSecret []byte
}

// newAuthService signs sessions with sessionSecret, or with a random key when
// it is empty (sessions then end on restart).
func newAuthService(sessionSecret string) (*authService, error) {
	secret := []byte(sessionSecret)
	if len(secret) == 0 {
		secret = make([]byte, 32)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate session secret: %w", err)
		}
	}
	return &authService{sessionSecret: secret}, nil
}

func (a *authService) validateCredentials(email, password string) bool {
	return strings.TrimSpace(email) != "" && password != ""
}

func (a *authService) createSessionValue(email string) string {
	payload := base64.RawURLEncoding.EncodeToString([]byte(email))
	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	signature := hex.EncodeToString(mac.Sum(nil))
	return payload + "." + signature
}

func (a *authService) verifySessionValue(value string) (string, bool) {
	payload, signature, ok := strings.Cut(value, ".")
	if !ok {
		return "", false
	}

	mac := hmac.New(sha256.New, a.sessionSecret)
	_, _ = mac.Write([]byte(payload))
	expected := mac.Sum(nil)

	provided, err := hex.DecodeString(signature)
	if err != nil {
		return "", false
	}
	if !hmac.Equal(provided, expected) {
		return "", false
	}

	decoded, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil || len(decoded) == 0 {
		return "", false
	}

	return string(decoded), true
}

func (a *authService) setSessionCookie(w http.ResponseWriter, email string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    a.createSessionValue(email),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (a *authService) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// sessionMiddleware stores the signed-in e-mail, if any, in the request
// context. Requests without a valid session pass through unchanged.
func (a *authService) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil {
			if email, ok := a.verifySessionValue(cookie.Value); ok {
				r = r.WithContext(context.WithValue(r.Context(), userContextKey{}, email))
			}
		}
		next.ServeHTTP(w, r)
	})
}

func userFromContext(ctx context.Context) string {
	email, _ := ctx.Value(userContextKey{}).(string)
	return email
}

// greetingName is the part of an e-mail before "@".
func greetingName(email string) string {
	name, _, _ := strings.Cut(email, "@")
	return name
}
