// Package session carries the logged-in user's identity across requests
// in a signed-JWT cookie. It only transports the user id; resolving the id
// to an account is the caller's concern.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims represents the JWT claims used by the system.
// It embeds standard JWT claims and adds the session's user identifier.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
}

// ContextKey is a custom type for storing values in context to avoid collisions.
type ContextKey string

// UserIDKey is the context key under which the middleware stores the
// resolved user id. Absent for anonymous requests.
const UserIDKey ContextKey = "userID"

// Sessions issues, clears and resolves the session cookie.
type Sessions struct {
	cookieName       string
	signingSecretKey []byte
	timeToLive       time.Duration
}

// New creates a Sessions helper for the given cookie name, HMAC signing
// secret and session lifetime.
func New(cookieName string, signingSecretKey []byte, timeToLive time.Duration) *Sessions {
	return &Sessions{
		cookieName:       cookieName,
		signingSecretKey: signingSecretKey,
		timeToLive:       timeToLive,
	}
}

// Issue starts a session for the given user id by setting a signed cookie.
// It is called after a successful login or registration.
func (s *Sessions) Issue(response http.ResponseWriter, userID string) error {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(s.timeToLive)),
		},
		UserID: userID,
	})

	JWTString, err := token.SignedString(s.signingSecretKey)
	if err != nil {
		return fmt.Errorf("error signing session token: %w", err)
	}

	http.SetCookie(response, &http.Cookie{
		Name:     s.cookieName,
		Value:    JWTString,
		Path:     "/",
		MaxAge:   int(s.timeToLive.Seconds()),
		HttpOnly: true,
	})

	return nil
}

// Clear ends the session by expiring the cookie.
func (s *Sessions) Clear(response http.ResponseWriter) {
	http.SetCookie(response, &http.Cookie{
		Name:     s.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}

// WithIdentity is an HTTP middleware that resolves the session cookie to a
// user id and stores it in the request context. A missing, expired or
// tampered cookie resolves to an anonymous request, never to an error
// response: the guarded handlers decide what anonymity means per route.
func (s *Sessions) WithIdentity(h http.Handler) http.Handler {
	middleware := func(response http.ResponseWriter, request *http.Request) {
		userID := s.resolveUserID(request)
		if userID == "" {
			h.ServeHTTP(response, request)

			return
		}

		ctx := context.WithValue(request.Context(), UserIDKey, userID)
		h.ServeHTTP(response, request.WithContext(ctx))
	}

	return http.HandlerFunc(middleware)
}

// UserIDFromContext returns the session user id stored by WithIdentity,
// or "" for anonymous requests.
func UserIDFromContext(ctx context.Context) string {
	userID, ok := ctx.Value(UserIDKey).(string)
	if !ok {
		return ""
	}

	return userID
}

func (s *Sessions) resolveUserID(request *http.Request) string {
	cookie, err := request.Cookie(s.cookieName)
	if err != nil {
		return ""
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(
		cookie.Value,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return s.signingSecretKey, nil
		},
	)
	if err != nil || !token.Valid {
		return ""
	}

	return claims.UserID
}
