package session

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef"

func identityEcho(t *testing.T, sessions *Sessions, cookies []*http.Cookie) string {
	t.Helper()

	var resolved string
	handler := sessions.WithIdentity(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resolved = UserIDFromContext(r.Context())
	}))

	request := httptest.NewRequest(http.MethodGet, "/urls", nil)
	for _, cookie := range cookies {
		request.AddCookie(cookie)
	}
	handler.ServeHTTP(httptest.NewRecorder(), request)

	return resolved
}

func issuedCookie(t *testing.T, sessions *Sessions, userID string) *http.Cookie {
	t.Helper()

	recorder := httptest.NewRecorder()
	require.NoError(t, sessions.Issue(recorder, userID))
	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)

	return cookies[0]
}

func TestIssueThenResolve(t *testing.T) {
	sessions := New("session", []byte(testSecret), time.Hour)

	cookie := issuedCookie(t, sessions, "user-42")
	assert.True(t, cookie.HttpOnly)

	resolved := identityEcho(t, sessions, []*http.Cookie{cookie})
	assert.Equal(t, "user-42", resolved)
}

func TestNoCookieIsAnonymous(t *testing.T) {
	sessions := New("session", []byte(testSecret), time.Hour)

	resolved := identityEcho(t, sessions, nil)
	assert.Empty(t, resolved)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	sessions := New("session", []byte(testSecret), time.Hour)

	cookie := issuedCookie(t, sessions, "user-42")
	cookie.Value += "x"

	resolved := identityEcho(t, sessions, []*http.Cookie{cookie})
	assert.Empty(t, resolved)
}

func TestForeignSecretIsAnonymous(t *testing.T) {
	sessions := New("session", []byte(testSecret), time.Hour)
	foreign := New("session", []byte("another-secret-0"), time.Hour)

	cookie := issuedCookie(t, foreign, "user-42")

	resolved := identityEcho(t, sessions, []*http.Cookie{cookie})
	assert.Empty(t, resolved)
}

func TestExpiredSessionIsAnonymous(t *testing.T) {
	sessions := New("session", []byte(testSecret), -time.Minute)

	cookie := issuedCookie(t, sessions, "user-42")
	cookie.MaxAge = 0 // keep the client sending it even though the token expired

	resolved := identityEcho(t, sessions, []*http.Cookie{cookie})
	assert.Empty(t, resolved)
}

func TestClearExpiresCookie(t *testing.T) {
	sessions := New("session", []byte(testSecret), time.Hour)

	recorder := httptest.NewRecorder()
	sessions.Clear(recorder)

	cookies := recorder.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Empty(t, cookies[0].Value)
	assert.Negative(t, cookies[0].MaxAge)
}
