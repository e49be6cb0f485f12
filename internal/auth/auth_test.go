package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testConfig = Config{Secret: "test-secret", Issuer: "i5e.identity"}

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() jwt.MapClaims {
	return jwt.MapClaims{
		"sub":    "tracker-7",
		"iss":    "i5e.identity",
		"exp":    time.Now().Add(time.Hour).Unix(),
		"scopes": []string{ScopeReportsWrite},
		"scope":  "reports:read extra",
	}
}

func TestParseValidToken(t *testing.T) {
	claims, err := Parse(signToken(t, testConfig.Secret, validClaims()), testConfig)
	require.NoError(t, err)
	require.Equal(t, "tracker-7", claims.Subject)
	require.True(t, claims.HasScope(ScopeReportsWrite))
	require.True(t, claims.HasScope(ScopeReportsRead))
	require.True(t, claims.HasScope("extra"))
	require.False(t, claims.HasScope("admin"))
	require.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt, 2*time.Second)
}

func TestParseRejects(t *testing.T) {
	expired := validClaims()
	expired["exp"] = time.Now().Add(-time.Minute).Unix()

	wrongIssuer := validClaims()
	wrongIssuer["iss"] = "someone-else"

	noSubject := validClaims()
	delete(noSubject, "sub")

	noExpiry := validClaims()
	delete(noExpiry, "exp")

	tests := map[string]string{
		"wrong secret": signToken(t, "other-secret", validClaims()),
		"expired":      signToken(t, testConfig.Secret, expired),
		"wrong issuer": signToken(t, testConfig.Secret, wrongIssuer),
		"no subject":   signToken(t, testConfig.Secret, noSubject),
		"no expiry":    signToken(t, testConfig.Secret, noExpiry),
		"garbage":      "not-a-jwt",
	}
	for name, token := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(token, testConfig)
			require.ErrorIs(t, err, ErrInvalidToken)
		})
	}

	_, err := Parse("  ", testConfig)
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestParseRejectsMalformedScopes(t *testing.T) {
	claims := validClaims()
	claims["scopes"] = 42
	_, err := Parse(signToken(t, testConfig.Secret, claims), testConfig)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestBearerToken(t *testing.T) {
	require.Equal(t, "abc", bearerToken("Bearer abc"))
	require.Equal(t, "abc", bearerToken("bearer abc"))
	require.Empty(t, bearerToken("Basic abc"))
	require.Empty(t, bearerToken("Bearer"))
	require.Empty(t, bearerToken(""))
}

func TestNilClaimsHaveNoScopes(t *testing.T) {
	var claims *Claims
	require.False(t, claims.HasScope(ScopeReportsRead))
}

func TestMiddleware(t *testing.T) {
	var seen *Claims
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = FromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	handler := NewMiddleware(testConfig, SkipPaths("/healthz")).Wrap(next)

	req := httptest.NewRequest(http.MethodGet, "/v1/workout-types", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	require.JSONEq(t, `{"type":"missing_token","detail":"missing bearer token"}`, rr.Body.String())
	require.Contains(t, rr.Header().Get("WWW-Authenticate"), "missing_token")

	req = httptest.NewRequest(http.MethodGet, "/v1/workout-types", nil)
	req.Header.Set("Authorization", "Basic abc")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/workout-types", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	require.Contains(t, rr.Body.String(), `"type":"invalid_token"`)

	req = httptest.NewRequest(http.MethodGet, "/v1/workout-types", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, testConfig.Secret, validClaims()))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.NotNil(t, seen)
	require.Equal(t, "tracker-7", seen.Subject)

	seen = nil
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusNoContent, rr.Code)
	require.Nil(t, seen)
}
