package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/AlexAlvarezAlmendros/FincasTrimarWeb-sub001/internal/utils"
)

const testSecret = "unit-test-secret"

func mintToken(t *testing.T, role string, expiresIn time.Duration) string {
	t.Helper()
	claims := AdminClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-42",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func callProtected(t *testing.T, authHeader string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var gotSubject string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sub, ok := r.Context().Value(ContextKeyUserID).(string); ok {
			gotSubject = sub
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/properties", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	RequireAdmin(testSecret)(next).ServeHTTP(rec, req)
	return rec, gotSubject
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) utils.ErrorResponse {
	t.Helper()
	var body utils.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestRequireAdminValidToken(t *testing.T) {
	rec, subject := callProtected(t, "Bearer "+mintToken(t, RoleAdmin, time.Hour))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "user-42", subject)
}

func TestRequireAdminMissingHeader(t *testing.T) {
	rec, _ := callProtected(t, "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, utils.ErrCodeUnauthorized, decodeError(t, rec).Code)
}

func TestRequireAdminMalformedHeader(t *testing.T) {
	rec, _ := callProtected(t, "Token abc123")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdminGarbageToken(t *testing.T) {
	rec, _ := callProtected(t, "Bearer not.a.jwt")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, utils.ErrCodeUnauthorized, decodeError(t, rec).Code)
}

func TestRequireAdminExpiredToken(t *testing.T) {
	rec, _ := callProtected(t, "Bearer "+mintToken(t, RoleAdmin, -time.Hour))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, utils.ErrCodeTokenExpired, decodeError(t, rec).Code)
}

func TestRequireAdminWrongRole(t *testing.T) {
	rec, _ := callProtected(t, "Bearer "+mintToken(t, "viewer", time.Hour))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireAdminWrongSecret(t *testing.T) {
	claims := AdminClaims{
		Role:             RoleAdmin,
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	rec, _ := callProtected(t, "Bearer "+signed)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
