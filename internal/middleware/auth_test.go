package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestJWTAuth(t *testing.T) {
	var gotUserID, gotEmail string
	handler := JWTAuth(testSecret)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		gotEmail = GetUserEmail(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	validToken := signToken(t, testSecret, jwt.MapClaims{
		"user_id": "u1",
		"email":   "u1@example.com",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	testCases := []struct {
		name       string
		authHeader string
		wantStatus int
		wantUserID string
	}{
		{name: "valid token", authHeader: "Bearer " + validToken, wantStatus: http.StatusOK, wantUserID: "u1"},
		{name: "missing header", authHeader: "", wantStatus: http.StatusUnauthorized},
		{name: "malformed header", authHeader: "Token abc", wantStatus: http.StatusUnauthorized},
		{name: "wrong secret", authHeader: "Bearer " + signToken(t, "other-secret", jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		}), wantStatus: http.StatusUnauthorized},
		{name: "expired token", authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"user_id": "u1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		}), wantStatus: http.StatusUnauthorized},
		{name: "missing user id claim", authHeader: "Bearer " + signToken(t, testSecret, jwt.MapClaims{
			"exp": time.Now().Add(time.Hour).Unix(),
		}), wantStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			gotUserID, gotEmail = "", ""
			req := httptest.NewRequest(http.MethodGet, "/api/settings", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			require.Equal(t, tc.wantStatus, rec.Code)
			require.Equal(t, tc.wantUserID, gotUserID)
			if tc.wantStatus == http.StatusOK {
				require.Equal(t, "u1@example.com", gotEmail)
			}
		})
	}
}
