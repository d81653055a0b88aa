package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/productivity-api/internal/auth"
)

var testSecret = []byte("middleware-test-secret")

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireAuth(testSecret), func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "no user in context"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return r
}

func doRequest(r *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["error"]
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	r := newProtectedRouter()

	w := doRequest(r, "")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Missing or invalid Authorization header", errorMessage(t, w))
}

func TestRequireAuth_WrongScheme(t *testing.T) {
	r := newProtectedRouter()

	token, err := auth.GenerateToken(uuid.New(), testSecret, auth.TokenValidity)
	require.NoError(t, err)

	w := doRequest(r, "Token "+token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Missing or invalid Authorization header", errorMessage(t, w))
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	r := newProtectedRouter()

	w := doRequest(r, "Bearer not.a.real.token")

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid or expired token", errorMessage(t, w))
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	r := newProtectedRouter()

	token, err := auth.GenerateToken(uuid.New(), testSecret, -time.Minute)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid or expired token", errorMessage(t, w))
}

func TestRequireAuth_BadSubject(t *testing.T) {
	r := newProtectedRouter()

	claims := jwt.RegisteredClaims{
		Subject:   "not-a-uuid",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Equal(t, "Invalid user ID in token", errorMessage(t, w))
}

func TestRequireAuth_ValidToken(t *testing.T) {
	r := newProtectedRouter()

	userID := uuid.New()
	token, err := auth.GenerateToken(userID, testSecret, auth.TokenValidity)
	require.NoError(t, err)

	w := doRequest(r, "Bearer "+token)

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, userID.String(), body["user_id"])
}
