package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadzrin/tawarruq_financing_app/internal/middleware"
)

const (
	testSecret = "test-secret"
	testIssuer = "tawarruq-financing-app"
)

type testClaims struct {
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func signToken(t *testing.T, claims testClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func validClaims(role string) testClaims {
	return testClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    testIssuer,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
}

func authTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	protected := r.Group("/", middleware.AuthMiddleware(testSecret, testIssuer))
	protected.GET("/me", func(c *gin.Context) {
		userID, _ := middleware.GetUserIDFromContext(c)
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	protected.GET("/admin", middleware.RequireAdmin(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, "/me", signToken(t, validClaims("")))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "user-1")
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, "/me", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_WrongIssuer(t *testing.T) {
	r := authTestRouter()

	claims := validClaims("")
	claims.Issuer = "some-other-service"
	w := doRequest(r, "/me", signToken(t, claims))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token issuer not recognized")
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	r := authTestRouter()

	claims := validClaims("")
	claims.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	w := doRequest(r, "/me", signToken(t, claims))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token has expired")
}

func TestRequireAdmin_RejectsNonAdmin(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, "/admin", signToken(t, validClaims("customer")))

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Admin access required")
}

func TestRequireAdmin_AllowsAdmin(t *testing.T) {
	r := authTestRouter()

	w := doRequest(r, "/admin", signToken(t, validClaims(middleware.RoleAdmin)))

	assert.Equal(t, http.StatusOK, w.Code)
}
