package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/codevaulthq/codevault/adapters/http"
	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

func newSessionRouter(t *testing.T, jwtSvc *auth.JWTService) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(httpAdapter.ErrorMiddleware(logger.NewNopLogger()))
	handler := httpAdapter.NewSessionHandler(authUC.NewEstablishSessionUseCase(jwtSvc), "development")
	router.POST("/api/session", handler.Establish)
	return router
}

func postSession(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/session", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range w.Result().Cookies() {
		if c.Name == httpAdapter.SessionCookieName {
			return c
		}
	}
	return nil
}

func TestSessionBridge_ValidTokenSetsCookie(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	router := newSessionRouter(t, jwtSvc)

	userID := uuid.New()
	token, err := jwtSvc.GenerateToken(userID, "Ada", "ada@example.com", "")
	require.NoError(t, err)

	w := postSession(t, router, gin.H{"idToken": token})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool   `json:"success"`
		UID     string `json:"uid"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, userID.String(), resp.UID)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Equal(t, token, cookie.Value)
	assert.Equal(t, 432000, cookie.MaxAge)
	assert.Equal(t, "/", cookie.Path)
	assert.True(t, cookie.HttpOnly)
	assert.False(t, cookie.Secure)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
}

func TestSessionBridge_NullTokenClearsCookie(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	router := newSessionRouter(t, jwtSvc)

	w := postSession(t, router, gin.H{"idToken": nil})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool `json:"success"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}

func TestSessionBridge_InvalidTokenLeavesNoCookie(t *testing.T) {
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	router := newSessionRouter(t, jwtSvc)

	w := postSession(t, router, gin.H{"idToken": "not.a.token"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestSessionBridge_ExpiredTokenRejected(t *testing.T) {
	// a negative lifespan mints an already-expired token
	minting := auth.NewJWTService("test-secret", -time.Hour)
	token, err := minting.GenerateToken(uuid.New(), "Ada", "ada@example.com", "")
	require.NoError(t, err)

	router := newSessionRouter(t, auth.NewJWTService("test-secret", time.Hour))

	w := postSession(t, router, gin.H{"idToken": token})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestSessionBridge_NotConfiguredAnswers503(t *testing.T) {
	router := newSessionRouter(t, auth.NewJWTService("", time.Hour))

	w := postSession(t, router, gin.H{"idToken": "any.token.value"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Nil(t, sessionCookie(w))
}

func TestSessionBridge_ProductionCookieIsSecure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)

	router := gin.New()
	router.Use(httpAdapter.ErrorMiddleware(logger.NewNopLogger()))
	handler := httpAdapter.NewSessionHandler(authUC.NewEstablishSessionUseCase(jwtSvc), "production")
	router.POST("/api/session", handler.Establish)

	token, err := jwtSvc.GenerateToken(uuid.New(), "Ada", "ada@example.com", "")
	require.NoError(t, err)

	w := postSession(t, router, gin.H{"idToken": token})
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(w)
	require.NotNil(t, cookie)
	assert.True(t, cookie.Secure)
}
