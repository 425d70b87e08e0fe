package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

const (
	// sessionCookieMaxAge is five days, matching the ID token lifespan.
	sessionCookieMaxAge = 432000
	sessionCookiePath   = "/"
)

// SessionHandler is the server half of the session bridge: the client posts
// its current ID token (or null on sign-out) and the server answers with a
// Set-Cookie. The cookie is only ever written after verification succeeds.
type SessionHandler struct {
	establishSessionUseCase *authUC.EstablishSessionUseCase
	secureCookies           bool
}

func NewSessionHandler(sessionUC *authUC.EstablishSessionUseCase, env string) *SessionHandler {
	return &SessionHandler{
		establishSessionUseCase: sessionUC,
		secureCookies:           env == "production",
	}
}

func (h *SessionHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookieName, value, maxAge, sessionCookiePath, "", h.secureCookies, true)
}

func (h *SessionHandler) Establish(c *gin.Context) {
	var req SessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	// a null token is a sign-out: clear the cookie and succeed
	if req.IDToken == nil {
		h.setSessionCookie(c, "", -1)
		c.JSON(http.StatusOK, gin.H{"success": true})
		return
	}

	info, err := h.establishSessionUseCase.Execute(c.Request.Context(), *req.IDToken)
	if err != nil {
		// an invalid token must not leave a cookie behind
		c.Error(err)
		return
	}

	h.setSessionCookie(c, *req.IDToken, sessionCookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true, "uid": info.UserID})
}
