package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const (
	GinContextKeyUserID = "userID"

	// SessionCookieName is set by the session bridge and read back here on
	// every authenticated request.
	SessionCookieName = "idToken"
)

// SessionMiddleware authenticates a request from the session cookie. The
// cookie is the only trusted carrier; tokens in headers are ignored so a
// page-scoped read can never be spoofed with a stray Authorization header.
func SessionMiddleware(jwtSvc *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {

		tokenString, err := c.Cookie(SessionCookieName)
		if err != nil || tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}

		claims, err := jwtSvc.ValidateToken(tokenString)
		if err != nil {
			if errors.Is(err, auth.ErrNotInitialized) {
				c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "authentication is not configured"})
				return
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(GinContextKeyUserID, claims.UserID)

		c.Next()
	}
}

func GetUserIDFromGinContext(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := c.Get(GinContextKeyUserID)
	if !ok {
		return uuid.Nil, false
	}
	userIDUUID, ok := userID.(uuid.UUID)
	if !ok {
		return uuid.Nil, false
	}
	return userIDUUID, true
}

// ErrorMiddleware renders the last error pushed via c.Error. Handlers stay
// free of status-code mapping.
func ErrorMiddleware(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var appErr *apperror.AppError
		if !errors.As(err, &appErr) {
			appErr = apperror.NewInternal("unexpected error", err)
		}

		status := apperror.ToHTTPStatus(appErr)
		if status >= http.StatusInternalServerError {
			log.Error("request failed", appErr,
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
			)
		}

		c.JSON(status, appErr.ToJSON())
	}
}
