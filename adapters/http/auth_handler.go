package http

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

const (
	oauthStateCookieName   = "oauthState"
	oauthStateCookieMaxAge = 600
)

type AuthHandler struct {
	loginUseCase       *authUC.LoginUseCase
	signupUseCase      *authUC.SignupUseCase
	googleLoginUseCase *authUC.GoogleLoginUseCase
	secureCookies      bool
}

func NewAuthHandler(loginUC *authUC.LoginUseCase, signupUC *authUC.SignupUseCase, googleUC *authUC.GoogleLoginUseCase, env string) *AuthHandler {
	return &AuthHandler{
		loginUseCase:       loginUC,
		signupUseCase:      signupUC,
		googleLoginUseCase: googleUC,
		secureCookies:      env == "production",
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, authUC.ErrInvalidCredentials) {
			c.Error(apperror.NewUnauthorized("email or password is incorrect", nil))
			return
		}
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id_token":  output.IDToken,
		"user_id":   output.UserID,
		"name":      output.Name,
		"email":     output.Email,
		"photo_url": output.PhotoURL,
	})
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.signupUseCase.Execute(c.Request.Context(), authUC.SignupInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id_token": output.IDToken,
		"user_id":  output.UserID,
		"name":     output.Name,
		"email":    output.Email,
	})
}

func newOAuthState() (string, error) {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GoogleLogin redirects the browser to the Google consent page. The CSRF
// state is pinned in a short-lived cookie.
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	state, err := newOAuthState()
	if err != nil {
		c.Error(apperror.NewInternal("failed to generate oauth state", err))
		return
	}

	url, err := h.googleLoginUseCase.AuthURL(state)
	if err != nil {
		c.Error(err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookieName, state, oauthStateCookieMaxAge, "/", "", h.secureCookies, true)
	c.Redirect(http.StatusTemporaryRedirect, url)
}

func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookieName)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		c.Error(apperror.NewUnauthorized("oauth state mismatch", nil))
		return
	}
	c.SetCookie(oauthStateCookieName, "", -1, "/", "", h.secureCookies, true)

	code := c.Query("code")
	if code == "" {
		c.Error(apperror.NewInvalidInput("authorization code is missing", nil))
		return
	}

	output, err := h.googleLoginUseCase.Callback(c.Request.Context(), code)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id_token":  output.IDToken,
		"user_id":   output.UserID,
		"name":      output.Name,
		"email":     output.Email,
		"photo_url": output.PhotoURL,
	})
}
