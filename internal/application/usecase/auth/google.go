package auth

import (
	"context"
	"fmt"
	"sync"

	"github.com/coreos/go-oidc/v3/oidc"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const googleIssuer = "https://accounts.google.com"

// GoogleLoginUseCase runs the authorization-code flow against Google and
// verifies the returned ID token against Google's published keys before
// trusting any claim in it.
type GoogleLoginUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger

	enabled     bool
	oauthConfig *oauth2.Config

	mu       sync.Mutex
	verifier *oidc.IDTokenVerifier
}

func NewGoogleLoginUseCase(cfg config.Config, repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *GoogleLoginUseCase {
	uc := &GoogleLoginUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
		enabled:  cfg.GoogleEnabled(),
	}
	if uc.enabled {
		uc.oauthConfig = &oauth2.Config{
			ClientID:     cfg.Google.ClientID,
			ClientSecret: cfg.Google.ClientSecret,
			RedirectURL:  cfg.Google.RedirectURL,
			Scopes:       []string{oidc.ScopeOpenID, "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	} else {
		log.Warn("Google sign-in disabled: client credentials not configured")
	}
	return uc
}

func (uc *GoogleLoginUseCase) Enabled() bool { return uc.enabled }

// AuthURL returns the Google consent page URL for the given CSRF state.
func (uc *GoogleLoginUseCase) AuthURL(state string) (string, error) {
	if !uc.enabled {
		return "", apperror.NewNotConfigured("google sign-in")
	}
	return uc.oauthConfig.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

// The OIDC discovery round trip only happens on the first callback, so a
// missing network at startup does not take the whole server down.
func (uc *GoogleLoginUseCase) idTokenVerifier(ctx context.Context) (*oidc.IDTokenVerifier, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.verifier != nil {
		return uc.verifier, nil
	}
	provider, err := oidc.NewProvider(ctx, googleIssuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}
	uc.verifier = provider.Verifier(&oidc.Config{ClientID: uc.oauthConfig.ClientID})
	return uc.verifier, nil
}

type googleClaims struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
}

// Callback exchanges the authorization code, verifies the id_token and
// upserts the user. The access token never leaves the server.
func (uc *GoogleLoginUseCase) Callback(ctx context.Context, code string) (*LoginOutput, error) {
	if !uc.enabled {
		return nil, apperror.NewNotConfigured("google sign-in")
	}

	oauthToken, err := uc.oauthConfig.Exchange(ctx, code)
	if err != nil {
		return nil, apperror.NewUnauthorized("failed to exchange OAuth code", err)
	}

	rawIDToken, ok := oauthToken.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		return nil, apperror.NewUnauthorized("google response did not include an id_token", nil)
	}

	verifier, err := uc.idTokenVerifier(ctx)
	if err != nil {
		return nil, apperror.NewInternal("OIDC verifier unavailable", err)
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, apperror.NewUnauthorized("google id_token verification failed", err)
	}

	var claims googleClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, apperror.NewInternal("failed to extract claims from id_token", err)
	}

	u, err := uc.userRepo.UpsertGoogle(ctx, &user.User{
		Email:    claims.Email,
		Name:     claims.Name,
		PhotoURL: claims.Picture,
		GoogleID: &claims.Subject,
	})
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user authenticated via Google", zap.String("user_id", u.ID.String()))

	token, err := uc.jwtSvc.GenerateToken(u.ID, u.Name, u.Email, u.PhotoURL)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{
		IDToken:  token,
		UserID:   u.ID.String(),
		Name:     u.Name,
		Email:    u.Email,
		PhotoURL: u.PhotoURL,
	}, nil
}
