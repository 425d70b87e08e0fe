package auth

import (
	"context"
	"errors"

	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/auth"
)

// EstablishSessionUseCase is the verification half of the session bridge:
// it is the single place where a client-asserted ID token is checked before
// the server mints a session cookie from it.
type EstablishSessionUseCase struct {
	jwtSvc *auth.JWTService
}

func NewEstablishSessionUseCase(jwtSvc *auth.JWTService) *EstablishSessionUseCase {
	return &EstablishSessionUseCase{jwtSvc: jwtSvc}
}

type SessionInfo struct {
	UserID   string
	Name     string
	Email    string
	PhotoURL string
}

func (uc *EstablishSessionUseCase) Execute(ctx context.Context, idToken string) (*SessionInfo, error) {
	claims, err := uc.jwtSvc.ValidateToken(idToken)
	if err != nil {
		if errors.Is(err, auth.ErrNotInitialized) {
			return nil, apperror.NewNotConfigured("session verification")
		}
		return nil, apperror.NewUnauthorized("invalid or expired id token", err)
	}

	return &SessionInfo{
		UserID:   claims.UserID.String(),
		Name:     claims.Name,
		Email:    claims.Email,
		PhotoURL: claims.PhotoURL,
	}, nil
}
