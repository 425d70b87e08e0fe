package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevaulthq/codevault/adapters/persistence/memory"
	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const testSecret = "test-secret-key"

func newAuthFixtures() (*authUC.SignupUseCase, *authUC.LoginUseCase, *auth.JWTService) {
	userRepo := memory.NewUserRepo()
	jwtSvc := auth.NewJWTService(testSecret, time.Hour)
	log := logger.NewNopLogger()
	return authUC.NewSignupUseCase(userRepo, jwtSvc, log),
		authUC.NewLoginUseCase(userRepo, jwtSvc, log),
		jwtSvc
}

func TestSignupThenLogin(t *testing.T) {
	signup, login, jwtSvc := newAuthFixtures()

	signedUp, err := signup.Execute(context.Background(), authUC.SignupInput{
		Email:       "ada@example.com",
		Password:    "correct horse battery",
		DisplayName: "Ada",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, signedUp.IDToken)

	loggedIn, err := login.Execute(context.Background(), authUC.LoginInput{
		Email:    "ada@example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, signedUp.UserID, loggedIn.UserID)
	assert.Equal(t, "Ada", loggedIn.Name)

	claims, err := jwtSvc.ValidateToken(loggedIn.IDToken)
	require.NoError(t, err)
	assert.Equal(t, loggedIn.UserID, claims.UserID.String())
	assert.Equal(t, "ada@example.com", claims.Email)
}

func TestSignup_DuplicateEmailConflicts(t *testing.T) {
	signup, _, _ := newAuthFixtures()

	input := authUC.SignupInput{Email: "ada@example.com", Password: "password123", DisplayName: "Ada"}
	_, err := signup.Execute(context.Background(), input)
	require.NoError(t, err)

	_, err = signup.Execute(context.Background(), input)
	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestLogin_WrongPassword(t *testing.T) {
	signup, login, _ := newAuthFixtures()

	_, err := signup.Execute(context.Background(), authUC.SignupInput{
		Email:       "ada@example.com",
		Password:    "password123",
		DisplayName: "Ada",
	})
	require.NoError(t, err)

	_, err = login.Execute(context.Background(), authUC.LoginInput{
		Email:    "ada@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, authUC.ErrInvalidCredentials)
}

func TestLogin_UnknownEmailSameError(t *testing.T) {
	_, login, _ := newAuthFixtures()

	_, err := login.Execute(context.Background(), authUC.LoginInput{
		Email:    "nobody@example.com",
		Password: "password123",
	})
	// an unknown email is indistinguishable from a wrong password
	assert.ErrorIs(t, err, authUC.ErrInvalidCredentials)
}

func TestEstablishSession(t *testing.T) {
	signup, _, jwtSvc := newAuthFixtures()
	sessionUC := authUC.NewEstablishSessionUseCase(jwtSvc)

	out, err := signup.Execute(context.Background(), authUC.SignupInput{
		Email:       "ada@example.com",
		Password:    "password123",
		DisplayName: "Ada",
	})
	require.NoError(t, err)

	info, err := sessionUC.Execute(context.Background(), out.IDToken)
	require.NoError(t, err)
	assert.Equal(t, out.UserID, info.UserID)
	assert.Equal(t, "Ada", info.Name)

	_, err = sessionUC.Execute(context.Background(), "garbage.token.value")
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestEstablishSession_NotConfigured(t *testing.T) {
	sessionUC := authUC.NewEstablishSessionUseCase(auth.NewJWTService("", time.Hour))

	_, err := sessionUC.Execute(context.Background(), "any.token.value")
	assert.ErrorIs(t, err, apperror.ErrNotConfigured)
}
