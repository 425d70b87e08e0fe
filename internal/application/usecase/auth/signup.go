package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type SignupUseCase struct {
	userRepo user.Repository
	jwtSvc   *auth.JWTService
	logger   logger.Logger
}

func NewSignupUseCase(repo user.Repository, jwtSvc *auth.JWTService, log logger.Logger) *SignupUseCase {
	return &SignupUseCase{
		userRepo: repo,
		jwtSvc:   jwtSvc,
		logger:   log,
	}
}

type SignupInput struct {
	Email       string
	Password    string
	DisplayName string
}

func (uc *SignupUseCase) Execute(ctx context.Context, input SignupInput) (*LoginOutput, error) {

	_, err := uc.userRepo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperror.NewConflict("user", "email", input.Email)
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return nil, apperror.NewInternal("failed to check existing user", err)
	}

	hash, err := auth.HashPassword(input.Password)
	if err != nil {
		return nil, apperror.NewInvalidInput("password rejected", err)
	}

	newUser := &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.DisplayName,
		PasswordHash: hash,
	}

	if err := uc.userRepo.Save(ctx, newUser); err != nil {
		return nil, err
	}
	uc.logger.Info("user signed up", zap.String("user_id", newUser.ID.String()))

	token, err := uc.jwtSvc.GenerateToken(newUser.ID, newUser.Name, newUser.Email, newUser.PhotoURL)
	if err != nil {
		return nil, apperror.NewInternal("failed to generate token", err)
	}

	return &LoginOutput{
		IDToken: token,
		UserID:  newUser.ID.String(),
		Name:    newUser.Name,
		Email:   newUser.Email,
	}, nil
}
