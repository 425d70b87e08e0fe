package profile

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type ProfileUseCase struct {
	profileRepo profile.Repository
	userRepo    user.Repository
	uploader    service.Uploader // nil when Cloudinary is not configured
	logger      logger.Logger
}

func NewProfileUseCase(pRepo profile.Repository, uRepo user.Repository, uploader service.Uploader, log logger.Logger) *ProfileUseCase {
	return &ProfileUseCase{
		profileRepo: pRepo,
		userRepo:    uRepo,
		uploader:    uploader,
		logger:      log,
	}
}

type GetProfileInput struct {
	UserID uuid.UUID
}

type GetProfileOutput struct {
	Profile *profile.Profile
}

func (uc *ProfileUseCase) ExecuteGetProfile(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	p, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &GetProfileOutput{Profile: p}, nil
}

type UpsertProfileInput struct {
	UserID      uuid.UUID
	Name        string
	Domain      string
	BatchYear   int
	About       string
	LinkedinURL string
	GithubURL   string
	WebsiteURL  string
}

type UpsertProfileOutput struct {
	Profile *profile.Profile
}

// ExecuteUpsertProfile saves the owner-editable fields. Reputation is never
// written here: the repository preserves the stored value on conflict.
func (uc *ProfileUseCase) ExecuteUpsertProfile(ctx context.Context, input UpsertProfileInput) (*UpsertProfileOutput, error) {
	p := &profile.Profile{
		UserID:      input.UserID,
		Name:        input.Name,
		Domain:      input.Domain,
		BatchYear:   input.BatchYear,
		About:       input.About,
		LinkedinURL: input.LinkedinURL,
		GithubURL:   input.GithubURL,
		WebsiteURL:  input.WebsiteURL,
		UpdatedAt:   time.Now().UTC(),
	}

	if err := p.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.profileRepo.Upsert(ctx, p); err != nil {
		return nil, err
	}

	saved, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	return &UpsertProfileOutput{Profile: saved}, nil
}

type UploadAvatarInput struct {
	UserID uuid.UUID
	File   io.Reader
}

type UploadAvatarOutput struct {
	PhotoURL string
}

func (uc *ProfileUseCase) ExecuteUploadAvatar(ctx context.Context, input UploadAvatarInput) (*UploadAvatarOutput, error) {
	if uc.uploader == nil {
		return nil, apperror.NewNotConfigured("avatar upload")
	}

	url, err := uc.uploader.Upload(ctx, input.File, "codevault/avatars", input.UserID.String())
	if err != nil {
		return nil, apperror.NewInternal("failed to upload avatar", err)
	}

	if err := uc.userRepo.UpdatePhotoURL(ctx, input.UserID, url); err != nil {
		return nil, err
	}
	uc.logger.Info("avatar updated", zap.String("user_id", input.UserID.String()))

	return &UploadAvatarOutput{PhotoURL: url}, nil
}
