package profile_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevaulthq/codevault/adapters/persistence/memory"
	profileUC "github.com/codevaulthq/codevault/internal/application/usecase/profile"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

func newProfileUseCase() (*profileUC.ProfileUseCase, *memory.ProfileRepo) {
	profileRepo := memory.NewProfileRepo()
	return profileUC.NewProfileUseCase(profileRepo, memory.NewUserRepo(), nil, logger.NewNopLogger()), profileRepo
}

func TestProfile_RoundTrip(t *testing.T) {
	uc, _ := newProfileUseCase()
	userID := uuid.New()

	saved, err := uc.ExecuteUpsertProfile(context.Background(), profileUC.UpsertProfileInput{
		UserID:     userID,
		Name:       "Ada Lovelace",
		Domain:     "Machine Learning",
		BatchYear:  2023,
		About:      "I like compilers.",
		GithubURL:  "https://github.com/ada",
		WebsiteURL: "https://ada.dev",
	})
	require.NoError(t, err)

	fetched, err := uc.ExecuteGetProfile(context.Background(), profileUC.GetProfileInput{UserID: userID})
	require.NoError(t, err)

	p := fetched.Profile
	assert.Equal(t, "Ada Lovelace", p.Name)
	assert.Equal(t, "Machine Learning", p.Domain)
	assert.Equal(t, 2023, p.BatchYear)
	assert.Equal(t, "I like compilers.", p.About)
	assert.Equal(t, saved.Profile.UpdatedAt, p.UpdatedAt)
}

func TestProfile_UpsertPreservesReputation(t *testing.T) {
	uc, profileRepo := newProfileUseCase()
	userID := uuid.New()

	_, err := uc.ExecuteUpsertProfile(context.Background(), profileUC.UpsertProfileInput{
		UserID:    userID,
		Name:      "Ada",
		BatchYear: 2023,
	})
	require.NoError(t, err)

	require.NoError(t, profileRepo.IncrementReputation(context.Background(), userID, 5))

	updated, err := uc.ExecuteUpsertProfile(context.Background(), profileUC.UpsertProfileInput{
		UserID:    userID,
		Name:      "Ada Lovelace",
		BatchYear: 2024,
	})
	require.NoError(t, err)
	assert.Equal(t, 5, updated.Profile.Reputation)
	assert.Equal(t, "Ada Lovelace", updated.Profile.Name)
}

func TestProfile_InvalidBatchYearRejected(t *testing.T) {
	uc, _ := newProfileUseCase()

	_, err := uc.ExecuteUpsertProfile(context.Background(), profileUC.UpsertProfileInput{
		UserID:    uuid.New(),
		Name:      "Ada",
		BatchYear: 1999,
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestProfile_InvalidLinkRejected(t *testing.T) {
	uc, _ := newProfileUseCase()

	_, err := uc.ExecuteUpsertProfile(context.Background(), profileUC.UpsertProfileInput{
		UserID:    uuid.New(),
		Name:      "Ada",
		BatchYear: 2023,
		GithubURL: "not a url",
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestProfile_GetMissingProfile(t *testing.T) {
	uc, _ := newProfileUseCase()

	_, err := uc.ExecuteGetProfile(context.Background(), profileUC.GetProfileInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestProfile_AvatarUploadWithoutUploader(t *testing.T) {
	uc, _ := newProfileUseCase()

	_, err := uc.ExecuteUploadAvatar(context.Background(), profileUC.UploadAvatarInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, apperror.ErrNotConfigured)
}
