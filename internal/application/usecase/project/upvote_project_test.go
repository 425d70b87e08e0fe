package project_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codevaulthq/codevault/adapters/persistence/memory"
	projectUC "github.com/codevaulthq/codevault/internal/application/usecase/project"
	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

func seedProject(t *testing.T, repo *memory.ProjectRepo, authorID uuid.UUID) *project.Project {
	t.Helper()
	p := &project.Project{
		ID:          uuid.New(),
		Title:       "Course Planner",
		Description: "A planner that schedules courses around clashes.",
		TechStack:   "Go, Postgres",
		Domain:      "Web Development",
		BatchYear:   2024,
		AuthorID:    authorID,
		AuthorName:  "Ada",
		UpvoterIDs:  []uuid.UUID{},
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Save(context.Background(), p))
	return p
}

func seedAuthorProfile(t *testing.T, repo *memory.ProfileRepo, authorID uuid.UUID) {
	t.Helper()
	require.NoError(t, repo.Upsert(context.Background(), &profile.Profile{
		UserID:    authorID,
		Name:      "Ada",
		BatchYear: 2024,
	}))
}

func TestUpvoteProject_SameVoterTwiceIncrementsOnce(t *testing.T) {
	projectRepo := memory.NewProjectRepo()
	profileRepo := memory.NewProfileRepo()
	authorID := uuid.New()
	seedAuthorProfile(t, profileRepo, authorID)
	p := seedProject(t, projectRepo, authorID)

	uc := projectUC.NewUpvoteProjectUseCase(projectRepo, profileRepo, nil, nil, logger.NewNopLogger())
	voterID := uuid.New()
	input := projectUC.UpvoteProjectInput{ProjectID: p.ID, VoterID: voterID}

	first, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.True(t, first.Applied)
	assert.Equal(t, 1, first.Reputation)

	second, err := uc.Execute(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, second.Applied)
	assert.Equal(t, 1, second.Reputation)

	stored, err := projectRepo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.Reputation)
	assert.Len(t, stored.UpvoterIDs, 1)

	authorProfile, err := profileRepo.GetByUserID(context.Background(), authorID)
	require.NoError(t, err)
	assert.Equal(t, 1, authorProfile.Reputation)
}

func TestUpvoteProject_TwoVotersIncrementByTwo(t *testing.T) {
	projectRepo := memory.NewProjectRepo()
	profileRepo := memory.NewProfileRepo()
	authorID := uuid.New()
	seedAuthorProfile(t, profileRepo, authorID)
	p := seedProject(t, projectRepo, authorID)

	uc := projectUC.NewUpvoteProjectUseCase(projectRepo, profileRepo, nil, nil, logger.NewNopLogger())

	for i := 0; i < 2; i++ {
		out, err := uc.Execute(context.Background(), projectUC.UpvoteProjectInput{
			ProjectID: p.ID,
			VoterID:   uuid.New(),
		})
		require.NoError(t, err)
		assert.True(t, out.Applied)
	}

	stored, err := projectRepo.FindByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Reputation)
	assert.Len(t, stored.UpvoterIDs, 2)

	authorProfile, err := profileRepo.GetByUserID(context.Background(), authorID)
	require.NoError(t, err)
	assert.Equal(t, 2, authorProfile.Reputation)
}

func TestUpvoteProject_MissingProject(t *testing.T) {
	uc := projectUC.NewUpvoteProjectUseCase(memory.NewProjectRepo(), memory.NewProfileRepo(), nil, nil, logger.NewNopLogger())

	_, err := uc.Execute(context.Background(), projectUC.UpvoteProjectInput{
		ProjectID: uuid.New(),
		VoterID:   uuid.New(),
	})
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
