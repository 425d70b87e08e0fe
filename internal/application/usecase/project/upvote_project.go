package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type UpvoteProjectUseCase struct {
	projectRepo project.Repository
	profileRepo profile.Repository
	events      service.EventPublisher
	cache       service.CatalogCache
	logger      logger.Logger
}

func NewUpvoteProjectUseCase(
	pRepo project.Repository,
	profRepo profile.Repository,
	events service.EventPublisher,
	cache service.CatalogCache,
	log logger.Logger,
) *UpvoteProjectUseCase {
	return &UpvoteProjectUseCase{
		projectRepo: pRepo,
		profileRepo: profRepo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type UpvoteProjectInput struct {
	ProjectID uuid.UUID
	VoterID   uuid.UUID
}

type UpvoteProjectOutput struct {
	// Applied is false when this voter had already upvoted the project.
	Applied    bool
	Reputation int
}

// Execute is idempotent per (voter, project): the membership check and the
// increment happen in one serialized repository step, so concurrent or
// repeated calls can never double count.
func (uc *UpvoteProjectUseCase) Execute(ctx context.Context, input UpvoteProjectInput) (*UpvoteProjectOutput, error) {

	p, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}

	applied, err := uc.projectRepo.Upvote(ctx, input.ProjectID, input.VoterID)
	if err != nil {
		return nil, err
	}
	if !applied {
		return &UpvoteProjectOutput{Applied: false, Reputation: p.Reputation}, nil
	}

	// the author's own reputation rides along with the project's
	if err := uc.profileRepo.IncrementReputation(ctx, p.AuthorID, 1); err != nil {
		uc.logger.Warn("failed to increment author reputation",
			zap.String("author_id", p.AuthorID.String()), zap.Error(err))
	}

	if uc.events != nil {
		if err := uc.events.PublishVoteEvent(ctx, service.VoteEventPayload{
			EventType:  service.EventProjectUpvoted,
			ProjectID:  input.ProjectID,
			VoterID:    input.VoterID,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			uc.logger.Warn("failed to publish project.upvoted event", zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}

	return &UpvoteProjectOutput{Applied: true, Reputation: p.Reputation + 1}, nil
}
