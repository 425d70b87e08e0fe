package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type DeleteProjectUseCase struct {
	projectRepo project.Repository
	events      service.EventPublisher
	cache       service.CatalogCache
	logger      logger.Logger
}

func NewDeleteProjectUseCase(pRepo project.Repository, events service.EventPublisher, cache service.CatalogCache, log logger.Logger) *DeleteProjectUseCase {
	return &DeleteProjectUseCase{
		projectRepo: pRepo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type DeleteProjectInput struct {
	ProjectID uuid.UUID
	AuthorID  uuid.UUID
}

func (uc *DeleteProjectUseCase) Execute(ctx context.Context, input DeleteProjectInput) error {
	if err := uc.projectRepo.Delete(ctx, input.ProjectID, input.AuthorID); err != nil {
		return err
	}

	if uc.events != nil {
		if err := uc.events.PublishProjectEvent(ctx, service.ProjectEventPayload{
			EventType:  service.EventProjectDeleted,
			ProjectID:  input.ProjectID,
			AuthorID:   input.AuthorID,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			uc.logger.Warn("failed to publish project.deleted event", zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}
	return nil
}
