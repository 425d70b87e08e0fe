package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type UpdateProjectUseCase struct {
	projectRepo project.Repository
	events      service.EventPublisher
	cache       service.CatalogCache
	logger      logger.Logger
}

func NewUpdateProjectUseCase(pRepo project.Repository, events service.EventPublisher, cache service.CatalogCache, log logger.Logger) *UpdateProjectUseCase {
	return &UpdateProjectUseCase{
		projectRepo: pRepo,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type UpdateProjectInput struct {
	ProjectID   uuid.UUID
	AuthorID    uuid.UUID
	Title       string
	Description string
	TechStack   string
	Domain      string
	BatchYear   int
	GithubLink  string
	DemoLink    string
}

type UpdateProjectOutput struct {
	Project *project.Project
}

// Execute rewrites the owner-editable fields only. Reputation, the upvoter
// set, the summary and the author snapshot are left as stored.
func (uc *UpdateProjectUseCase) Execute(ctx context.Context, input UpdateProjectInput) (*UpdateProjectOutput, error) {

	existing, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	if existing.AuthorID != input.AuthorID {
		return nil, apperror.NewPermissionDenied("only the project owner may edit it")
	}

	existing.Title = input.Title
	existing.Description = input.Description
	existing.TechStack = input.TechStack
	existing.Domain = input.Domain
	existing.BatchYear = input.BatchYear
	existing.GithubLink = input.GithubLink
	existing.DemoLink = input.DemoLink

	if err := existing.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.projectRepo.Update(ctx, existing); err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.PublishProjectEvent(ctx, service.ProjectEventPayload{
			EventType:  service.EventProjectUpdated,
			ProjectID:  existing.ID,
			AuthorID:   existing.AuthorID,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			uc.logger.Warn("failed to publish project.updated event", zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}

	return &UpdateProjectOutput{Project: existing}, nil
}
