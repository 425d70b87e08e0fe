package project

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type CreateProjectUseCase struct {
	projectRepo project.Repository
	userRepo    user.Repository
	summarizer  service.Summarizer     // nil when the AI provider is not configured
	events      service.EventPublisher // nil when Kafka is not configured
	cache       service.CatalogCache   // nil when Redis is not configured
	logger      logger.Logger
}

func NewCreateProjectUseCase(
	pRepo project.Repository,
	uRepo user.Repository,
	summarizer service.Summarizer,
	events service.EventPublisher,
	cache service.CatalogCache,
	log logger.Logger,
) *CreateProjectUseCase {
	return &CreateProjectUseCase{
		projectRepo: pRepo,
		userRepo:    uRepo,
		summarizer:  summarizer,
		events:      events,
		cache:       cache,
		logger:      log,
	}
}

type CreateProjectInput struct {
	AuthorID    uuid.UUID
	Title       string
	Description string
	TechStack   string
	Domain      string
	BatchYear   int
	GithubLink  string
	DemoLink    string
}

type CreateProjectOutput struct {
	Project *project.Project
}

// Execute validates the listing, summarizes the description and persists the
// record. Summarization is awaited before the save so a stored project never
// gains a summary after the fact.
func (uc *CreateProjectUseCase) Execute(ctx context.Context, input CreateProjectInput) (*CreateProjectOutput, error) {

	author, err := uc.userRepo.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, apperror.NewUnauthorized("author not found", err)
	}

	newProject := &project.Project{
		ID:             uuid.New(),
		Title:          input.Title,
		Description:    input.Description,
		TechStack:      input.TechStack,
		Domain:         input.Domain,
		BatchYear:      input.BatchYear,
		GithubLink:     input.GithubLink,
		DemoLink:       input.DemoLink,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorPhotoURL: author.PhotoURL,
		Reputation:     0,
		UpvoterIDs:     []uuid.UUID{},
		CreatedAt:      time.Now().UTC(),
	}

	if err := newProject.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if uc.summarizer != nil {
		summary, err := uc.summarizer.SummarizeDescription(ctx, input.Description)
		if err != nil {
			// the listing is still worth keeping without the derived field
			uc.logger.Warn("description summarization failed, saving without summary", zap.Error(err))
		} else {
			newProject.Summary = &summary
		}
	}

	if err := uc.projectRepo.Save(ctx, newProject); err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.PublishProjectEvent(ctx, service.ProjectEventPayload{
			EventType:  service.EventProjectCreated,
			ProjectID:  newProject.ID,
			AuthorID:   newProject.AuthorID,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			uc.logger.Warn("failed to publish project.created event", zap.Error(err))
		}
	}
	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
		}
	}

	return &CreateProjectOutput{Project: newProject}, nil
}
