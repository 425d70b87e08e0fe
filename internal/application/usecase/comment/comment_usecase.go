package comment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/domain/comment"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/internal/domain/user"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type CommentUseCase struct {
	commentRepo comment.Repository
	projectRepo project.Repository
	userRepo    user.Repository
	events      service.EventPublisher
	logger      logger.Logger
}

func NewCommentUseCase(
	cRepo comment.Repository,
	pRepo project.Repository,
	uRepo user.Repository,
	events service.EventPublisher,
	log logger.Logger,
) *CommentUseCase {
	return &CommentUseCase{
		commentRepo: cRepo,
		projectRepo: pRepo,
		userRepo:    uRepo,
		events:      events,
		logger:      log,
	}
}

type ListCommentsInput struct {
	ProjectID uuid.UUID
}

type ListCommentsOutput struct {
	Comments []*comment.Comment
}

func (uc *CommentUseCase) ExecuteList(ctx context.Context, input ListCommentsInput) (*ListCommentsOutput, error) {
	comments, err := uc.commentRepo.ListByProject(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	return &ListCommentsOutput{Comments: comments}, nil
}

type AddCommentInput struct {
	ProjectID uuid.UUID
	AuthorID  uuid.UUID
	Text      string
}

type AddCommentOutput struct {
	Comment *comment.Comment
}

// ExecuteAdd writes an immutable comment with the author snapshot taken at
// write time.
func (uc *CommentUseCase) ExecuteAdd(ctx context.Context, input AddCommentInput) (*AddCommentOutput, error) {

	// the project must exist, a comment cannot dangle
	if _, err := uc.projectRepo.FindByID(ctx, input.ProjectID); err != nil {
		return nil, err
	}

	author, err := uc.userRepo.FindByID(ctx, input.AuthorID)
	if err != nil {
		return nil, apperror.NewUnauthorized("author not found", err)
	}

	newComment := &comment.Comment{
		ID:             uuid.New(),
		ProjectID:      input.ProjectID,
		AuthorID:       author.ID,
		AuthorName:     author.Name,
		AuthorPhotoURL: author.PhotoURL,
		Text:           input.Text,
		CreatedAt:      time.Now().UTC(),
	}

	if err := newComment.Validate(); err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}

	if err := uc.commentRepo.Save(ctx, newComment); err != nil {
		return nil, err
	}

	if uc.events != nil {
		if err := uc.events.PublishCommentEvent(ctx, service.CommentEventPayload{
			EventType:  service.EventCommentAdded,
			ProjectID:  newComment.ProjectID,
			CommentID:  newComment.ID,
			AuthorID:   newComment.AuthorID,
			OccurredAt: time.Now().UTC(),
		}); err != nil {
			uc.logger.Warn("failed to publish comment.added event", zap.Error(err))
		}
	}

	return &AddCommentOutput{Comment: newComment}, nil
}
