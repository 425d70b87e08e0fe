package service

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	EventProjectCreated = "project.created"
	EventProjectUpdated = "project.updated"
	EventProjectDeleted = "project.deleted"
	EventProjectUpvoted = "project.upvoted"
	EventCommentAdded   = "comment.added"
)

type ProjectEventPayload struct {
	EventType  string    `json:"event_type"`
	ProjectID  uuid.UUID `json:"project_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type VoteEventPayload struct {
	EventType  string    `json:"event_type"`
	ProjectID  uuid.UUID `json:"project_id"`
	VoterID    uuid.UUID `json:"voter_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

type CommentEventPayload struct {
	EventType  string    `json:"event_type"`
	ProjectID  uuid.UUID `json:"project_id"`
	CommentID  uuid.UUID `json:"comment_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher decouples usecases from the broker. Publishing is
// best-effort: usecases log failures and never fail the request over them.
type EventPublisher interface {
	PublishProjectEvent(ctx context.Context, payload ProjectEventPayload) error
	PublishVoteEvent(ctx context.Context, payload VoteEventPayload) error
	PublishCommentEvent(ctx context.Context, payload CommentEventPayload) error
}
