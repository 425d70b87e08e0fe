package project

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/profile"
)

const (
	MinTitleLen       = 3
	MinDescriptionLen = 20
)

var (
	ErrTitleTooShort       = errors.New("title must be at least 3 characters")
	ErrDescriptionTooShort = errors.New("description must be at least 20 characters")
	ErrInvalidBatchYear    = errors.New("batch year is out of range")
	ErrInvalidLink         = errors.New("link must be a valid http(s) URL or empty")
	ErrProjectNotFound     = errors.New("project not found")
)

// Project is a showcase listing. Author fields are a denormalized snapshot
// taken at submission time. UpvoterIDs holds each voter at most once, the
// membership is the idempotency guard for reputation increments.
type Project struct {
	ID             uuid.UUID   `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	TechStack      string      `json:"tech_stack"`
	Domain         string      `json:"domain"`
	BatchYear      int         `json:"batch_year"`
	GithubLink     string      `json:"github_link"`
	DemoLink       string      `json:"demo_link"`
	Summary        *string     `json:"summary,omitempty"`
	AuthorID       uuid.UUID   `json:"author_id"`
	AuthorName     string      `json:"author_name"`
	AuthorPhotoURL string      `json:"author_photo_url"`
	Reputation     int         `json:"reputation"`
	UpvoterIDs     []uuid.UUID `json:"upvoter_ids"`
	CreatedAt      time.Time   `json:"created_at"`
}

func (p *Project) Validate() error {
	if len(p.Title) < MinTitleLen {
		return ErrTitleTooShort
	}
	if len(p.Description) < MinDescriptionLen {
		return ErrDescriptionTooShort
	}
	if !profile.ValidBatchYear(p.BatchYear) {
		return ErrInvalidBatchYear
	}
	if !profile.ValidOptionalURL(p.GithubLink) || !profile.ValidOptionalURL(p.DemoLink) {
		return ErrInvalidLink
	}
	return nil
}

// UpvotedBy reports membership in the upvoter set.
func (p *Project) UpvotedBy(userID uuid.UUID) bool {
	for _, id := range p.UpvoterIDs {
		if id == userID {
			return true
		}
	}
	return false
}

type Repository interface {
	Save(ctx context.Context, p *Project) error
	// Update rewrites the owner-editable fields. The reputation counter,
	// upvoter set and author snapshot are not touched.
	Update(ctx context.Context, p *Project) error
	Delete(ctx context.Context, id uuid.UUID, authorID uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*Project, error)
	ListAll(ctx context.Context) ([]*Project, error)
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]*Project, error)
	// Upvote adds voterID to the upvoter set and bumps reputation in one
	// serialized step. Returns false when the voter was already a member.
	Upvote(ctx context.Context, id uuid.UUID, voterID uuid.UUID) (bool, error)
}
