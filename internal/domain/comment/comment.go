package comment

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

const MaxTextLen = 1000

var (
	ErrEmptyText   = errors.New("comment text is required")
	ErrTextTooLong = errors.New("comment text must be at most 1000 characters")
)

// Comment is immutable once written. There is no edit or delete path.
type Comment struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func (c *Comment) Validate() error {
	if len(c.Text) == 0 {
		return ErrEmptyText
	}
	if len(c.Text) > MaxTextLen {
		return ErrTextTooLong
	}
	return nil
}

type Repository interface {
	Save(ctx context.Context, c *Comment) error
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*Comment, error)
}
