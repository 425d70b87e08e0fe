package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/comment"
)

type CommentRepo struct {
	mu       sync.RWMutex
	comments []*comment.Comment
}

func NewCommentRepo() *CommentRepo {
	return &CommentRepo{}
}

func (r *CommentRepo) Save(_ context.Context, c *comment.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.comments = append(r.comments, &cp)
	return nil
}

func (r *CommentRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*comment.Comment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*comment.Comment, 0)
	for _, c := range r.comments {
		if c.ProjectID == projectID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
