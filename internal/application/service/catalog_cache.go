package service

import (
	"context"

	"github.com/codevaulthq/codevault/internal/domain/project"
)

// CatalogCache holds the full catalog snapshot. A miss returns (nil, false, nil).
// Implementations must treat the store as advisory: the repository stays the
// single source of truth.
type CatalogCache interface {
	Get(ctx context.Context) ([]*project.Project, bool, error)
	Set(ctx context.Context, projects []*project.Project) error
	Invalidate(ctx context.Context) error
}
