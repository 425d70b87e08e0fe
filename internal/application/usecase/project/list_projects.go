package project

import (
	"context"

	"go.uber.org/zap"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/catalog"
	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type ListProjectsUseCase struct {
	projectRepo project.Repository
	cache       service.CatalogCache
	logger      logger.Logger
}

func NewListProjectsUseCase(pRepo project.Repository, cache service.CatalogCache, log logger.Logger) *ListProjectsUseCase {
	return &ListProjectsUseCase{
		projectRepo: pRepo,
		cache:       cache,
		logger:      log,
	}
}

type ListProjectsInput struct {
	SearchTerm   string
	DomainFilter string
	YearFilter   string
}

type ListProjectsOutput struct {
	// Projects is the filtered view; Domains and Years are the facet sets
	// derived from the full snapshot.
	Projects []*project.Project
	Domains  []string
	Years    []string
}

func (uc *ListProjectsUseCase) Execute(ctx context.Context, input ListProjectsInput) (*ListProjectsOutput, error) {
	snapshot, err := uc.loadSnapshot(ctx)
	if err != nil {
		return nil, err
	}

	return &ListProjectsOutput{
		Projects: catalog.Filter(snapshot, input.SearchTerm, input.DomainFilter, input.YearFilter),
		Domains:  catalog.UniqueDomains(snapshot),
		Years:    catalog.UniqueYears(snapshot),
	}, nil
}

// loadSnapshot is a read-through over the catalog cache. The repository is
// authoritative; a cache failure only costs the round trip.
func (uc *ListProjectsUseCase) loadSnapshot(ctx context.Context) ([]*project.Project, error) {
	if uc.cache != nil {
		snapshot, hit, err := uc.cache.Get(ctx)
		if err != nil {
			uc.logger.Warn("catalog cache read failed", zap.Error(err))
		} else if hit {
			return snapshot, nil
		}
	}

	snapshot, err := uc.projectRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if err := uc.cache.Set(ctx, snapshot); err != nil {
			uc.logger.Warn("catalog cache write failed", zap.Error(err))
		}
	}
	return snapshot, nil
}
