package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/project"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type ProjectRepo struct {
	mu       sync.RWMutex
	projects map[uuid.UUID]*project.Project
}

func NewProjectRepo() *ProjectRepo {
	return &ProjectRepo{projects: make(map[uuid.UUID]*project.Project)}
}

func cloneProject(p *project.Project) *project.Project {
	cp := *p
	cp.UpvoterIDs = append([]uuid.UUID{}, p.UpvoterIDs...)
	if p.Summary != nil {
		s := *p.Summary
		cp.Summary = &s
	}
	return &cp
}

func (r *ProjectRepo) Save(_ context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.projects[p.ID] = cloneProject(p)
	return nil
}

func (r *ProjectRepo) Update(_ context.Context, p *project.Project) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[p.ID]
	if !ok || existing.AuthorID != p.AuthorID {
		return apperror.NewNotFound("project", p.ID.String())
	}
	existing.Title = p.Title
	existing.Description = p.Description
	existing.TechStack = p.TechStack
	existing.Domain = p.Domain
	existing.BatchYear = p.BatchYear
	existing.GithubLink = p.GithubLink
	existing.DemoLink = p.DemoLink
	return nil
}

func (r *ProjectRepo) Delete(_ context.Context, id uuid.UUID, authorID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.projects[id]
	if !ok || existing.AuthorID != authorID {
		return apperror.NewNotFound("project", id.String())
	}
	delete(r.projects, id)
	return nil
}

func (r *ProjectRepo) FindByID(_ context.Context, id uuid.UUID) (*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.projects[id]
	if !ok {
		return nil, apperror.NewNotFound("project", id.String())
	}
	return cloneProject(p), nil
}

func (r *ProjectRepo) ListAll(_ context.Context) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*project.Project, 0, len(r.projects))
	for _, p := range r.projects {
		out = append(out, cloneProject(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectRepo) ListByAuthor(_ context.Context, authorID uuid.UUID) ([]*project.Project, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*project.Project, 0)
	for _, p := range r.projects {
		if p.AuthorID == authorID {
			out = append(out, cloneProject(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *ProjectRepo) Upvote(_ context.Context, id uuid.UUID, voterID uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.projects[id]
	if !ok {
		return false, apperror.NewNotFound("project", id.String())
	}
	if p.UpvotedBy(voterID) {
		return false, nil
	}
	p.UpvoterIDs = append(p.UpvoterIDs, voterID)
	p.Reputation++
	return true, nil
}
