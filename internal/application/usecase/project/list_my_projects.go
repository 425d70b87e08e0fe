package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/project"
)

type ListMyProjectsUseCase struct {
	projectRepo project.Repository
}

func NewListMyProjectsUseCase(pRepo project.Repository) *ListMyProjectsUseCase {
	return &ListMyProjectsUseCase{projectRepo: pRepo}
}

type ListMyProjectsInput struct {
	AuthorID uuid.UUID
}

type ListMyProjectsOutput struct {
	Projects []*project.Project
}

func (uc *ListMyProjectsUseCase) Execute(ctx context.Context, input ListMyProjectsInput) (*ListMyProjectsOutput, error) {
	projects, err := uc.projectRepo.ListByAuthor(ctx, input.AuthorID)
	if err != nil {
		return nil, err
	}
	return &ListMyProjectsOutput{Projects: projects}, nil
}
