package project

import (
	"context"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/project"
)

type GetProjectUseCase struct {
	projectRepo project.Repository
}

func NewGetProjectUseCase(pRepo project.Repository) *GetProjectUseCase {
	return &GetProjectUseCase{projectRepo: pRepo}
}

type GetProjectInput struct {
	ProjectID uuid.UUID
}

type GetProjectOutput struct {
	Project *project.Project
}

func (uc *GetProjectUseCase) Execute(ctx context.Context, input GetProjectInput) (*GetProjectOutput, error) {
	p, err := uc.projectRepo.FindByID(ctx, input.ProjectID)
	if err != nil {
		return nil, err
	}
	return &GetProjectOutput{Project: p}, nil
}
