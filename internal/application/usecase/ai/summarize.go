package ai

import (
	"context"
	"strings"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

// SummarizeUseCase fronts the AI provider. Both operations are single-shot
// calls: validate the input, ask once, validate the output.
type SummarizeUseCase struct {
	summarizer service.Summarizer // nil when the AI provider is not configured
	logger     logger.Logger
}

func NewSummarizeUseCase(summarizer service.Summarizer, log logger.Logger) *SummarizeUseCase {
	return &SummarizeUseCase{summarizer: summarizer, logger: log}
}

type SummarizeDescriptionInput struct {
	Description string
}

type SummarizeDescriptionOutput struct {
	Summary string
}

func (uc *SummarizeUseCase) ExecuteDescription(ctx context.Context, input SummarizeDescriptionInput) (*SummarizeDescriptionOutput, error) {
	if uc.summarizer == nil {
		return nil, apperror.NewNotConfigured("ai summarization")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperror.NewInvalidInput("description is required", nil)
	}

	summary, err := uc.summarizer.SummarizeDescription(ctx, input.Description)
	if err != nil {
		return nil, err
	}
	return &SummarizeDescriptionOutput{Summary: summary}, nil
}

type SummarizeRepoInput struct {
	RepoURL string
}

type SummarizeRepoOutput struct {
	Summary *service.RepoSummary
}

func (uc *SummarizeUseCase) ExecuteRepo(ctx context.Context, input SummarizeRepoInput) (*SummarizeRepoOutput, error) {
	if uc.summarizer == nil {
		return nil, apperror.NewNotConfigured("ai summarization")
	}

	out, err := uc.summarizer.SummarizeRepo(ctx, input.RepoURL)
	if err != nil {
		return nil, err
	}
	return &SummarizeRepoOutput{Summary: out}, nil
}
