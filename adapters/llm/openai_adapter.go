package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/codevaulthq/codevault/internal/application/service"
	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const descriptionSummaryPrompt = `Summarize the following student project description in 2-3 sentences.
Write for a visitor browsing a project catalog: plain language, no markdown, no preamble.

Description:
%s`

const repoSummaryPrompt = `You are reviewing a student project hosted at %s.
Respond with a single JSON object, no markdown fences, matching exactly:
{"repoSummary": "<2-3 sentence summary of what the project does>", "futureImprovements": ["<improvement>", ...]}`

type openAIAdapter struct {
	client *openai.Client
	model  string
	log    logger.Logger
}

func NewOpenAIAdapter(cfg config.Config, log logger.Logger) (service.Summarizer, error) {
	if cfg.OpenAI.APIKey == "" {
		return nil, fmt.Errorf("openai api key is not configured")
	}

	client := openai.NewClient(cfg.OpenAI.APIKey)

	log.Info("OpenAI Summarizer Adapter initialized")
	return &openAIAdapter{client: client, model: cfg.OpenAI.Model, log: log}, nil
}

func (a *openAIAdapter) complete(ctx context.Context, prompt string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
		Stream: false,
	}

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai chat completion request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no chat choices")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

func (a *openAIAdapter) SummarizeDescription(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", apperror.NewInvalidInput("description is required", nil)
	}

	summary, err := a.complete(ctx, fmt.Sprintf(descriptionSummaryPrompt, description))
	if err != nil {
		return "", err
	}
	if summary == "" {
		return "", fmt.Errorf("openai returned an empty summary")
	}
	return summary, nil
}

func (a *openAIAdapter) SummarizeRepo(ctx context.Context, repoURL string) (*service.RepoSummary, error) {
	u, err := url.Parse(repoURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperror.NewInvalidInput("repo url must be a valid http(s) URL", err)
	}

	raw, err := a.complete(ctx, fmt.Sprintf(repoSummaryPrompt, repoURL))
	if err != nil {
		return nil, err
	}

	// models occasionally wrap the object in code fences despite the prompt
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(raw, "```")
	raw = strings.TrimSpace(raw)

	var out service.RepoSummary
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil, fmt.Errorf("openai returned malformed repo summary: %w", err)
	}
	if out.RepoSummary == "" {
		return nil, fmt.Errorf("openai returned an empty repo summary")
	}
	if out.FutureImprovements == nil {
		out.FutureImprovements = []string{}
	}
	return &out, nil
}
