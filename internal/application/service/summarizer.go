package service

import (
	"context"
)

// RepoSummary is the schema-validated output of the repository summary flow.
type RepoSummary struct {
	RepoSummary        string   `json:"repoSummary"`
	FutureImprovements []string `json:"futureImprovements"`
}

// Summarizer is the AI gateway port. Both operations are single-shot
// request/response calls with validation at each edge: no retries, no
// streaming, no caching.
type Summarizer interface {
	// SummarizeDescription turns a non-empty project description into a
	// short summary.
	SummarizeDescription(ctx context.Context, description string) (string, error)
	// SummarizeRepo summarizes a repository given a well-formed URL.
	SummarizeRepo(ctx context.Context, repoURL string) (*RepoSummary, error)
}
