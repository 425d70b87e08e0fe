package profile

import (
	"context"
	"errors"
	"net/url"
	"time"

	"github.com/google/uuid"
)

const (
	MinBatchYear = 2000
	MaxAboutLen  = 1000
)

var (
	ErrInvalidBatchYear = errors.New("batch year is out of range")
	ErrAboutTooLong     = errors.New("about section is too long")
	ErrInvalidURL       = errors.New("link must be a valid http(s) URL or empty")
	ErrNameRequired     = errors.New("name is required")
)

// Profile is the public face of a user. Reputation is not settable through
// Upsert, only the increment path may change it.
type Profile struct {
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	Domain      string    `json:"domain"`
	BatchYear   int       `json:"batch_year"`
	About       string    `json:"about"`
	Reputation  int       `json:"reputation"`
	LinkedinURL string    `json:"linkedin_url"`
	GithubURL   string    `json:"github_url"`
	WebsiteURL  string    `json:"website_url"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ValidBatchYear allows [2000, currentYear+1].
func ValidBatchYear(year int) bool {
	return year >= MinBatchYear && year <= time.Now().Year()+1
}

// ValidOptionalURL accepts an empty string or an absolute http(s) URL.
func ValidOptionalURL(raw string) bool {
	if raw == "" {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

func (p *Profile) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if !ValidBatchYear(p.BatchYear) {
		return ErrInvalidBatchYear
	}
	if len(p.About) > MaxAboutLen {
		return ErrAboutTooLong
	}
	for _, link := range []string{p.LinkedinURL, p.GithubURL, p.WebsiteURL} {
		if !ValidOptionalURL(link) {
			return ErrInvalidURL
		}
	}
	return nil
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)
	// Upsert writes every field except Reputation, which is preserved.
	Upsert(ctx context.Context, p *Profile) error
	// IncrementReputation is the only mutation path for Reputation.
	IncrementReputation(ctx context.Context, userID uuid.UUID, delta int) error
}
