package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/codevaulthq/codevault/internal/domain/comment"
	"github.com/codevaulthq/codevault/internal/domain/profile"
	"github.com/codevaulthq/codevault/internal/domain/project"
)

type SignupRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SessionRequest carries the token half of the session bridge. A null token
// is an explicit sign-out, not a malformed request.
type SessionRequest struct {
	IDToken *string `json:"idToken"`
}

type UpsertProfileRequest struct {
	Name        string `json:"name" binding:"required"`
	Domain      string `json:"domain"`
	BatchYear   int    `json:"batch_year" binding:"required"`
	About       string `json:"about"`
	LinkedinURL string `json:"linkedin_url"`
	GithubURL   string `json:"github_url"`
	WebsiteURL  string `json:"website_url"`
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
	TechStack   string `json:"tech_stack"`
	Domain      string `json:"domain"`
	BatchYear   int    `json:"batch_year" binding:"required"`
	GithubLink  string `json:"github_link"`
	DemoLink    string `json:"demo_link"`
}

type UpdateProjectRequest = CreateProjectRequest

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type SummarizeDescriptionRequest struct {
	Description string `json:"description" binding:"required"`
}

type SummarizeRepoRequest struct {
	RepoURL string `json:"repo_url" binding:"required"`
}

type ProfileDTO struct {
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

func ToProfileDTO(p *profile.Profile) ProfileDTO {
	return ProfileDTO{
		UserID:      p.UserID,
		Name:        p.Name,
		Domain:      p.Domain,
		BatchYear:   p.BatchYear,
		About:       p.About,
		Reputation:  p.Reputation,
		LinkedinURL: p.LinkedinURL,
		GithubURL:   p.GithubURL,
		WebsiteURL:  p.WebsiteURL,
		UpdatedAt:   p.UpdatedAt,
	}
}

// ProjectDTO exposes the voter set as a count plus a per-viewer flag, never
// the raw ID list.
type ProjectDTO struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TechStack      string    `json:"tech_stack"`
	Domain         string    `json:"domain"`
	BatchYear      int       `json:"batch_year"`
	GithubLink     string    `json:"github_link"`
	DemoLink       string    `json:"demo_link"`
	Summary        *string   `json:"summary,omitempty"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Reputation     int       `json:"reputation"`
	UpvoteCount    int       `json:"upvote_count"`
	UpvotedByMe    bool      `json:"upvoted_by_me"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToProjectDTO(p *project.Project, viewerID uuid.UUID) ProjectDTO {
	return ProjectDTO{
		ID:             p.ID,
		Title:          p.Title,
		Description:    p.Description,
		TechStack:      p.TechStack,
		Domain:         p.Domain,
		BatchYear:      p.BatchYear,
		GithubLink:     p.GithubLink,
		DemoLink:       p.DemoLink,
		Summary:        p.Summary,
		AuthorID:       p.AuthorID,
		AuthorName:     p.AuthorName,
		AuthorPhotoURL: p.AuthorPhotoURL,
		Reputation:     p.Reputation,
		UpvoteCount:    len(p.UpvoterIDs),
		UpvotedByMe:    viewerID != uuid.Nil && p.UpvotedBy(viewerID),
		CreatedAt:      p.CreatedAt,
	}
}

func ToProjectDTOs(projects []*project.Project, viewerID uuid.UUID) []ProjectDTO {
	dtos := make([]ProjectDTO, len(projects))
	for i, p := range projects {
		dtos[i] = ToProjectDTO(p, viewerID)
	}
	return dtos
}

type CommentDTO struct {
	ID             uuid.UUID `json:"id"`
	ProjectID      uuid.UUID `json:"project_id"`
	AuthorID       uuid.UUID `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

func ToCommentDTO(c *comment.Comment) CommentDTO {
	return CommentDTO{
		ID:             c.ID,
		ProjectID:      c.ProjectID,
		AuthorID:       c.AuthorID,
		AuthorName:     c.AuthorName,
		AuthorPhotoURL: c.AuthorPhotoURL,
		Text:           c.Text,
		CreatedAt:      c.CreatedAt,
	}
}

// CatalogResponse bundles the filtered page with the facet sets derived from
// the full snapshot.
type CatalogResponse struct {
	Projects []ProjectDTO `json:"projects"`
	Domains  []string     `json:"domains"`
	Years    []string     `json:"years"`
}
