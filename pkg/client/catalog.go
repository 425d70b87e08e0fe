package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Project mirrors the server's catalog representation.
type Project struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TechStack      string    `json:"tech_stack"`
	Domain         string    `json:"domain"`
	BatchYear      int       `json:"batch_year"`
	GithubLink     string    `json:"github_link"`
	DemoLink       string    `json:"demo_link"`
	Summary        *string   `json:"summary,omitempty"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Reputation     int       `json:"reputation"`
	UpvoteCount    int       `json:"upvote_count"`
	UpvotedByMe    bool      `json:"upvoted_by_me"`
	CreatedAt      time.Time `json:"created_at"`
}

type Comment struct {
	ID             string    `json:"id"`
	ProjectID      string    `json:"project_id"`
	AuthorID       string    `json:"author_id"`
	AuthorName     string    `json:"author_name"`
	AuthorPhotoURL string    `json:"author_photo_url"`
	Text           string    `json:"text"`
	CreatedAt      time.Time `json:"created_at"`
}

// Catalog is the filtered listing plus the facet sets. Filtering runs server
// side; passing empty strings (or "all") returns the full snapshot.
type Catalog struct {
	Projects []Project `json:"projects"`
	Domains  []string  `json:"domains"`
	Years    []string  `json:"years"`
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("request %s failed (status %d)", path, resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// FetchCatalog queries the catalog with the three predicates.
func (c *Client) FetchCatalog(ctx context.Context, search, domain, year string) (*Catalog, error) {
	q := url.Values{}
	if search != "" {
		q.Set("search", search)
	}
	if domain != "" {
		q.Set("domain", domain)
	}
	if year != "" {
		q.Set("year", year)
	}

	path := "/api/projects"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out Catalog
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchProject(ctx context.Context, projectID string) (*Project, error) {
	var out Project
	if err := c.getJSON(ctx, "/api/projects/"+projectID, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchComments(ctx context.Context, projectID string) ([]Comment, error) {
	var out []Comment
	if err := c.getJSON(ctx, "/api/projects/"+projectID+"/comments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) AddComment(ctx context.Context, projectID, text string) (*Comment, error) {
	var out Comment
	status, err := c.postJSON(ctx, "/api/projects/"+projectID+"/comments", map[string]string{"text": text}, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusUnauthorized {
		return nil, ErrLoginRequired
	}
	if status >= 300 {
		return nil, fmt.Errorf("add comment failed (status %d)", status)
	}
	return &out, nil
}

// Upvote calls the server's idempotent vote endpoint. It satisfies VoteFunc
// via a closure over the project ID.
func (c *Client) Upvote(ctx context.Context, projectID string) (VoteResult, error) {
	var out struct {
		Applied    bool `json:"applied"`
		Reputation int  `json:"reputation"`
	}
	status, err := c.postJSON(ctx, "/api/projects/"+projectID+"/upvote", struct{}{}, &out)
	if err != nil {
		return VoteResult{}, err
	}
	if status == http.StatusUnauthorized {
		return VoteResult{}, ErrLoginRequired
	}
	if status >= 300 {
		return VoteResult{}, fmt.Errorf("upvote failed (status %d)", status)
	}
	return VoteResult{Applied: out.Applied, Reputation: out.Reputation}, nil
}
