package http_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	httpAdapter "github.com/codevaulthq/codevault/adapters/http"
	"github.com/codevaulthq/codevault/adapters/persistence/memory"
	aiUC "github.com/codevaulthq/codevault/internal/application/usecase/ai"
	authUC "github.com/codevaulthq/codevault/internal/application/usecase/auth"
	commentUC "github.com/codevaulthq/codevault/internal/application/usecase/comment"
	profileUC "github.com/codevaulthq/codevault/internal/application/usecase/profile"
	projectUC "github.com/codevaulthq/codevault/internal/application/usecase/project"
	"github.com/codevaulthq/codevault/internal/config"
	"github.com/codevaulthq/codevault/pkg/auth"
	"github.com/codevaulthq/codevault/pkg/logger"
)

// APITestSuite drives the whole route table against memory-backed
// repositories. Optional services (AI, Kafka, Redis, Cloudinary) are absent,
// exactly like a dev box without provider credentials.
type APITestSuite struct {
	suite.Suite
	Router *gin.Engine
}

func (s *APITestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)

	appLogger := logger.NewNopLogger()
	userRepo := memory.NewUserRepo()
	profileRepo := memory.NewProfileRepo()
	projectRepo := memory.NewProjectRepo()
	commentRepo := memory.NewCommentRepo()

	jwtSvc := auth.NewJWTService("e2e-test-secret", time.Hour)
	cfg := config.Config{}

	s.Router = httpAdapter.NewRouter(httpAdapter.RouterDeps{
		AuthHandler: httpAdapter.NewAuthHandler(
			authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewSignupUseCase(userRepo, jwtSvc, appLogger),
			authUC.NewGoogleLoginUseCase(cfg, userRepo, jwtSvc, appLogger),
			"development",
		),
		SessionHandler: httpAdapter.NewSessionHandler(authUC.NewEstablishSessionUseCase(jwtSvc), "development"),
		ProfileHandler: httpAdapter.NewProfileHandler(
			profileUC.NewProfileUseCase(profileRepo, userRepo, nil, appLogger),
			appLogger,
		),
		ProjectHandler: httpAdapter.NewProjectHandler(
			projectUC.NewCreateProjectUseCase(projectRepo, userRepo, nil, nil, nil, appLogger),
			projectUC.NewListProjectsUseCase(projectRepo, nil, appLogger),
			projectUC.NewGetProjectUseCase(projectRepo),
			projectUC.NewUpdateProjectUseCase(projectRepo, nil, nil, appLogger),
			projectUC.NewDeleteProjectUseCase(projectRepo, nil, nil, appLogger),
			projectUC.NewUpvoteProjectUseCase(projectRepo, profileRepo, nil, nil, appLogger),
			projectUC.NewListMyProjectsUseCase(projectRepo),
			appLogger,
		),
		CommentHandler: httpAdapter.NewCommentHandler(
			commentUC.NewCommentUseCase(commentRepo, projectRepo, userRepo, nil, appLogger),
		),
		AIHandler:  httpAdapter.NewAIHandler(aiUC.NewSummarizeUseCase(nil, appLogger)),
		JWTService: jwtSvc,
		Logger:     appLogger,
	})
}

func (s *APITestSuite) request(method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

// signupAndSession registers a user and returns the session cookie.
func (s *APITestSuite) signupAndSession(email, name string) *http.Cookie {
	w := s.request(http.MethodPost, "/api/auth/signup", gin.H{
		"email":        email,
		"password":     "password123",
		"display_name": name,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var signupResp struct {
		IDToken string `json:"id_token"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &signupResp))

	w = s.request(http.MethodPost, "/api/session", gin.H{"idToken": signupResp.IDToken})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	for _, c := range w.Result().Cookies() {
		if c.Name == httpAdapter.SessionCookieName {
			return c
		}
	}
	s.Require().FailNow("session cookie missing")
	return nil
}

func (s *APITestSuite) createProject(cookie *http.Cookie, title, domain string, year int) string {
	w := s.request(http.MethodPost, "/api/projects", gin.H{
		"title":       title,
		"description": "A project description long enough to pass validation.",
		"tech_stack":  "Go, Postgres",
		"domain":      domain,
		"batch_year":  year,
	}, cookie)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		ID string `json:"id"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.ID
}

func TestAPI(t *testing.T) {
	suite.Run(t, new(APITestSuite))
}

func (s *APITestSuite) Test_ProtectedRoutesRequireSession() {
	w := s.request(http.MethodPost, "/api/projects", gin.H{"title": "x"})
	assert.Equal(s.T(), http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodGet, "/api/projects", nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APITestSuite) Test_CatalogFilterFlow() {
	cookie := s.signupAndSession("ada@example.com", "Ada")

	s.createProject(cookie, "Chess Engine", "Machine Learning", 2023)
	s.createProject(cookie, "Course Planner", "Web Development", 2024)

	w := s.request(http.MethodGet, "/api/projects?domain=Web+Development", nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var catalog struct {
		Projects []struct {
			Title string `json:"title"`
		} `json:"projects"`
		Domains []string `json:"domains"`
		Years   []string `json:"years"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &catalog))
	s.Require().Len(catalog.Projects, 1)
	assert.Equal(s.T(), "Course Planner", catalog.Projects[0].Title)
	// facet order follows the snapshot, newest listing first
	assert.Equal(s.T(), []string{"all", "Web Development", "Machine Learning"}, catalog.Domains)
	assert.Equal(s.T(), []string{"all", "2024", "2023"}, catalog.Years)

	// search narrows by title, case-insensitive
	w = s.request(http.MethodGet, "/api/projects?search=chess", nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &catalog))
	s.Require().Len(catalog.Projects, 1)
	assert.Equal(s.T(), "Chess Engine", catalog.Projects[0].Title)
}

func (s *APITestSuite) Test_UpvoteIsIdempotentOverHTTP() {
	authorCookie := s.signupAndSession("ada@example.com", "Ada")
	voterCookie := s.signupAndSession("bob@example.com", "Bob")
	projectID := s.createProject(authorCookie, "Chess Engine", "Machine Learning", 2023)

	path := fmt.Sprintf("/api/projects/%s/upvote", projectID)

	w := s.request(http.MethodPost, path, gin.H{}, voterCookie)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var vote struct {
		Applied    bool `json:"applied"`
		Reputation int  `json:"reputation"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &vote))
	assert.True(s.T(), vote.Applied)
	assert.Equal(s.T(), 1, vote.Reputation)

	w = s.request(http.MethodPost, path, gin.H{}, voterCookie)
	s.Require().Equal(http.StatusOK, w.Code)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &vote))
	assert.False(s.T(), vote.Applied)
	assert.Equal(s.T(), 1, vote.Reputation)

	// the voter flag only shows for the voter's own session
	w = s.request(http.MethodGet, "/api/projects/"+projectID, nil, voterCookie)
	s.Require().Equal(http.StatusOK, w.Code)
	var dto struct {
		UpvotedByMe bool `json:"upvoted_by_me"`
		UpvoteCount int  `json:"upvote_count"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &dto))
	assert.True(s.T(), dto.UpvotedByMe)
	assert.Equal(s.T(), 1, dto.UpvoteCount)

	w = s.request(http.MethodGet, "/api/projects/"+projectID, nil)
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &dto))
	assert.False(s.T(), dto.UpvotedByMe)
}

func (s *APITestSuite) Test_OnlyOwnerMayEditOrDelete() {
	ownerCookie := s.signupAndSession("ada@example.com", "Ada")
	otherCookie := s.signupAndSession("bob@example.com", "Bob")
	projectID := s.createProject(ownerCookie, "Chess Engine", "Machine Learning", 2023)

	update := gin.H{
		"title":       "Chess Engine v2",
		"description": "A project description long enough to pass validation.",
		"batch_year":  2023,
	}

	w := s.request(http.MethodPut, "/api/projects/"+projectID, update, otherCookie)
	assert.Equal(s.T(), http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, "/api/projects/"+projectID, nil, otherCookie)
	assert.Equal(s.T(), http.StatusNotFound, w.Code)

	w = s.request(http.MethodPut, "/api/projects/"+projectID, update, ownerCookie)
	assert.Equal(s.T(), http.StatusOK, w.Code, w.Body.String())

	w = s.request(http.MethodDelete, "/api/projects/"+projectID, nil, ownerCookie)
	assert.Equal(s.T(), http.StatusNoContent, w.Code)
}

func (s *APITestSuite) Test_CommentFlow() {
	authorCookie := s.signupAndSession("ada@example.com", "Ada")
	projectID := s.createProject(authorCookie, "Chess Engine", "Machine Learning", 2023)
	path := "/api/projects/" + projectID + "/comments"

	w := s.request(http.MethodPost, path, gin.H{"text": "Nice work!"}, authorCookie)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	// over-long text is rejected
	w = s.request(http.MethodPost, path, gin.H{"text": strings.Repeat("x", 1001)}, authorCookie)
	assert.Equal(s.T(), http.StatusBadRequest, w.Code)

	w = s.request(http.MethodGet, path, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var comments []struct {
		Text       string `json:"text"`
		AuthorName string `json:"author_name"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &comments))
	s.Require().Len(comments, 1)
	assert.Equal(s.T(), "Nice work!", comments[0].Text)
	assert.Equal(s.T(), "Ada", comments[0].AuthorName)
}

func (s *APITestSuite) Test_ProfileUpsertAndPublicRead() {
	cookie := s.signupAndSession("ada@example.com", "Ada")

	w := s.request(http.MethodPut, "/api/profile", gin.H{
		"name":       "Ada Lovelace",
		"domain":     "Machine Learning",
		"batch_year": 2023,
		"about":      "I like compilers.",
	}, cookie)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var prof struct {
		UserID string `json:"user_id"`
		Name   string `json:"name"`
	}
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &prof))
	assert.Equal(s.T(), "Ada Lovelace", prof.Name)

	// anyone can read it, no session required
	w = s.request(http.MethodGet, "/api/profiles/"+prof.UserID, nil)
	assert.Equal(s.T(), http.StatusOK, w.Code)
}

func (s *APITestSuite) Test_AIEndpointsDegradeTo503() {
	cookie := s.signupAndSession("ada@example.com", "Ada")

	w := s.request(http.MethodPost, "/api/ai/summarize", gin.H{"description": "some text"}, cookie)
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)

	w = s.request(http.MethodPost, "/api/ai/repo-summary", gin.H{"repo_url": "https://github.com/a/b"}, cookie)
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}

func (s *APITestSuite) Test_GoogleLoginNotConfigured() {
	w := s.request(http.MethodGet, "/api/auth/google", nil)
	assert.Equal(s.T(), http.StatusServiceUnavailable, w.Code)
}
