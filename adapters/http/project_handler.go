package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	projectUC "github.com/codevaulthq/codevault/internal/application/usecase/project"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

type ProjectHandler struct {
	createProjectUseCase *projectUC.CreateProjectUseCase
	listProjectsUseCase  *projectUC.ListProjectsUseCase
	getProjectUseCase    *projectUC.GetProjectUseCase
	updateProjectUseCase *projectUC.UpdateProjectUseCase
	deleteProjectUseCase *projectUC.DeleteProjectUseCase
	upvoteProjectUseCase *projectUC.UpvoteProjectUseCase
	myProjectsUseCase    *projectUC.ListMyProjectsUseCase
	logger               logger.Logger
}

func NewProjectHandler(
	createUC *projectUC.CreateProjectUseCase,
	listUC *projectUC.ListProjectsUseCase,
	getUC *projectUC.GetProjectUseCase,
	updateUC *projectUC.UpdateProjectUseCase,
	deleteUC *projectUC.DeleteProjectUseCase,
	upvoteUC *projectUC.UpvoteProjectUseCase,
	myProjectsUC *projectUC.ListMyProjectsUseCase,
	log logger.Logger,
) *ProjectHandler {
	return &ProjectHandler{
		createProjectUseCase: createUC,
		listProjectsUseCase:  listUC,
		getProjectUseCase:    getUC,
		updateProjectUseCase: updateUC,
		deleteProjectUseCase: deleteUC,
		upvoteProjectUseCase: upvoteUC,
		myProjectsUseCase:    myProjectsUC,
		logger:               log,
	}
}

// viewerID is uuid.Nil on anonymous catalog reads.
func viewerID(c *gin.Context) uuid.UUID {
	id, ok := GetUserIDFromGinContext(c)
	if !ok {
		return uuid.Nil
	}
	return id
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.CreateProjectInput{
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Domain:      req.Domain,
		BatchYear:   req.BatchYear,
		GithubLink:  req.GithubLink,
		DemoLink:    req.DemoLink,
	}

	output, err := h.createProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToProjectDTO(output.Project, userID))
}

// ListProjects serves the catalog: optional search, domain and year query
// parameters narrow the listing, and the facet sets ride along.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	input := projectUC.ListProjectsInput{
		SearchTerm:   c.Query("search"),
		DomainFilter: c.Query("domain"),
		YearFilter:   c.Query("year"),
	}

	output, err := h.listProjectsUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, CatalogResponse{
		Projects: ToProjectDTOs(output.Projects, viewerID(c)),
		Domains:  output.Domains,
		Years:    output.Years,
	})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	output, err := h.getProjectUseCase.Execute(c.Request.Context(), projectUC.GetProjectInput{ProjectID: projectID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTO(output.Project, viewerID(c)))
}

func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}
	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	input := projectUC.UpdateProjectInput{
		ProjectID:   projectID,
		AuthorID:    userID,
		Title:       req.Title,
		Description: req.Description,
		TechStack:   req.TechStack,
		Domain:      req.Domain,
		BatchYear:   req.BatchYear,
		GithubLink:  req.GithubLink,
		DemoLink:    req.DemoLink,
	}

	output, err := h.updateProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTO(output.Project, userID))
}

func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	input := projectUC.DeleteProjectInput{ProjectID: projectID, AuthorID: userID}
	if err := h.deleteProjectUseCase.Execute(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ProjectHandler) UpvoteProject(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	input := projectUC.UpvoteProjectInput{ProjectID: projectID, VoterID: userID}
	output, err := h.upvoteProjectUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applied": output.Applied, "reputation": output.Reputation})
}

func (h *ProjectHandler) ListMyProjects(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.myProjectsUseCase.Execute(c.Request.Context(), projectUC.ListMyProjectsInput{AuthorID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProjectDTOs(output.Projects, userID))
}
