package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	aiUC "github.com/codevaulthq/codevault/internal/application/usecase/ai"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type AIHandler struct {
	summarizeUseCase *aiUC.SummarizeUseCase
}

func NewAIHandler(uc *aiUC.SummarizeUseCase) *AIHandler {
	return &AIHandler{summarizeUseCase: uc}
}

func (h *AIHandler) SummarizeDescription(c *gin.Context) {
	var req SummarizeDescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.summarizeUseCase.ExecuteDescription(c.Request.Context(), aiUC.SummarizeDescriptionInput{
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": output.Summary})
}

func (h *AIHandler) SummarizeRepo(c *gin.Context) {
	var req SummarizeRepoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.summarizeUseCase.ExecuteRepo(c.Request.Context(), aiUC.SummarizeRepoInput{
		RepoURL: req.RepoURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, output.Summary)
}
