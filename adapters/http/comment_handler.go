package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	commentUC "github.com/codevaulthq/codevault/internal/application/usecase/comment"
	"github.com/codevaulthq/codevault/pkg/apperror"
)

type CommentHandler struct {
	commentUseCase *commentUC.CommentUseCase
}

func NewCommentHandler(uc *commentUC.CommentUseCase) *CommentHandler {
	return &CommentHandler{commentUseCase: uc}
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid project ID", err))
		return
	}

	output, err := h.commentUseCase.ExecuteList(c.Request.Context(), commentUC.ListCommentsInput{ProjectID: projectID})
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]CommentDTO, len(output.Comments))
	for i, cm := range output.Comments {
		dtos[i] = ToCommentDTO(cm)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *CommentHandler) AddComment(c *gin.Context) {
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
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.commentUseCase.ExecuteAdd(c.Request.Context(), commentUC.AddCommentInput{
		ProjectID: projectID,
		AuthorID:  userID,
		Text:      req.Text,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToCommentDTO(output.Comment))
}
