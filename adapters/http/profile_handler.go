package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	profileUC "github.com/codevaulthq/codevault/internal/application/usecase/profile"
	"github.com/codevaulthq/codevault/pkg/apperror"
	"github.com/codevaulthq/codevault/pkg/logger"
)

const maxAvatarSizeBytes = 5 << 20

type ProfileHandler struct {
	profileUseCase *profileUC.ProfileUseCase
	logger         logger.Logger
}

func NewProfileHandler(uc *profileUC.ProfileUseCase, log logger.Logger) *ProfileHandler {
	return &ProfileHandler{profileUseCase: uc, logger: log}
}

// GetProfile is public: anyone can view a profile by user ID.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid user ID", err))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.profileUseCase.ExecuteGetProfile(c.Request.Context(), profileUC.GetProfileInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UpsertProfile(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req UpsertProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request data", err))
		return
	}

	output, err := h.profileUseCase.ExecuteUpsertProfile(c.Request.Context(), profileUC.UpsertProfileInput{
		UserID:      userID,
		Name:        req.Name,
		Domain:      req.Domain,
		BatchYear:   req.BatchYear,
		About:       req.About,
		LinkedinURL: req.LinkedinURL,
		GithubURL:   req.GithubURL,
		WebsiteURL:  req.WebsiteURL,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToProfileDTO(output.Profile))
}

func (h *ProfileHandler) UploadAvatar(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		c.Error(apperror.NewInvalidInput("avatar file is required", err))
		return
	}
	if fileHeader.Size > maxAvatarSizeBytes {
		c.Error(apperror.NewInvalidInput("avatar file is too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	output, err := h.profileUseCase.ExecuteUploadAvatar(c.Request.Context(), profileUC.UploadAvatarInput{
		UserID: userID,
		File:   file,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": output.PhotoURL})
}
