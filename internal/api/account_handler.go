package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"alcyxob/workout-planner/internal/service"
)

type AccountHandler struct {
	accountService service.AccountService
	logger         *slog.Logger
}

func NewAccountHandler(accountService service.AccountService, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{accountService: accountService, logger: logger}
}

// ProfileRequest is the onboarding form.
type ProfileRequest struct {
	Name                     string   `json:"name"`
	Difficulty               string   `json:"difficulty"`
	EquipmentTier            string   `json:"equipmentTier"`
	OwnedEquipment           []string `json:"ownedEquipment"`
	PreferredDurationMinutes int      `json:"preferredDurationMinutes"`
	FocusAreas               []string `json:"focusAreas"`
	WeeklyFrequency          int      `json:"weeklyFrequency"`
	PreferredDays            []string `json:"preferredDays"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=8"`
}

type AvatarUploadRequest struct {
	ContentType string `json:"contentType" binding:"required"`
}

type AvatarUploadResponse struct {
	UploadURL string `json:"uploadUrl"`
	ObjectKey string `json:"objectKey"`
}

type AvatarConfirmRequest struct {
	ObjectKey string `json:"objectKey" binding:"required"`
}

// GetMe returns the authenticated user with the fitness profile.
// @Router /me [get]
func (h *AccountHandler) GetMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	acc, err := h.accountService.GetAccount(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	resp := MapUserToResponse(acc.User)
	resp.AvatarURL = acc.AvatarURL
	c.JSON(http.StatusOK, resp)
}

// UpdateProfile saves the onboarding answers.
// @Router /me/profile [put]
func (h *AccountHandler) UpdateProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	user, err := h.accountService.UpdateProfile(c.Request.Context(), userID, service.ProfileInput{
		Name:                     req.Name,
		Difficulty:               req.Difficulty,
		EquipmentTier:            req.EquipmentTier,
		OwnedEquipment:           req.OwnedEquipment,
		PreferredDurationMinutes: req.PreferredDurationMinutes,
		FocusAreas:               req.FocusAreas,
		WeeklyFrequency:          req.WeeklyFrequency,
		PreferredDays:            req.PreferredDays,
	})
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// @Router /me/password [put]
func (h *AccountHandler) ChangePassword(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.accountService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestAvatarUpload returns a presigned URL the client PUTs the image to.
// @Router /me/avatar/upload-url [post]
func (h *AccountHandler) RequestAvatarUpload(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req AvatarUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	url, key, err := h.accountService.AvatarUploadURL(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, AvatarUploadResponse{UploadURL: url, ObjectKey: key})
}

// @Router /me/avatar/confirm [post]
func (h *AccountHandler) ConfirmAvatar(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	var req AvatarConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}
	if err := h.accountService.ConfirmAvatar(c.Request.Context(), userID, req.ObjectKey); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// DeleteMe removes the account and everything stored for it.
// @Router /me [delete]
func (h *AccountHandler) DeleteMe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if err := h.accountService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
