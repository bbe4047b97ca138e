package handlers

import (
	"errors"
	"net/http"
	"strings"

	"groupcal/services/storage"
	"groupcal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StorageHandler exposes the archived schedule images to admins.
type StorageHandler struct {
	StorageSvc storage.StorageService
}

func NewStorageHandler(svc storage.StorageService) *StorageHandler {
	return &StorageHandler{StorageSvc: svc}
}

func publicIDParam(c *gin.Context) (string, bool) {
	id := strings.TrimSpace(c.Query("public_id"))
	if id == "" {
		utils.JSONError(c, http.StatusBadRequest, "public_id is required")
		return "", false
	}
	return id, true
}

// GetDownloadURLHandler handles GET /admin/archive?public_id=.
func (h *StorageHandler) GetDownloadURLHandler(c *gin.Context) {
	publicID, ok := publicIDParam(c)
	if !ok {
		return
	}
	url, err := h.StorageSvc.GetDownloadURL(c.Request.Context(), publicID)
	if errors.Is(err, storage.ErrDisabled) {
		utils.JSONError(c, http.StatusServiceUnavailable, err.Error())
		return
	}
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to build download url")
		return
	}
	c.JSON(http.StatusOK, gin.H{"public_id": publicID, "url": url})
}

// DeleteFileHandler handles DELETE /admin/archive?public_id=.
func (h *StorageHandler) DeleteFileHandler(c *gin.Context) {
	publicID, ok := publicIDParam(c)
	if !ok {
		return
	}
	if !h.StorageSvc.Enabled() {
		utils.JSONError(c, http.StatusServiceUnavailable, storage.ErrDisabled.Error())
		return
	}
	if err := h.StorageSvc.DeleteFile(c.Request.Context(), publicID); err != nil {
		getLogger(c).Error("Failed to delete archived image", zap.String("publicID", publicID), zap.Error(err))
		utils.JSONError(c, http.StatusBadGateway, "failed to delete archived image")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "deleted", "public_id": publicID})
}
