package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dcbcollege/noticeboard/internal/app/services"
	"github.com/dcbcollege/noticeboard/internal/pkg/apperrors"
	"github.com/dcbcollege/noticeboard/internal/pkg/logger"
)

const downloadChunkSize = 8192

// DownloadController streams notification attachments to the public site.
type DownloadController struct {
	notificationService services.NotificationService
}

// NewDownloadController creates a new DownloadController
func NewDownloadController(notifications services.NotificationService) *DownloadController {
	return &DownloadController{notificationService: notifications}
}

// Download serves GET /download?id=<notification>&file=<original name>. The
// file is looked up through its notification, so only names recorded against
// that notice resolve, and the content streams in fixed-size chunks. Errors
// come back as plain text bodies, not the JSON envelope, since the response
// is a raw file rather than an API payload.
func (dc *DownloadController) Download(c *gin.Context) {
	id, err := strconv.ParseInt(c.Query("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "Invalid download request")
		return
	}

	name := c.Query("file")
	if name == "" {
		c.String(http.StatusBadRequest, "Invalid download request")
		return
	}

	record, err := dc.notificationService.ResolveDownload(c.Request.Context(), id, name)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrFileNotFound), errors.Is(err, apperrors.ErrNotificationNotFound):
			c.String(http.StatusNotFound, "File not found")
		case errors.Is(err, apperrors.ErrValidationFailed):
			c.String(http.StatusBadRequest, "Invalid download request")
		default:
			logger.Error().Err(err).Int64("notificationID", id).Msg("Failed to resolve download")
			c.String(http.StatusInternalServerError, "Download failed")
		}
		return
	}

	f, err := os.Open(record.FilePath)
	if err != nil {
		logger.Error().Err(err).Str("path", record.FilePath).Msg("Failed to open attachment for download")
		c.String(http.StatusInternalServerError, "Failed to read file")
		return
	}
	defer f.Close()

	contentType := record.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.Header("Content-Type", contentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", record.OriginalName))
	c.Header("Content-Length", strconv.FormatInt(record.FileSize, 10))
	c.Header("Cache-Control", "no-cache, must-revalidate")
	c.Header("Pragma", "no-cache")
	c.Status(http.StatusOK)

	buf := make([]byte, downloadChunkSize)
	if _, err := io.CopyBuffer(c.Writer, f, buf); err != nil {
		// Headers are already out; the client likely disconnected.
		logger.Warn().Err(err).Str("file", record.OriginalName).Msg("Download interrupted")
	}
}
