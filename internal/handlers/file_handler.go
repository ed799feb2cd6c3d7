package handlers

import (
	"errors"
	"fmt"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"donation-platform/internal/metrics"
	"donation-platform/internal/models"
	"donation-platform/internal/storage"
)

// FileHandler handles file upload and download
type FileHandler struct {
	store     storage.BlobStore
	urlPrefix string
	log       *zap.Logger
}

// NewFileHandler creates a new FileHandler. apiPrefix is used to build the
// public URL of uploaded files.
func NewFileHandler(store storage.BlobStore, apiPrefix string, log *zap.Logger) *FileHandler {
	return &FileHandler{
		store:     store,
		urlPrefix: strings.TrimRight(apiPrefix, "/") + "/read-file/",
		log:       log,
	}
}

// Upload stores the multipart field "file" under a random name
// POST /upload-file
func (h *FileHandler) Upload(c *gin.Context) {
	header, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, errorBody("No file uploaded"))
		return
	}

	src, err := header.Open()
	if err != nil {
		h.log.Error("Failed to open upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("Error uploading file"))
		return
	}
	defer src.Close()

	name := strings.ReplaceAll(uuid.NewString(), "-", "") + filepath.Ext(header.Filename)
	if err := h.store.Save(c.Request.Context(), name, src); err != nil {
		h.log.Error("Failed to store upload", zap.String("file", name), zap.Error(err))
		c.JSON(http.StatusBadRequest, errorBody("Error uploading file"))
		return
	}

	metrics.RecordUpload()
	h.log.Info("File uploaded", zap.String("file", name), zap.Int64("size", header.Size))

	c.JSON(http.StatusOK, models.UploadResponse{
		Message:  "File uploaded successfully",
		FileName: name,
		FileURL:  h.urlPrefix + name,
	})
}

// Read streams a stored file as an attachment
// GET /read-file/:name
func (h *FileHandler) Read(c *gin.Context) {
	name := c.Param("name")

	rc, size, err := h.store.Open(c.Request.Context(), name)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			c.JSON(http.StatusNotFound, errorBody("File not found"))
			return
		}
		respondError(c, h.log, err, http.StatusInternalServerError)
		return
	}
	defer rc.Close()

	contentType := mime.TypeByExtension(filepath.Ext(name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	c.DataFromReader(http.StatusOK, size, contentType, rc, map[string]string{
		"Content-Disposition": fmt.Sprintf("attachment; filename=%q", name),
	})
}
