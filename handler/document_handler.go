package handler

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/Danilepez/chat-pdf-ai/service"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	fileService *service.FileService
}

func NewDocumentHandler(fileService *service.FileService) *DocumentHandler {
	return &DocumentHandler{
		fileService: fileService,
	}
}

// ListDocuments serves GET /documents: the stored document keys with size
// and last-modified time.
func (h *DocumentHandler) ListDocuments(c *gin.Context) {
	files, err := h.fileService.ListDocuments()
	if err != nil {
		c.JSON(http.StatusInternalServerError, types.ErrorResponse{Error: "failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, types.ListDocumentsResponse{Files: files})
}

// ServeDocument serves GET /pdf?file=<key>: streams a stored PDF back.
func (h *DocumentHandler) ServeDocument(c *gin.Context) {
	key := c.Query("file")
	if key == "" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "file parameter is required"})
		return
	}
	if filepath.Ext(key) != ".pdf" {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "only PDF files are allowed"})
		return
	}

	path, err := h.fileService.DocumentPath(key)
	if err != nil {
		c.JSON(http.StatusNotFound, types.ErrorResponse{Error: "file not found"})
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%s", key))
	c.File(path)
}
