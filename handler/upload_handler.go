package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Danilepez/chat-pdf-ai/service"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	fileService *service.FileService
}

func NewUploadHandler(fileService *service.FileService) *UploadHandler {
	return &UploadHandler{
		fileService: fileService,
	}
}

type uploadResult struct {
	key   string
	count int
	err   error
}

// UploadDocumentHandler accepts a multipart PDF upload, ingests it and
// streams ingestion progress as SSE messages, finishing with a JSON result.
func (h *UploadHandler) UploadDocumentHandler(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "missing file field"})
		return
	}
	defer file.Close()

	var req types.UploadRequest
	if metadata := c.Request.FormValue("metadata"); metadata != "" {
		if err := json.Unmarshal([]byte(metadata), &req); err != nil {
			c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid metadata"})
			return
		}
	}

	const maxSize = 10 << 20
	if header.Size > maxSize {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "file too large"})
		return
	}

	statusChan := make(chan types.ProcessingDocumentStatus)
	resultChan := make(chan uploadResult, 1)
	go func() {
		key, count, err := h.fileService.UploadFile(c.Request.Context(), req, header, statusChan)
		resultChan <- uploadResult{key: key, count: count, err: err}
	}()

	clientGone := c.Writer.CloseNotify()
	for {
		select {
		case <-clientGone:
			return // Client disconnected
		case status := <-statusChan:
			jsonStatus, err := json.Marshal(status)
			if err != nil {
				continue
			}
			c.SSEvent("message", string(jsonStatus))
			c.Writer.Flush()
		case result := <-resultChan:
			if result.err != nil {
				status := http.StatusInternalServerError
				switch {
				case errors.Is(result.err, types.ErrValidation):
					status = http.StatusBadRequest
				case errors.Is(result.err, types.ErrExtraction):
					status = http.StatusUnprocessableEntity
				case errors.Is(result.err, types.ErrProvider), errors.Is(result.err, types.ErrMalformedResponse):
					status = http.StatusBadGateway
				}
				c.JSON(status, types.ErrorResponse{Error: result.err.Error()})
			} else {
				c.JSON(http.StatusOK, types.UploadResponse{
					Key:            result.key,
					FragmentsAdded: result.count,
				})
			}
			return
		}
	}
}
