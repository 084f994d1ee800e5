package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Danilepez/chat-pdf-ai/service"
	"github.com/Danilepez/chat-pdf-ai/types"
	"github.com/gin-gonic/gin"
)

type QueryHandler struct {
	queryService *service.QueryService
	timeout      time.Duration
}

func NewQueryHandler(queryService *service.QueryService, timeout time.Duration) *QueryHandler {
	return &QueryHandler{
		queryService: queryService,
		timeout:      timeout,
	}
}

// HandleQuery serves POST /documents/query: {documentKey, question} in,
// {answer, matchedFragmentIndex, similarity} out. The query runs under the
// configured timeout since this is a synchronous request path.
func (h *QueryHandler) HandleQuery(c *gin.Context) {
	var req types.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.ErrorResponse{Error: "invalid request body"})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.queryService.Query(ctx, req.DocumentKey, req.Question)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, types.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, types.ErrDocumentNotFoundOrEmpty):
			status = http.StatusNotFound
		case errors.Is(err, types.ErrProvider), errors.Is(err, types.ErrMalformedResponse):
			status = http.StatusBadGateway
		}
		c.JSON(status, types.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.QueryResponse{
		Answer:               result.Answer,
		MatchedFragmentIndex: result.MatchedFragmentIndex,
		Similarity:           result.Similarity,
	})
}
