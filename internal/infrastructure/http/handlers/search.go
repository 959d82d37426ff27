package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// SearchHandlers handles grounded web search
type SearchHandlers struct {
	search inbound.SearchService
	logger *zap.Logger
}

// NewSearchHandlers creates a new search handlers instance
func NewSearchHandlers(search inbound.SearchService, logger *zap.Logger) *SearchHandlers {
	return &SearchHandlers{search: search, logger: logger.Named("search-handlers")}
}

// SearchRequest represents a web search request
type SearchRequest struct {
	Query    string          `json:"query"`
	Language shared.Language `json:"language"`
}

// Search handles POST /api/v1/search. The body is always the search
// outcome; failures carry the message in its error field and a matching
// status code.
func (h *SearchHandlers) Search(c *gin.Context) {
	var req SearchRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	lang, ok := language(c, h.logger, req.Language)
	if !ok {
		return
	}

	outcome, err := h.search.Search(c.Request.Context(), req.Query, lang)
	if err != nil {
		status := http.StatusInternalServerError
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) {
			status = appErr.StatusCode()
		}
		_ = c.Error(err)
		c.JSON(status, outcome)
		return
	}
	c.JSON(http.StatusOK, outcome)
}
