package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/infrastructure/http/middleware"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
	apperrors "github.com/jpavlov47-ux/Jardova-online-kucha-ka/pkg/errors"
)

// CookingHandlers handles cooking-mode sessions
type CookingHandlers struct {
	cooking inbound.CookingService
	logger  *zap.Logger
}

// NewCookingHandlers creates a new cooking handlers instance
func NewCookingHandlers(cooking inbound.CookingService, logger *zap.Logger) *CookingHandlers {
	return &CookingHandlers{cooking: cooking, logger: logger.Named("cooking-handlers")}
}

// StartCookingRequest represents a request to enter cooking mode
type StartCookingRequest struct {
	RecipeID string `json:"recipeId"`
}

// Start handles POST /api/v1/cooking-sessions
func (h *CookingHandlers) Start(c *gin.Context) {
	var req StartCookingRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	if req.RecipeID == "" {
		respondError(c, h.logger, apperrors.NewValidationError("recipeId is required"))
		return
	}

	view, err := h.cooking.Start(c.Request.Context(), middleware.GetClientID(c), req.RecipeID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// Get handles GET /api/v1/cooking-sessions/:id
func (h *CookingHandlers) Get(c *gin.Context) {
	h.respond(c, h.cooking.Get)
}

// Next handles POST /api/v1/cooking-sessions/:id/next
func (h *CookingHandlers) Next(c *gin.Context) {
	h.respond(c, h.cooking.Next)
}

// Previous handles POST /api/v1/cooking-sessions/:id/previous
func (h *CookingHandlers) Previous(c *gin.Context) {
	h.respond(c, h.cooking.Previous)
}

// ToggleIngredients handles POST /api/v1/cooking-sessions/:id/ingredients
func (h *CookingHandlers) ToggleIngredients(c *gin.Context) {
	h.respond(c, h.cooking.ToggleIngredients)
}

// Close handles DELETE /api/v1/cooking-sessions/:id
func (h *CookingHandlers) Close(c *gin.Context) {
	if err := h.cooking.Close(c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CookingHandlers) respond(c *gin.Context, op func(string) (inbound.CookingView, error)) {
	view, err := op(c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, view)
}
