package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/preferences"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
)

// PreferencesHandlers handles the application state
type PreferencesHandlers struct {
	preferences inbound.PreferencesService
	logger      *zap.Logger
}

// NewPreferencesHandlers creates a new preferences handlers instance
func NewPreferencesHandlers(preferences inbound.PreferencesService, logger *zap.Logger) *PreferencesHandlers {
	return &PreferencesHandlers{preferences: preferences, logger: logger.Named("preferences-handlers")}
}

// Get handles GET /api/v1/preferences
func (h *PreferencesHandlers) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.preferences.Get(c.Request.Context()))
}

// Update handles PUT /api/v1/preferences
func (h *PreferencesHandlers) Update(c *gin.Context) {
	var patch preferences.Patch
	if !bindJSON(c, h.logger, &patch) {
		return
	}

	state, err := h.preferences.Update(c.Request.Context(), patch)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, state)
}
