package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/recipe"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/domain/shared"
	"github.com/jpavlov47-ux/Jardova-online-kucha-ka/internal/ports/inbound"
)

// RecipeHandlers handles the recipe collection endpoints
type RecipeHandlers struct {
	recipes     inbound.RecipeService
	importer    inbound.ImportService
	preferences inbound.PreferencesService
	printer     *Printer
	logger      *zap.Logger
}

// NewRecipeHandlers creates a new recipe handlers instance
func NewRecipeHandlers(
	recipes inbound.RecipeService,
	importer inbound.ImportService,
	preferences inbound.PreferencesService,
	printer *Printer,
	logger *zap.Logger,
) *RecipeHandlers {
	return &RecipeHandlers{
		recipes:     recipes,
		importer:    importer,
		preferences: preferences,
		printer:     printer,
		logger:      logger.Named("recipe-handlers"),
	}
}

// ImportRequest represents a recipe import request
type ImportRequest struct {
	URL      string          `json:"url"`
	Language shared.Language `json:"language"`
}

// ListRecipes handles GET /api/v1/recipes
func (h *RecipeHandlers) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.List(c.Request.Context(), inbound.ListQuery{
		SearchTerm: c.Query("q"),
		Category:   c.Query("category"),
	})
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// CreateRecipe handles POST /api/v1/recipes
func (h *RecipeHandlers) CreateRecipe(c *gin.Context) {
	var draft recipe.Draft
	if !bindJSON(c, h.logger, &draft) {
		return
	}
	lang, ok := h.language(c, "")
	if !ok {
		return
	}

	created, err := h.recipes.Create(c.Request.Context(), draft, lang)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetRecipe handles GET /api/v1/recipes/:id
func (h *RecipeHandlers) GetRecipe(c *gin.Context) {
	r, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// UpdateRecipe handles PUT /api/v1/recipes/:id
func (h *RecipeHandlers) UpdateRecipe(c *gin.Context) {
	var draft recipe.Draft
	if !bindJSON(c, h.logger, &draft) {
		return
	}
	lang, ok := h.language(c, "")
	if !ok {
		return
	}

	updated, err := h.recipes.Update(c.Request.Context(), c.Param("id"), draft, lang)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteRecipe handles DELETE /api/v1/recipes/:id
func (h *RecipeHandlers) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// PrintRecipe handles GET /api/v1/recipes/:id/print
func (h *RecipeHandlers) PrintRecipe(c *gin.Context) {
	r, err := h.recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	lang, ok := h.language(c, "")
	if !ok {
		return
	}
	if err := h.printer.Render(c, *r, lang); err != nil {
		respondError(c, h.logger, err)
	}
}

// RegenerateImage handles POST /api/v1/recipes/:id/image
func (h *RecipeHandlers) RegenerateImage(c *gin.Context) {
	r, err := h.recipes.RegenerateImage(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, r)
}

// ImportRecipe handles POST /api/v1/recipes/import
func (h *RecipeHandlers) ImportRecipe(c *gin.Context) {
	var req ImportRequest
	if !bindJSON(c, h.logger, &req) {
		return
	}
	lang, ok := h.language(c, req.Language)
	if !ok {
		return
	}

	imported, err := h.importer.Import(c.Request.Context(), req.URL, lang)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, imported)
}

// Categories handles GET /api/v1/categories
func (h *RecipeHandlers) Categories(c *gin.Context) {
	lang, ok := h.language(c, "")
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"language":   lang,
		"categories": h.recipes.Categories(c.Request.Context(), lang),
	})
}

// language resolves the request language, falling back to the stored
// interface language.
func (h *RecipeHandlers) language(c *gin.Context, fromBody shared.Language) (shared.Language, bool) {
	lang, ok := language(c, h.logger, fromBody)
	if !ok {
		return "", false
	}
	if lang == "" {
		lang = h.preferences.Get(c.Request.Context()).Language
	}
	return lang, true
}
