package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-go/backend/internal/service"
)

// IngredientHandler serves the ingredient and tag reference data
type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (h *IngredientHandler) RegisterRoutes(router *gin.RouterGroup) {
	ingredients := router.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients)
		ingredients.GET("/:id", h.GetIngredient)
	}

	tags := router.Group("/tags")
	{
		tags.GET("", h.ListTags)
		tags.GET("/:id", h.GetTag)
	}
}

// ListIngredients returns ingredients, filtered by ?name= substring
func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.ListIngredients(c.Query("name"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := make([]IngredientResponse, len(ingredients))
	for i := range ingredients {
		results[i] = ingredientResponse(&ingredients[i])
	}
	c.JSON(http.StatusOK, results)
}

// GetIngredient returns one ingredient by id
func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "ingredient not found"})
		return
	}

	ingredient, err := h.ingredientService.GetIngredient(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ingredientResponse(ingredient))
}

// ListTags returns all tags
func (h *IngredientHandler) ListTags(c *gin.Context) {
	tags, err := h.ingredientService.ListTags()
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := make([]TagResponse, len(tags))
	for i := range tags {
		results[i] = tagResponse(&tags[i])
	}
	c.JSON(http.StatusOK, results)
}

// GetTag returns one tag by id
func (h *IngredientHandler) GetTag(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "tag not found"})
		return
	}

	tag, err := h.ingredientService.GetTag(id)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, tagResponse(tag))
}
