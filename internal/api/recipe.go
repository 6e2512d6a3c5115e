package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-go/backend/internal/middleware"
	"github.com/foodgram-go/backend/internal/models"
	"github.com/foodgram-go/backend/internal/service"
)

type RecipeIngredientRequest struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

type CreateRecipeRequest struct {
	Name        string                    `json:"name" binding:"required,max=200"`
	Text        string                    `json:"text" binding:"required"`
	CookingTime int                       `json:"cooking_time" binding:"required,gt=0"`
	Image       string                    `json:"image" binding:"required"`
	Ingredients []RecipeIngredientRequest `json:"ingredients"`
	Tags        []uuid.UUID               `json:"tags"`
}

// UpdateRecipeRequest is a partial update; absent fields keep their values
type UpdateRecipeRequest struct {
	Name        *string                    `json:"name"`
	Text        *string                    `json:"text"`
	CookingTime *int                       `json:"cooking_time"`
	Image       *string                    `json:"image"`
	Ingredients *[]RecipeIngredientRequest `json:"ingredients"`
	Tags        *[]uuid.UUID               `json:"tags"`
}

// RecipeHandler serves recipe CRUD, favorite and cart toggles, the
// shopping-list export and subscribing to a recipe's author.
type RecipeHandler struct {
	recipeService *service.RecipeService
	cartService   *service.CartService
	userService   *service.UserService
	authService   *service.AuthService
	images        *service.ImageService
	limiter       *middleware.RateLimiter
}

func NewRecipeHandler(
	recipeService *service.RecipeService,
	cartService *service.CartService,
	userService *service.UserService,
	authService *service.AuthService,
	images *service.ImageService,
	limiter *middleware.RateLimiter,
) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		cartService:   cartService,
		userService:   userService,
		authService:   authService,
		images:        images,
		limiter:       limiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	optional := middleware.OptionalAuthMiddleware(h.authService)
	required := middleware.AuthMiddleware(h.authService)

	recipes := router.Group("/recipes")
	{
		recipes.GET("", optional, h.ListRecipes)
		recipes.GET("/download_shopping_cart", required, h.DownloadShoppingCart)
		recipes.GET("/:id", optional, h.GetRecipe)
		recipes.PATCH("/:id", required, h.UpdateRecipe)
		recipes.DELETE("/:id", required, h.DeleteRecipe)
		recipes.POST("/:id/favorite", required, h.Favorite)
		recipes.DELETE("/:id/favorite", required, h.Unfavorite)
		recipes.POST("/:id/shopping_cart", required, h.AddToCart)
		recipes.DELETE("/:id/shopping_cart", required, h.RemoveFromCart)
		recipes.POST("/:id/subscribe", required, h.SubscribeToAuthor)
		recipes.DELETE("/:id/subscribe", required, h.UnsubscribeFromAuthor)

		create := []gin.HandlerFunc{required}
		if h.limiter != nil {
			create = append(create, h.limiter.RateLimitMiddleware())
		}
		create = append(create, h.CreateRecipe)
		recipes.POST("", create...)
	}
}

// ListRecipes returns a filtered page of recipes, newest first
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	viewer, _ := middleware.UserID(c)
	page, limit := pageParams(c)

	filter := service.RecipeFilter{
		AuthorUsername: c.Query("author"),
		TagSlugs:       c.QueryArray("tags"),
		Page:           page,
		Limit:          limit,
	}
	if boolParam(c, "is_favorited") {
		filter.FavoritedBy = viewer
	}
	if boolParam(c, "is_in_shopping_cart") {
		filter.InCartOf = viewer
	}

	recipes, total, err := h.recipeService.ListRecipes(filter)
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := make([]RecipeResponse, len(recipes))
	for i := range recipes {
		results[i] = recipeResponse(&recipes[i], viewer, h.cartService, h.userService)
	}
	c.JSON(http.StatusOK, PaginatedResponse{Count: total, Results: results})
}

// GetRecipe returns one recipe with its full representation
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	viewer, _ := middleware.UserID(c)

	recipe, err := h.recipeService.GetRecipe(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipeResponse(recipe, viewer, h.cartService, h.userService))
}

// CreateRecipe publishes a new recipe for the authenticated user
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	imageURL, err := h.images.ProcessDataURI(c.Request.Context(), req.Image)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipe, err := h.recipeService.CreateRecipe(userID, service.CreateRecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    imageURL,
		Ingredients: ingredientAmounts(req.Ingredients),
		Tags:        req.Tags,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipeResponse(recipe, userID, h.cartService, h.userService))
}

// UpdateRecipe applies a partial update to the caller's own recipe
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	userID, _ := middleware.UserID(c)

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := service.UpdateRecipeInput{
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		Tags:        req.Tags,
	}
	if req.Image != nil {
		imageURL, err := h.images.ProcessDataURI(c.Request.Context(), *req.Image)
		if err != nil {
			abortWithError(c, err)
			return
		}
		input.ImageURL = &imageURL
	}
	if req.Ingredients != nil {
		amounts := ingredientAmounts(*req.Ingredients)
		input.Ingredients = &amounts
	}

	recipe, err := h.recipeService.UpdateRecipe(userID, id, input)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, recipeResponse(recipe, userID, h.cartService, h.userService))
}

// DeleteRecipe removes the caller's own recipe
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	userID, _ := middleware.UserID(c)

	if err := h.recipeService.DeleteRecipe(userID, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Favorite flags the recipe and returns its short form
func (h *RecipeHandler) Favorite(c *gin.Context) {
	h.toggleOn(c, h.cartService.Favorite)
}

// Unfavorite removes the favorite flag
func (h *RecipeHandler) Unfavorite(c *gin.Context) {
	h.toggleOff(c, h.cartService.Unfavorite)
}

// AddToCart puts the recipe into the shopping cart and returns its short form
func (h *RecipeHandler) AddToCart(c *gin.Context) {
	h.toggleOn(c, h.cartService.AddToCart)
}

// RemoveFromCart takes the recipe out of the shopping cart
func (h *RecipeHandler) RemoveFromCart(c *gin.Context) {
	h.toggleOff(c, h.cartService.RemoveFromCart)
}

// SubscribeToAuthor follows the recipe's author
func (h *RecipeHandler) SubscribeToAuthor(c *gin.Context) {
	recipe, userID, ok := h.recipeFromPath(c)
	if !ok {
		return
	}

	author, err := h.userService.Subscribe(userID, recipe.AuthorID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp, err := subscriptionResponse(author, userID, h.userService, recipesLimitParam(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UnsubscribeFromAuthor unfollows the recipe's author
func (h *RecipeHandler) UnsubscribeFromAuthor(c *gin.Context) {
	recipe, userID, ok := h.recipeFromPath(c)
	if !ok {
		return
	}

	if err := h.userService.Unsubscribe(userID, recipe.AuthorID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// DownloadShoppingCart exports the aggregated shopping list as a
// plain-text attachment
func (h *RecipeHandler) DownloadShoppingCart(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	totals, err := h.cartService.AggregateCart(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="shopping_cart.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(service.RenderShoppingList(totals)))
}

func (h *RecipeHandler) toggleOn(c *gin.Context, toggle func(userID, recipeID uuid.UUID) (*models.Recipe, error)) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	userID, _ := middleware.UserID(c)

	recipe, err := toggle(userID, id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, recipeSummaryResponse(recipe))
}

func (h *RecipeHandler) toggleOff(c *gin.Context, toggle func(userID, recipeID uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return
	}
	userID, _ := middleware.UserID(c)

	if err := toggle(userID, id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) recipeFromPath(c *gin.Context) (*models.Recipe, uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		return nil, uuid.Nil, false
	}
	userID, _ := middleware.UserID(c)

	recipe, err := h.recipeService.GetRecipe(id)
	if err != nil {
		abortWithError(c, err)
		return nil, uuid.Nil, false
	}
	return recipe, userID, true
}

func ingredientAmounts(reqs []RecipeIngredientRequest) []service.IngredientAmount {
	out := make([]service.IngredientAmount, len(reqs))
	for i, r := range reqs {
		out[i] = service.IngredientAmount{ID: r.ID, Amount: r.Amount}
	}
	return out
}

func boolParam(c *gin.Context, name string) bool {
	v := c.Query(name)
	return v == "1" || v == "true"
}
