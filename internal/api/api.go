package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/middleware"
	"github.com/foodgram-go/backend/internal/service"
)

// HealthCheck returns the health status of the API
func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"message": "Foodgram API is running",
	})
}

// SetupAPI wires services and handlers onto the router
func SetupAPI(router *gin.Engine, db *gorm.DB, redisClient *redis.Client, jwtSecret string, images *service.ImageService) {
	router.GET("/health", HealthCheck)

	authService := service.NewAuthService(db, redisClient, jwtSecret)
	userService := service.NewUserService(db)
	recipeService := service.NewRecipeService(db)
	cartService := service.NewCartService(db)
	ingredientService := service.NewIngredientService(db)

	var creationLimiter *middleware.RateLimiter
	if redisClient != nil {
		creationLimiter = middleware.NewRecipeCreationRateLimiter(redisClient)
	}

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService, authService)
	recipeHandler := NewRecipeHandler(recipeService, cartService, userService, authService, images, creationLimiter)
	ingredientHandler := NewIngredientHandler(ingredientService)

	apiGroup := router.Group("/api")
	{
		authHandler.RegisterRoutes(apiGroup)
		userHandler.RegisterRoutes(apiGroup)
		recipeHandler.RegisterRoutes(apiGroup)
		ingredientHandler.RegisterRoutes(apiGroup)
	}
}

// errorStatus maps service errors onto the HTTP taxonomy: lookups to 404,
// permission violations to 403, everything business-rule shaped to 400.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrRecipeNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrTagNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrNotAuthor):
		return http.StatusForbidden
	case errors.Is(err, service.ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrEmailTaken),
		errors.Is(err, service.ErrUsernameTaken),
		errors.Is(err, service.ErrNoIngredients),
		errors.Is(err, service.ErrInvalidAmount),
		errors.Is(err, service.ErrDuplicateIngredient),
		errors.Is(err, service.ErrDuplicateTag),
		errors.Is(err, service.ErrAlreadyFavorited),
		errors.Is(err, service.ErrNotFavorited),
		errors.Is(err, service.ErrAlreadyInCart),
		errors.Is(err, service.ErrNotInCart),
		errors.Is(err, service.ErrSelfFollow),
		errors.Is(err, service.ErrAlreadyFollowing),
		errors.Is(err, service.ErrNotFollowing),
		errors.Is(err, service.ErrInvalidImage):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// abortWithError writes the error response for a service error. Internal
// errors are masked with a generic message.
func abortWithError(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		c.JSON(status, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
