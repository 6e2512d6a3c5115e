package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/foodgram-go/backend/internal/middleware"
	"github.com/foodgram-go/backend/internal/service"
)

const defaultRecipesLimit = 3

type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
	Password  string `json:"password" binding:"required,min=6"`
}

type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// UserHandler serves registration, profiles and subscriptions
type UserHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

func NewUserHandler(userService *service.UserService, authService *service.AuthService) *UserHandler {
	return &UserHandler{
		userService: userService,
		authService: authService,
	}
}

func (h *UserHandler) RegisterRoutes(router *gin.RouterGroup) {
	users := router.Group("/users")
	{
		users.POST("", h.Register)
		users.GET("", middleware.OptionalAuthMiddleware(h.authService), h.ListUsers)
		users.GET("/me", middleware.AuthMiddleware(h.authService), h.Me)
		users.POST("/set_password", middleware.AuthMiddleware(h.authService), h.SetPassword)
		users.GET("/subscriptions", middleware.AuthMiddleware(h.authService), h.Subscriptions)
		users.GET("/:id", middleware.OptionalAuthMiddleware(h.authService), h.GetUser)
		users.POST("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Subscribe)
		users.DELETE("/:id/subscribe", middleware.AuthMiddleware(h.authService), h.Unsubscribe)
	}
}

// Register creates a new user account
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.Register(service.RegisterInput{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, authorResponse(user, uuid.Nil, h.userService))
}

// ListUsers returns a page of user profiles
func (h *UserHandler) ListUsers(c *gin.Context) {
	viewer, _ := middleware.UserID(c)
	page, limit := pageParams(c)

	users, err := h.userService.ListUsers(page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	results := make([]AuthorResponse, len(users))
	for i := range users {
		results[i] = authorResponse(&users[i], viewer, h.userService)
	}
	c.JSON(http.StatusOK, results)
}

// Me returns the authenticated user's own profile
func (h *UserHandler) Me(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authorResponse(user, userID, h.userService))
}

// GetUser returns a user profile by id
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	viewer, _ := middleware.UserID(c)

	user, err := h.userService.GetUser(id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, authorResponse(user, viewer, h.userService))
}

// SetPassword changes the authenticated user's password
func (h *UserHandler) SetPassword(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req SetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authService.SetPassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscribe follows the author and returns the enriched profile
func (h *UserHandler) Subscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	followerID, _ := middleware.UserID(c)

	author, err := h.userService.Subscribe(followerID, authorID)
	if err != nil {
		abortWithError(c, err)
		return
	}

	resp, err := subscriptionResponse(author, followerID, h.userService, recipesLimitParam(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Unsubscribe removes the subscription to the author
func (h *UserHandler) Unsubscribe(c *gin.Context) {
	authorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	followerID, _ := middleware.UserID(c)

	if err := h.userService.Unsubscribe(followerID, authorID); err != nil {
		abortWithError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Subscriptions lists the authors the user follows, paginated
func (h *UserHandler) Subscriptions(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	page, limit := pageParams(c)
	authors, total, err := h.userService.Subscriptions(userID, page, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}

	recipesLimit := recipesLimitParam(c)
	results := make([]SubscriptionResponse, len(authors))
	for i := range authors {
		resp, err := subscriptionResponse(&authors[i], userID, h.userService, recipesLimit)
		if err != nil {
			abortWithError(c, err)
			return
		}
		results[i] = resp
	}

	c.JSON(http.StatusOK, PaginatedResponse{Count: total, Results: results})
}

// pageParams reads page/limit query parameters with Foodgram's defaults
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "6"))
	if err != nil || limit < 1 {
		limit = 6
	}
	return page, limit
}

func recipesLimitParam(c *gin.Context) int {
	limit, err := strconv.Atoi(c.DefaultQuery("recipes_limit", strconv.Itoa(defaultRecipesLimit)))
	if err != nil || limit < 0 {
		return defaultRecipesLimit
	}
	return limit
}
