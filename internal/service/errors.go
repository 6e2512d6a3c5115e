package service

import "errors"

// Business-rule errors surfaced to handlers, which translate them to HTTP
// statuses. Conflict-style errors map to 400, lookups to 404.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("a user with this email already exists")
	ErrUsernameTaken      = errors.New("a user with this username already exists")
	ErrInvalidToken       = errors.New("invalid token")

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrTagNotFound        = errors.New("tag not found")
	ErrNotAuthor          = errors.New("only the author can modify the recipe")

	ErrNoIngredients       = errors.New("recipe must contain at least one ingredient")
	ErrInvalidAmount       = errors.New("ingredient amount must be positive")
	ErrDuplicateIngredient = errors.New("recipe ingredients must be unique")
	ErrDuplicateTag        = errors.New("recipe tags must be unique")

	ErrAlreadyFavorited = errors.New("recipe is already in favorites")
	ErrNotFavorited     = errors.New("recipe is not in favorites")
	ErrAlreadyInCart    = errors.New("recipe is already in the shopping cart")
	ErrNotInCart        = errors.New("recipe is not in the shopping cart")

	ErrSelfFollow       = errors.New("subscribing to yourself is not allowed")
	ErrAlreadyFollowing = errors.New("already subscribed to this author")
	ErrNotFollowing     = errors.New("not subscribed to this author")
)
