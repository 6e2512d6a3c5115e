package api

import (
	"github.com/google/uuid"

	"github.com/foodgram-go/backend/internal/models"
	"github.com/foodgram-go/backend/internal/service"
)

// TagResponse is the wire representation of a tag
type TagResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
	Slug  string    `json:"slug"`
}

// IngredientResponse is the wire representation of reference ingredients
type IngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient inside a recipe, with amount
type RecipeIngredientResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	MeasurementUnit string    `json:"measurement_unit"`
	Amount          int       `json:"amount"`
}

// AuthorResponse is a public user profile
type AuthorResponse struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	IsSubscribed bool      `json:"is_subscribed"`
}

// RecipeSummaryResponse is the short recipe form used by toggle responses
// and subscription payloads
type RecipeSummaryResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Image       string    `json:"image"`
	CookingTime int       `json:"cooking_time"`
}

// RecipeResponse is the full recipe representation
type RecipeResponse struct {
	ID               uuid.UUID                  `json:"id"`
	Tags             []TagResponse              `json:"tags"`
	Author           AuthorResponse             `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// SubscriptionResponse is an author profile enriched with a capped recipe
// list and the author's total recipe count
type SubscriptionResponse struct {
	AuthorResponse
	Recipes      []RecipeSummaryResponse `json:"recipes"`
	RecipesCount int64                   `json:"recipes_count"`
}

// PaginatedResponse wraps paginated list payloads
type PaginatedResponse struct {
	Count   int64       `json:"count"`
	Results interface{} `json:"results"`
}

func tagResponse(t *models.Tag) TagResponse {
	return TagResponse{ID: t.ID, Name: t.Name, Color: t.Color, Slug: t.Slug}
}

func ingredientResponse(i *models.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func recipeSummaryResponse(r *models.Recipe) RecipeSummaryResponse {
	return RecipeSummaryResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       r.ImageURL,
		CookingTime: r.CookingTime,
	}
}

// authorResponse builds a profile as seen by viewer; uuid.Nil means anonymous
func authorResponse(u *models.User, viewer uuid.UUID, users *service.UserService) AuthorResponse {
	return AuthorResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: users.IsSubscribed(u.ID, viewer),
	}
}

// recipeResponse builds the full representation as seen by viewer. The
// recipe must be loaded with its Author, Ingredients.Ingredient and
// Tags.Tag associations.
func recipeResponse(r *models.Recipe, viewer uuid.UUID, carts *service.CartService, users *service.UserService) RecipeResponse {
	tags := make([]TagResponse, 0, len(r.Tags))
	for i := range r.Tags {
		if r.Tags[i].Tag != nil {
			tags = append(tags, tagResponse(r.Tags[i].Tag))
		}
	}

	ingredients := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for i := range r.Ingredients {
		link := &r.Ingredients[i]
		if link.Ingredient == nil {
			continue
		}
		ingredients = append(ingredients, RecipeIngredientResponse{
			ID:              link.IngredientID,
			Name:            link.Ingredient.Name,
			MeasurementUnit: link.Ingredient.MeasurementUnit,
			Amount:          link.Amount,
		})
	}

	var author AuthorResponse
	if r.Author != nil {
		author = authorResponse(r.Author, viewer, users)
	}

	return RecipeResponse{
		ID:               r.ID,
		Tags:             tags,
		Author:           author,
		Ingredients:      ingredients,
		IsFavorited:      carts.IsFavorited(viewer, r.ID),
		IsInShoppingCart: carts.IsInCart(viewer, r.ID),
		Name:             r.Name,
		Image:            r.ImageURL,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

// subscriptionResponse builds the enriched author payload used by the
// subscribe endpoints and the subscriptions list
func subscriptionResponse(author *models.User, viewer uuid.UUID, users *service.UserService, recipesLimit int) (SubscriptionResponse, error) {
	recipes, total, err := users.AuthorRecipes(author.ID, recipesLimit)
	if err != nil {
		return SubscriptionResponse{}, err
	}

	summaries := make([]RecipeSummaryResponse, len(recipes))
	for i := range recipes {
		summaries[i] = recipeSummaryResponse(&recipes[i])
	}

	return SubscriptionResponse{
		AuthorResponse: authorResponse(author, viewer, users),
		Recipes:        summaries,
		RecipesCount:   total,
	}, nil
}
