package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/models"
)

// CartService handles favorite and shopping-cart toggles and the
// shopping-list aggregation.
type CartService struct {
	db *gorm.DB
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{db: db}
}

// IngredientTotal is one aggregated shopping-list row
type IngredientTotal struct {
	Name  string
	Unit  string
	Total int64
}

// Favorite flags the recipe for the user and returns it for the summary
// response. Duplicates are rejected by the unique index, so concurrent
// requests cannot slip a second row in.
func (s *CartService) Favorite(userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	fav := models.Favorite{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyFavorited
		}
		return nil, err
	}
	return recipe, nil
}

// Unfavorite removes the flag, failing when the recipe was never favorited
func (s *CartService) Unfavorite(userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFavorited
	}
	return nil
}

// AddToCart puts the recipe into the user's shopping cart
func (s *CartService) AddToCart(userID, recipeID uuid.UUID) (*models.Recipe, error) {
	recipe, err := s.findRecipe(recipeID)
	if err != nil {
		return nil, err
	}

	item := models.CartItem{UserID: userID, RecipeID: recipeID}
	if err := s.db.Create(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyInCart
		}
		return nil, err
	}
	return recipe, nil
}

// RemoveFromCart takes the recipe out of the cart, failing when absent
func (s *CartService) RemoveFromCart(userID, recipeID uuid.UUID) error {
	if _, err := s.findRecipe(recipeID); err != nil {
		return err
	}

	result := s.db.Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotInCart
	}
	return nil
}

// IsFavorited reports whether the user has favorited the recipe
func (s *CartService) IsFavorited(userID, recipeID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	var count int64
	s.db.Model(&models.Favorite{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count)
	return count > 0
}

// IsInCart reports whether the recipe is in the user's shopping cart
func (s *CartService) IsInCart(userID, recipeID uuid.UUID) bool {
	if userID == uuid.Nil {
		return false
	}
	var count int64
	s.db.Model(&models.CartItem{}).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count)
	return count > 0
}

// AggregateCart sums ingredient amounts across all recipes in the user's
// cart, grouped by ingredient name and unit. Ordered by name so the
// exported list is deterministic. An empty cart yields an empty slice.
func (s *CartService) AggregateCart(userID uuid.UUID) ([]IngredientTotal, error) {
	var totals []IngredientTotal
	err := s.db.Table("recipe_ingredients").
		Select("ingredients.name AS name, ingredients.measurement_unit AS unit, SUM(recipe_ingredients.amount) AS total").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN cart_items ON cart_items.recipe_id = recipe_ingredients.recipe_id").
		Where("cart_items.user_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}

// RenderShoppingList formats aggregated totals as the plain-text export,
// one "{name}: ({unit}) - {total}, " line per ingredient.
func RenderShoppingList(totals []IngredientTotal) string {
	lines := make([]string, len(totals))
	for i, t := range totals {
		lines[i] = fmt.Sprintf("%s: (%s) - %d, ", t.Name, t.Unit, t.Total)
	}
	return strings.Join(lines, "\n")
}

func (s *CartService) findRecipe(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.First(&recipe, "id = ?", id).Error; err != nil {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}
