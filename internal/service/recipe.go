package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/models"
)

// RecipeService handles recipe CRUD including ingredient and tag links
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// IngredientAmount pairs an ingredient id with its amount in a recipe
type IngredientAmount struct {
	ID     uuid.UUID
	Amount int
}

// CreateRecipeInput carries the validated fields of a create request
type CreateRecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	ImageURL    string
	Ingredients []IngredientAmount
	Tags        []uuid.UUID
}

// UpdateRecipeInput carries a partial update; nil fields keep prior values.
// A non-nil Ingredients or Tags slice replaces the whole link set.
type UpdateRecipeInput struct {
	Name        *string
	Text        *string
	CookingTime *int
	ImageURL    *string
	Ingredients *[]IngredientAmount
	Tags        *[]uuid.UUID
}

// RecipeFilter narrows ListRecipes results
type RecipeFilter struct {
	AuthorUsername string
	TagSlugs       []string
	FavoritedBy    uuid.UUID // uuid.Nil disables the filter
	InCartOf       uuid.UUID
	Page           int
	Limit          int
}

// CreateRecipe validates the ingredient and tag sets and persists the
// recipe together with its link rows in one transaction.
func (s *RecipeService) CreateRecipe(authorID uuid.UUID, input CreateRecipeInput) (*models.Recipe, error) {
	if err := s.validateLinks(input.Ingredients, input.Tags); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        input.Name,
		Text:        input.Text,
		CookingTime: input.CookingTime,
		ImageURL:    input.ImageURL,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		return insertLinks(tx, recipe.ID, input.Ingredients, input.Tags)
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(recipe.ID)
}

// GetRecipe retrieves a recipe with its ingredient and tag links
func (s *RecipeService) GetRecipe(id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		return nil, ErrRecipeNotFound
	}
	return &recipe, nil
}

// ListRecipes returns a page of recipes, newest first, plus the total
// count of recipes matching the filter
func (s *RecipeService) ListRecipes(filter RecipeFilter) ([]models.Recipe, int64, error) {
	var total int64
	countQuery := s.filtered(filter)
	if len(filter.TagSlugs) > 0 {
		countQuery = countQuery.Distinct("recipes.id")
	}
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := s.filtered(filter).
		Preload("Author").
		Preload("Ingredients.Ingredient").
		Preload("Tags.Tag")
	if len(filter.TagSlugs) > 0 {
		query = query.Distinct("recipes.*")
	}

	page, limit := filter.Page, filter.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 6
	}

	var recipes []models.Recipe
	err := query.Order("recipes.published_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&recipes).Error
	return recipes, total, err
}

// filtered builds the recipe query with the filter's joins applied
func (s *RecipeService) filtered(filter RecipeFilter) *gorm.DB {
	query := s.db.Model(&models.Recipe{})

	if filter.AuthorUsername != "" {
		query = query.Joins("JOIN users ON users.id = recipes.author_id").
			Where("users.username = ?", filter.AuthorUsername)
	}
	if len(filter.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.FavoritedBy != uuid.Nil {
		query = query.Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
			Where("favorites.user_id = ?", filter.FavoritedBy)
	}
	if filter.InCartOf != uuid.Nil {
		query = query.Joins("JOIN cart_items ON cart_items.recipe_id = recipes.id").
			Where("cart_items.user_id = ?", filter.InCartOf)
	}
	return query
}

// UpdateRecipe applies a partial update. Only the author may modify a
// recipe; a present ingredient or tag set replaces the stored one wholesale.
func (s *RecipeService) UpdateRecipe(userID, recipeID uuid.UUID, input UpdateRecipeInput) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	if input.Ingredients != nil || input.Tags != nil {
		ingredients := linkAmounts(recipe.Ingredients)
		if input.Ingredients != nil {
			ingredients = *input.Ingredients
		}
		tags := linkTagIDs(recipe.Tags)
		if input.Tags != nil {
			tags = *input.Tags
		}
		if err := s.validateLinks(ingredients, tags); err != nil {
			return nil, err
		}
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Text != nil {
			updates["text"] = *input.Text
		}
		if input.CookingTime != nil {
			updates["cooking_time"] = *input.CookingTime
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if len(updates) > 0 {
			if err := tx.Model(&models.Recipe{}).Where("id = ?", recipeID).Updates(updates).Error; err != nil {
				return err
			}
		}

		if input.Ingredients != nil {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
				return err
			}
			if err := insertIngredientLinks(tx, recipeID, *input.Ingredients); err != nil {
				return err
			}
		}
		if input.Tags != nil {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
				return err
			}
			if err := insertTagLinks(tx, recipeID, *input.Tags); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(recipeID)
}

// DeleteRecipe removes a recipe and its link rows. Author only.
func (s *RecipeService) DeleteRecipe(userID, recipeID uuid.UUID) error {
	recipe, err := s.GetRecipe(recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != userID {
		return ErrNotAuthor
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.RecipeIngredient{},
			&models.RecipeTag{},
			&models.Favorite{},
			&models.CartItem{},
		} {
			if err := tx.Where("recipe_id = ?", recipeID).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.Recipe{}, "id = ?", recipeID).Error
	})
}

// validateLinks enforces the recipe link invariants: at least one
// ingredient, no duplicate ingredients or tags, all referenced ids known.
func (s *RecipeService) validateLinks(ingredients []IngredientAmount, tags []uuid.UUID) error {
	if len(ingredients) == 0 {
		return ErrNoIngredients
	}

	seen := make(map[uuid.UUID]struct{}, len(ingredients))
	for _, ing := range ingredients {
		if _, dup := seen[ing.ID]; dup {
			return ErrDuplicateIngredient
		}
		seen[ing.ID] = struct{}{}
		if ing.Amount <= 0 {
			return ErrInvalidAmount
		}
	}

	ids := make([]uuid.UUID, 0, len(ingredients))
	for _, ing := range ingredients {
		ids = append(ids, ing.ID)
	}
	var count int64
	if err := s.db.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if int(count) != len(ids) {
		return ErrIngredientNotFound
	}

	seenTags := make(map[uuid.UUID]struct{}, len(tags))
	for _, tagID := range tags {
		if _, dup := seenTags[tagID]; dup {
			return ErrDuplicateTag
		}
		seenTags[tagID] = struct{}{}
	}
	if len(tags) > 0 {
		if err := s.db.Model(&models.Tag{}).Where("id IN ?", tags).Count(&count).Error; err != nil {
			return err
		}
		if int(count) != len(tags) {
			return ErrTagNotFound
		}
	}

	return nil
}

func insertLinks(tx *gorm.DB, recipeID uuid.UUID, ingredients []IngredientAmount, tags []uuid.UUID) error {
	if err := insertIngredientLinks(tx, recipeID, ingredients); err != nil {
		return err
	}
	return insertTagLinks(tx, recipeID, tags)
}

func insertIngredientLinks(tx *gorm.DB, recipeID uuid.UUID, ingredients []IngredientAmount) error {
	for _, ing := range ingredients {
		link := models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ing.ID,
			Amount:       ing.Amount,
		}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func insertTagLinks(tx *gorm.DB, recipeID uuid.UUID, tags []uuid.UUID) error {
	for _, tagID := range tags {
		link := models.RecipeTag{RecipeID: recipeID, TagID: tagID}
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
	}
	return nil
}

func linkAmounts(links []models.RecipeIngredient) []IngredientAmount {
	out := make([]IngredientAmount, len(links))
	for i, l := range links {
		out[i] = IngredientAmount{ID: l.IngredientID, Amount: l.Amount}
	}
	return out
}

func linkTagIDs(links []models.RecipeTag) []uuid.UUID {
	out := make([]uuid.UUID, len(links))
	for i, l := range links {
		out[i] = l.TagID
	}
	return out
}
