package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID          uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
	AuthorID    uuid.UUID      `gorm:"type:varchar(36);not null;index" json:"author_id"`
	Author      *User          `gorm:"foreignKey:AuthorID" json:"-"`
	Name        string         `gorm:"size:200;not null" json:"name"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	ImageURL    string         `gorm:"size:255" json:"image"`
	CookingTime int            `gorm:"not null;check:cooking_time > 0" json:"cooking_time"`
	PublishedAt time.Time      `gorm:"not null;index" json:"published_at"`

	Ingredients []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"-"`
	Tags        []RecipeTag        `gorm:"foreignKey:RecipeID" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.PublishedAt.IsZero() {
		r.PublishedAt = time.Now()
	}
	return nil
}

// RecipeIngredient links a recipe to an ingredient with an amount.
// One row per (recipe, ingredient) pair.
type RecipeIngredient struct {
	ID           uuid.UUID   `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID   `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   *Ingredient `gorm:"foreignKey:IngredientID" json:"-"`
	Amount       int         `gorm:"not null;check:amount > 0" json:"amount"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}

func (RecipeIngredient) TableName() string {
	return "recipe_ingredients"
}

type RecipeTag struct {
	ID       uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tag" json:"recipe_id"`
	TagID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_tag" json:"tag_id"`
	Tag      *Tag      `gorm:"foreignKey:TagID" json:"-"`
}

func (rt *RecipeTag) BeforeCreate(tx *gorm.DB) error {
	if rt.ID == uuid.Nil {
		rt.ID = uuid.New()
	}
	return nil
}

func (RecipeTag) TableName() string {
	return "recipe_tags"
}
