package database

import (
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/models"
)

// Migrate brings the schema up to date for all application models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Ingredient{},
		&models.Tag{},
		&models.Recipe{},
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Follow{},
		&models.Favorite{},
		&models.CartItem{},
	)
}
