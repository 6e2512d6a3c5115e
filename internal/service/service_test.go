package service

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram-go/backend/internal/database"
	"github.com/foodgram-go/backend/internal/models"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func testUser(t *testing.T, db *gorm.DB, email, username string) *models.User {
	t.Helper()
	user := models.User{
		Email:        email,
		Username:     username,
		PasswordHash: "not a real hash",
		Role:         models.RoleUser,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func testIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing := models.Ingredient{Name: name, MeasurementUnit: unit}
	require.NoError(t, db.Create(&ing).Error)
	return &ing
}

func testRecipe(t *testing.T, db *gorm.DB, author *models.User, name string, amounts map[*models.Ingredient]int) *models.Recipe {
	t.Helper()
	recipe := models.Recipe{
		AuthorID:    author.ID,
		Name:        name,
		Text:        "Cook it.",
		ImageURL:    "https://example.com/img.jpg",
		CookingTime: 10,
	}
	require.NoError(t, db.Create(&recipe).Error)
	for ing, amount := range amounts {
		link := models.RecipeIngredient{RecipeID: recipe.ID, IngredientID: ing.ID, Amount: amount}
		require.NoError(t, db.Create(&link).Error)
	}
	return &recipe
}
