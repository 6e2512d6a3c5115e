package service

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram-go/backend/internal/models"
)

// IngredientService serves ingredient and tag reference data
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns ingredients, optionally filtered with a
// case-insensitive substring match on the name. No pagination.
func (s *IngredientService) ListIngredients(nameFilter string) ([]models.Ingredient, error) {
	query := s.db.Model(&models.Ingredient{}).Order("name")
	if nameFilter != "" {
		like := "%" + strings.ToLower(nameFilter) + "%"
		query = query.Where("LOWER(name) LIKE ?", like)
	}

	var ingredients []models.Ingredient
	err := query.Find(&ingredients).Error
	return ingredients, err
}

// GetIngredient retrieves one ingredient by id
func (s *IngredientService) GetIngredient(id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.First(&ingredient, "id = ?", id).Error; err != nil {
		return nil, ErrIngredientNotFound
	}
	return &ingredient, nil
}

// ListTags returns all tags ordered by slug
func (s *IngredientService) ListTags() ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.Order("slug").Find(&tags).Error
	return tags, err
}

// GetTag retrieves one tag by id
func (s *IngredientService) GetTag(id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.First(&tag, "id = ?", id).Error; err != nil {
		return nil, ErrTagNotFound
	}
	return &tag, nil
}

// LoadIngredientsCSV replaces the ingredient reference data with rows from
// a "name,unit" CSV stream. Returns the number of rows loaded.
func (s *IngredientService) LoadIngredientsCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var ingredients []models.Ingredient
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse ingredients CSV: %w", err)
		}
		ingredients = append(ingredients, models.Ingredient{
			Name:            strings.TrimSpace(record[0]),
			MeasurementUnit: strings.TrimSpace(record[1]),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		if len(ingredients) == 0 {
			return nil
		}
		return tx.CreateInBatches(ingredients, 500).Error
	})
	if err != nil {
		return 0, err
	}
	return len(ingredients), nil
}

// LoadTagsCSV replaces the tag reference data with rows from a
// "name,color,slug" CSV stream. Returns the number of rows loaded.
func (s *IngredientService) LoadTagsCSV(r io.Reader) (int, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 3

	var tags []models.Tag
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, fmt.Errorf("failed to parse tags CSV: %w", err)
		}
		tags = append(tags, models.Tag{
			Name:  strings.TrimSpace(record[0]),
			Color: strings.TrimSpace(record[1]),
			Slug:  strings.TrimSpace(record[2]),
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Tag{}).Error; err != nil {
			return err
		}
		if len(tags) == 0 {
			return nil
		}
		return tx.Create(&tags).Error
	})
	if err != nil {
		return 0, err
	}
	return len(tags), nil
}
