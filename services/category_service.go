package services

import (
	"errors"
	"time"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryServiceInterface interface {
	GetCategories(db *database.Database) ([]models.Category, error)
	CreateCategory(db *database.Database, category models.Category) (models.Category, error)
	UpdateCategory(db *database.Database, id string, updates map[string]interface{}) (models.Category, error)
	DeleteCategory(db *database.Database, id string) error
}

type CategoryService struct{}

func (s *CategoryService) GetCategories(db *database.Database) ([]models.Category, error) {
	var categories []models.Category
	if err := db.DB.Order("name ASC").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

func (s *CategoryService) CreateCategory(db *database.Database, category models.Category) (models.Category, error) {
	if category.Name == "" {
		return models.Category{}, ErrInvalidInput
	}

	var existing int64
	if err := db.DB.Model(&models.Category{}).Where("name = ?", category.Name).Count(&existing).Error; err != nil {
		return models.Category{}, err
	}
	if existing > 0 {
		return models.Category{}, ErrResourceExists
	}

	category.ID = uuid.New()
	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	if err := db.DB.Create(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

func (s *CategoryService) UpdateCategory(db *database.Database, id string, updates map[string]interface{}) (models.Category, error) {
	var category models.Category
	if err := db.DB.First(&category, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Category{}, ErrCategoryNotFound
		}
		return models.Category{}, err
	}

	if name, ok := updates["name"].(string); ok && name != "" {
		category.Name = name
	}
	if description, ok := updates["description"].(string); ok {
		category.Description = description
	}
	if color, ok := updates["color"].(string); ok {
		category.Color = color
	}
	if icon, ok := updates["icon"].(string); ok {
		category.Icon = icon
	}
	category.UpdatedAt = time.Now().UTC()

	if err := db.DB.Save(&category).Error; err != nil {
		return models.Category{}, err
	}
	return category, nil
}

// DeleteCategory removes a category and detaches it from any tasks that
// still reference it.
func (s *CategoryService) DeleteCategory(db *database.Database, id string) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var category models.Category
	if err := tx.First(&category, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	if err := tx.Model(&models.EnhancedTask{}).
		Where("category_id = ?", category.ID).
		Update("category_id", nil).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&category).Error; err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}

var CategoryServiceInstance CategoryServiceInterface = &CategoryService{}
