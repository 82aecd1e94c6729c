package routes

import (
	"errors"
	"net/http"

	"taskflow-app/taskflow/database"
	"taskflow-app/taskflow/models"
	"taskflow-app/taskflow/services"
	"taskflow-app/taskflow/utils/validation"

	"github.com/gin-gonic/gin"
)

type CategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description" validate:"max=500"`
	Color       string `json:"color" validate:"max=20"`
	Icon        string `json:"icon" validate:"max=50"`
}

func RegisterCategoryRoutes(group *gin.RouterGroup, db *database.Database, service services.CategoryServiceInterface) {
	group.GET("/categories", func(c *gin.Context) { GetCategories(c, db, service) })
	group.POST("/categories", func(c *gin.Context) { CreateCategory(c, db, service) })
	group.PATCH("/categories/:id", func(c *gin.Context) { UpdateCategory(c, db, service) })
	group.DELETE("/categories/:id", func(c *gin.Context) { DeleteCategory(c, db, service) })
}

func GetCategories(c *gin.Context, db *database.Database, service services.CategoryServiceInterface) {
	categories, err := service.GetCategories(db)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func CreateCategory(c *gin.Context, db *database.Database, service services.CategoryServiceInterface) {
	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if fieldErrors := validation.Check(req); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": fieldErrors})
		return
	}

	category, err := service.CreateCategory(db, models.Category{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
	})
	if err != nil {
		if errors.Is(err, services.ErrResourceExists) {
			c.JSON(http.StatusConflict, gin.H{"error": "Category already exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func UpdateCategory(c *gin.Context, db *database.Database, service services.CategoryServiceInterface) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	category, err := service.UpdateCategory(db, c.Param("id"), updates)
	if err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

func DeleteCategory(c *gin.Context, db *database.Database, service services.CategoryServiceInterface) {
	if err := service.DeleteCategory(db, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrCategoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusNoContent, gin.H{})
}
