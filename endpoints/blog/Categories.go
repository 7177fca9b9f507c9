package blog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/models"
)

type AddCategoryDto struct {
	Category string `json:"category"`
}

// ListPostCategories derives the category list from the posts: the
// distinct non-empty category values, duplicates collapsed.
func ListPostCategories(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("categories.from_posts")

	categories := make([]string, 0)
	if err := rt.DB.WithContext(rt.SpanContext).
		Model(&models.Blog{}).
		Where("category <> ''").
		Distinct().
		Pluck("category", &categories).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, categories)
	rt.StepBack()
}

func AddCategory(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("categories.add")

	var dto AddCategoryDto
	if !rt.BindJSON(&dto) {
		return
	}
	if dto.Category == "" {
		rt.Ef(http.StatusBadRequest, "Category is required")
		return
	}

	var existing models.Category
	found, err := rt.First(&existing, "name = ?", dto.Category)
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Internal server error")
		return
	}
	if found {
		rt.Ef(http.StatusBadRequest, "Category already exists")
		return
	}

	id, err := kernel.UuidV7()
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Internal server error")
		return
	}

	category := models.Category{ID: id, Name: dto.Category}
	if err := rt.DB.WithContext(rt.SpanContext).Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Ef(http.StatusBadRequest, "Category already exists")
			return
		}
		rt.Ef(http.StatusInternalServerError, "Internal server error")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully"})
	rt.StepBack()
}

// ListCategories returns the explicit Category rows, independent of
// what the posts reference.
func ListCategories(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("categories.list")

	categories := make([]models.Category, 0)
	if err := rt.DB.WithContext(rt.SpanContext).Find(&categories).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, categories)
	rt.StepBack()
}
