package blog

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	val "github.com/go-ozzo/ozzo-validation"

	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/models"
)

type CreateBlogDto struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Image    string `json:"image"`
	Category string `json:"category"`
}

func (dto CreateBlogDto) Validate() error {
	return val.ValidateStruct(&dto,
		val.Field(&dto.Title, val.Required),
		val.Field(&dto.Content, val.Required),
	)
}

func ListBlogs(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("blogs.list")

	blogs := make([]models.Blog, 0)
	if err := rt.DB.WithContext(rt.SpanContext).Find(&blogs).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, blogs)
	rt.StepBack()
}

// CreateBlog stores a post and echoes it back with the generated id
// and createdAt.
func CreateBlog(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("blogs.create")

	var dto CreateBlogDto
	if !rt.BindJSON(&dto) {
		return
	}
	if err := dto.Validate(); err != nil {
		rt.E(http.StatusBadRequest, err)
		return
	}

	id, err := kernel.UuidV7()
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	post := models.Blog{
		ID:       id,
		Title:    dto.Title,
		Content:  dto.Content,
		Image:    dto.Image,
		Category: dto.Category,
	}
	if err := rt.DB.WithContext(rt.SpanContext).Create(&post).Error; err != nil {
		rt.Ef(http.StatusBadRequest, "could not save blog: %v", err)
		return
	}

	c.JSON(http.StatusCreated, post)
	rt.StepBack()
}

func GetBlog(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("blogs.get")

	var post models.Blog
	found, err := rt.First(&post, "id = ?", c.Param("id"))
	if err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if !found {
		rt.Ef(http.StatusNotFound, "Blog not found")
		return
	}

	c.JSON(http.StatusOK, post)
	rt.StepBack()
}

func DeleteBlog(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("blogs.delete")

	res := rt.DB.WithContext(rt.SpanContext).Delete(&models.Blog{}, "id = ?", c.Param("id"))
	if res.Error != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}
	if res.RowsAffected == 0 {
		rt.Ef(http.StatusNotFound, "Blog not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Blog deleted successfully"})
	rt.StepBack()
}

// FilterBlogs narrows the listing by exact category and/or a
// case-insensitive substring over title and content. Both filters
// AND together when supplied.
func FilterBlogs(c *gin.Context) {
	rt := c.MustGet("rt").(*kernel.RequestRuntime)
	rt.StepInto("blogs.filter")

	tx := rt.DB.WithContext(rt.SpanContext)
	if category := c.Query("category"); category != "" {
		tx = tx.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		tx = tx.Where("LOWER(title) LIKE ? OR LOWER(content) LIKE ?", pattern, pattern)
	}

	blogs := make([]models.Blog, 0)
	if err := tx.Find(&blogs).Error; err != nil {
		rt.Ef(http.StatusInternalServerError, "Server error")
		return
	}

	c.JSON(http.StatusOK, blogs)
	rt.StepBack()
}
