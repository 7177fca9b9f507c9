package blog

import (
	"github.com/gin-gonic/gin"
)

// RegisterController wires the blog catalog and both category
// listings. /api/categories derives categories from the posts
// themselves; /api/getcategories reads the explicit Category table.
// The two can disagree and the frontend relies on both.
func RegisterController(r *gin.Engine) {
	r.GET("/api/blogs", ListBlogs)
	r.POST("/api/blogs", CreateBlog)
	r.GET("/api/blogs/:id", GetBlog)
	r.DELETE("/api/blogs/:id", DeleteBlog)
	r.GET("/api/blogsfilter", FilterBlogs)

	r.GET("/api/categories", ListPostCategories)
	r.POST("/add-category", AddCategory)
	r.GET("/api/getcategories", ListCategories)
}
