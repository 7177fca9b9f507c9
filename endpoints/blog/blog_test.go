package blog_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"git.sr.ht/~jkovac/booking-api/endpoints"
	"git.sr.ht/~jkovac/booking-api/kernel"
	"git.sr.ht/~jkovac/booking-api/middleware"
	"git.sr.ht/~jkovac/booking-api/models"
)

func setup(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:blog_%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	art := &kernel.AppRuntime{
		ServiceName: "booking-api-test",
		Context:     context.Background(),
		Diagnostic:  kernel.NewDiagnostic("booking-api-test"),
	}
	require.NoError(t, art.UseDatabase(db))

	r := gin.New()
	r.Use(middleware.LimitMiddleware())
	r.Use(middleware.TracerMiddleware(art))
	endpoints.RegisterRoutes(r, art)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createPost(t *testing.T, r *gin.Engine, title, content, category string) models.Blog {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/blogs", map[string]string{
		"title": title, "content": content, "category": category,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var post models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &post))
	return post
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	msg, _ := body["message"].(string)
	return msg
}

func TestCreateBlogValidation(t *testing.T) {
	r := setup(t)

	w := do(t, r, http.MethodPost, "/api/blogs", map[string]string{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, message(t, w), "title")
}

func TestCreateAndGetBlog(t *testing.T) {
	r := setup(t)

	post := createPost(t, r, "Hello", "first post", "life")
	assert.NotEmpty(t, post.ID)
	assert.False(t, post.CreatedAt.IsZero())
	assert.False(t, post.CreatedAt.After(time.Now().Add(time.Second)))

	w := do(t, r, http.MethodGet, "/api/blogs/"+post.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, post.ID, got.ID)
	assert.Equal(t, "Hello", got.Title)

	w = do(t, r, http.MethodGet, "/api/blogs/missing", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Blog not found", message(t, w))
}

func TestDeleteBlog(t *testing.T) {
	r := setup(t)

	post := createPost(t, r, "Gone", "soon", "")

	w := do(t, r, http.MethodDelete, "/api/blogs/"+post.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Blog deleted successfully", message(t, w))

	w = do(t, r, http.MethodDelete, "/api/blogs/"+post.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/blogs", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var all []models.Blog
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &all))
	assert.Empty(t, all)
}

func TestFilterBlogs(t *testing.T) {
	r := setup(t)

	createPost(t, r, "Rust in production", "ownership explained", "tech")
	createPost(t, r, "Gardening", "we grow RUSTY tools back to life", "tech")
	createPost(t, r, "Rust recipes", "cooking", "life")
	createPost(t, r, "Go tips", "generics", "tech")

	list := func(query string) []models.Blog {
		w := do(t, r, http.MethodGet, "/api/blogsfilter"+query, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		var out []models.Blog
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		return out
	}

	// category and search AND together; search is case-insensitive
	// over title and content
	both := list("?category=tech&search=rust")
	require.Len(t, both, 2)
	for _, p := range both {
		assert.Equal(t, "tech", p.Category)
	}

	assert.Len(t, list("?category=tech"), 3)
	assert.Len(t, list("?search=rust"), 3)
	assert.Len(t, list(""), 4)
	assert.Empty(t, list("?category=sports"))
}

func TestListPostCategories(t *testing.T) {
	r := setup(t)

	createPost(t, r, "a", "x", "tech")
	createPost(t, r, "b", "y", "tech")
	createPost(t, r, "c", "z", "life")
	createPost(t, r, "d", "w", "")

	w := do(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var cats []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cats))
	assert.ElementsMatch(t, []string{"tech", "life"}, cats)
}

func TestAddCategory(t *testing.T) {
	r := setup(t)

	w := do(t, r, http.MethodPost, "/add-category", map[string]string{"category": "tech"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Category added successfully", message(t, w))

	w = do(t, r, http.MethodPost, "/add-category", map[string]string{"category": "tech"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category already exists", message(t, w))

	w = do(t, r, http.MethodPost, "/add-category", map[string]string{"category": ""})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Category is required", message(t, w))

	w = do(t, r, http.MethodGet, "/api/getcategories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "tech", rows[0].Name)
	assert.NotEmpty(t, rows[0].ID)
}

// The two category listings are intentionally independent: an
// explicit category does not appear in the derived listing until a
// post uses it.
func TestCategoryListingsDiverge(t *testing.T) {
	r := setup(t)

	w := do(t, r, http.MethodPost, "/add-category", map[string]string{"category": "news"})
	require.Equal(t, http.StatusCreated, w.Code)
	createPost(t, r, "a", "x", "tech")

	w = do(t, r, http.MethodGet, "/api/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var derived []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &derived))
	assert.ElementsMatch(t, []string{"tech"}, derived)

	w = do(t, r, http.MethodGet, "/api/getcategories", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var rows []models.Category
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "news", rows[0].Name)
}
