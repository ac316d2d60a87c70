package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/repositories/mock"
	"github.com/inkpress/inkpress/services"
)

// commentTestEnv wires the comment controller over in-memory repositories.
// asUser builds an engine whose requests carry the given actor, standing in
// for the JWT middleware so handler tests don't need a live token.
type commentTestEnv struct {
	blogs      *mock.BlogRepository
	controller *CommentController
}

func newCommentTestEnv(t *testing.T) *commentTestEnv {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	gin.SetMode(gin.TestMode)

	comments := mock.NewCommentRepository()
	blogs := mock.NewBlogRepository()
	service := services.NewCommentService(comments, blogs, 1, 1000)
	return &commentTestEnv{
		blogs:      blogs,
		controller: NewCommentController(service),
	}
}

func (env *commentTestEnv) asUser(actor *services.Actor) *gin.Engine {
	r := gin.New()
	r.Use(func(ctx *gin.Context) {
		if actor != nil {
			ctx.Set(middleware.ContextActorKey, actor)
		}
		ctx.Next()
	})
	r.GET("/api/v1/blogs/:id/comments", env.controller.List)
	r.POST("/api/v1/blogs/:id/comments", env.controller.Create)
	r.PUT("/api/v1/comments/:commentId", env.controller.Update)
	r.DELETE("/api/v1/comments/:commentId", env.controller.Delete)
	return r
}

func doJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCommentRoutesStatusMapping(t *testing.T) {
	author := &services.Actor{ID: 1, Role: models.RoleUser, Name: "Ada", Email: "ada@example.com"}
	stranger := &services.Actor{ID: 2, Role: models.RoleUser, Name: "Sam", Email: "sam@example.com"}

	t.Run("list unknown blog is 404", func(t *testing.T) {
		env := newCommentTestEnv(t)
		w := doJSON(env.asUser(nil), http.MethodGet, "/api/v1/blogs/99/comments", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("invalid blog id is 400", func(t *testing.T) {
		env := newCommentTestEnv(t)
		w := doJSON(env.asUser(nil), http.MethodGet, "/api/v1/blogs/abc/comments", "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("list is public and echoes normalized paging", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})

		w := doJSON(env.asUser(nil), http.MethodGet, "/api/v1/blogs/1/comments?page=-3&limit=999", "")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Data services.CommentPage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, 1, resp.Data.Page)
		assert.Equal(t, 50, resp.Data.Limit)
		assert.Equal(t, int64(0), resp.Data.Total)
	})

	t.Run("create without actor is 401", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})

		w := doJSON(env.asUser(nil), http.MethodPost, "/api/v1/blogs/1/comments", `{"content":"hello"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("create with empty-after-sanitize body is 400", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})

		w := doJSON(env.asUser(author), http.MethodPost, "/api/v1/blogs/1/comments", `{"content":"<script>"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "between 1 and 1000")
	})

	t.Run("create succeeds and returns the comment", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})

		w := doJSON(env.asUser(author), http.MethodPost, "/api/v1/blogs/1/comments", `{"content":"Great post!"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "comment added")
		assert.Contains(t, w.Body.String(), "Great post!")
	})

	t.Run("edit by another user is 403, by author is 200", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})
		w := doJSON(env.asUser(author), http.MethodPost, "/api/v1/blogs/1/comments", `{"content":"mine"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(env.asUser(stranger), http.MethodPut, "/api/v1/comments/1", `{"content":"hijacked"}`)
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(env.asUser(author), http.MethodPut, "/api/v1/comments/1", `{"content":"mine, revised"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mine, revised")
	})

	t.Run("delete by stranger is 403, by author is 200", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})
		w := doJSON(env.asUser(author), http.MethodPost, "/api/v1/blogs/1/comments", `{"content":"mine"}`)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(env.asUser(stranger), http.MethodDelete, "/api/v1/comments/1", "")
		assert.Equal(t, http.StatusForbidden, w.Code)

		w = doJSON(env.asUser(author), http.MethodDelete, "/api/v1/comments/1", "")
		assert.Equal(t, http.StatusOK, w.Code)

		// Deleted comments drop out of the listing.
		w = doJSON(env.asUser(nil), http.MethodGet, "/api/v1/blogs/1/comments", "")
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Data services.CommentPage `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(0), resp.Data.Total)
	})

	t.Run("edit and delete unknown comment is 404", func(t *testing.T) {
		env := newCommentTestEnv(t)
		w := doJSON(env.asUser(author), http.MethodPut, "/api/v1/comments/123", `{"content":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)

		w = doJSON(env.asUser(author), http.MethodDelete, "/api/v1/comments/123", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("missing content field is 400", func(t *testing.T) {
		env := newCommentTestEnv(t)
		env.blogs.Create(&models.Blog{Title: "t", Content: "c"})

		w := doJSON(env.asUser(author), http.MethodPost, "/api/v1/blogs/1/comments", `{}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
