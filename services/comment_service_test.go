package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/repositories/mock"
)

func newTestService() (*CommentService, *mock.CommentRepository, *mock.BlogRepository) {
	comments := mock.NewCommentRepository()
	blogs := mock.NewBlogRepository()
	return NewCommentService(comments, blogs, 1, 1000), comments, blogs
}

func seedBlog(blogs *mock.BlogRepository) uint {
	blog := &models.Blog{Title: "First Post", Content: "hello"}
	blogs.Create(blog)
	return blog.ID
}

func TestCommentServiceList(t *testing.T) {
	t.Run("unknown blog", func(t *testing.T) {
		service, _, _ := newTestService()
		_, err := service.List(42, 1, 10)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("empty blog returns empty page", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		page, err := service.List(blogID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 10, page.Limit)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Comments)
	})

	t.Run("pagination is clamped", func(t *testing.T) {
		service, comments, blogs := newTestService()
		blogID := seedBlog(blogs)

		base := time.Now()
		for i := 0; i < 60; i++ {
			require.NoError(t, comments.Insert(&models.Comment{
				BlogID:    blogID,
				UserID:    1,
				Content:   "c",
				Status:    models.CommentStatusPublished,
				CreatedAt: base.Add(time.Duration(i) * time.Millisecond),
			}))
		}

		page, err := service.List(blogID, 0, 500)
		require.NoError(t, err)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, 50, page.Limit)
		assert.Equal(t, int64(60), page.Total)
		assert.Len(t, page.Comments, 50)
	})

	t.Run("newest first and total independent of page", func(t *testing.T) {
		service, comments, blogs := newTestService()
		blogID := seedBlog(blogs)

		base := time.Now()
		for i := 0; i < 5; i++ {
			require.NoError(t, comments.Insert(&models.Comment{
				BlogID:    blogID,
				UserID:    1,
				Content:   "c",
				Status:    models.CommentStatusPublished,
				CreatedAt: base.Add(time.Duration(i) * time.Second),
			}))
		}

		page, err := service.List(blogID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, int64(5), page.Total)
		require.Len(t, page.Comments, 2)
		assert.True(t, page.Comments[0].CreatedAt.After(page.Comments[1].CreatedAt))
	})

	t.Run("store failure is opaque", func(t *testing.T) {
		service, comments, blogs := newTestService()
		seedBlog(blogs)
		comments.FailWith = errors.New("connection refused")

		_, err := service.List(1, 1, 10)
		assert.True(t, IsKind(err, KindStore))
	})
}

func TestCommentServiceCreate(t *testing.T) {
	actor := &Actor{ID: 7, Role: models.RoleUser, Name: "Ada", Email: "ada@example.com"}

	t.Run("requires authentication", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		_, err := service.Create(nil, blogID, "hi there", nil)
		assert.True(t, IsKind(err, KindUnauthenticated))
	})

	t.Run("success", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		comment, err := service.Create(actor, blogID, "  Great post! ", nil)
		require.NoError(t, err)
		assert.Equal(t, "Great post!", comment.Content)
		assert.Equal(t, blogID, comment.BlogID)
		assert.Equal(t, actor.ID, comment.UserID)
		assert.Equal(t, "Ada", comment.AuthorName)
		assert.Equal(t, "ada@example.com", comment.AuthorEmail)
		assert.Equal(t, models.CommentStatusPublished, comment.Status)
		assert.False(t, comment.IsEdited)
		assert.False(t, comment.IsDeleted)
		assert.Nil(t, comment.ParentID)
	})

	t.Run("body is sanitized before validation", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		comment, err := service.Create(actor, blogID, "<b>hi</b>  ", nil)
		require.NoError(t, err)
		assert.Equal(t, "hi", comment.Content)

		_, err = service.Create(actor, blogID, "<script>", nil)
		assert.True(t, IsKind(err, KindValidation))
	})

	t.Run("length bounds", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		_, err := service.Create(actor, blogID, "   ", nil)
		assert.True(t, IsKind(err, KindValidation))

		long := make([]byte, 1001)
		for i := range long {
			long[i] = 'a'
		}
		_, err = service.Create(actor, blogID, string(long), nil)
		assert.True(t, IsKind(err, KindValidation))

		// Exactly at the bound is accepted.
		_, err = service.Create(actor, blogID, string(long[:1000]), nil)
		assert.NoError(t, err)
	})

	t.Run("unknown blog", func(t *testing.T) {
		service, _, _ := newTestService()
		_, err := service.Create(actor, 999, "hello", nil)
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("display name falls back to email then Anonymous", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		c1, err := service.Create(&Actor{ID: 1, Email: "no-name@example.com"}, blogID, "hi", nil)
		require.NoError(t, err)
		assert.Equal(t, "no-name@example.com", c1.AuthorName)

		c2, err := service.Create(&Actor{ID: 2}, blogID, "hi", nil)
		require.NoError(t, err)
		assert.Equal(t, "Anonymous", c2.AuthorName)
	})

	t.Run("parent id is stored as given", func(t *testing.T) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)

		parent := uint(12345) // deliberately unchecked
		comment, err := service.Create(actor, blogID, "a reply", &parent)
		require.NoError(t, err)
		require.NotNil(t, comment.ParentID)
		assert.Equal(t, parent, *comment.ParentID)
	})
}

func TestCommentServiceEdit(t *testing.T) {
	author := &Actor{ID: 7, Role: models.RoleUser, Name: "Ada"}
	stranger := &Actor{ID: 8, Role: models.RoleUser, Name: "Eve"}
	admin := &Actor{ID: 9, Role: models.RoleAdmin, Name: "Root"}

	setup := func(t *testing.T) (*CommentService, uint) {
		service, _, blogs := newTestService()
		blogID := seedBlog(blogs)
		comment, err := service.Create(author, blogID, "Great post!", nil)
		require.NoError(t, err)
		return service, comment.ID
	}

	t.Run("requires authentication", func(t *testing.T) {
		service, id := setup(t)
		_, err := service.Edit(nil, id, "updated")
		assert.True(t, IsKind(err, KindUnauthenticated))
	})

	t.Run("unknown comment", func(t *testing.T) {
		service, _ := setup(t)
		_, err := service.Edit(author, 999, "updated")
		assert.True(t, IsKind(err, KindNotFound))
	})

	t.Run("author can edit", func(t *testing.T) {
		service, id := setup(t)
		comment, err := service.Edit(author, id, "Great post, thanks!")
		require.NoError(t, err)
		assert.Equal(t, "Great post, thanks!", comment.Content)
		assert.True(t, comment.IsEdited)
	})

	t.Run("admin can edit but validation still applies", func(t *testing.T) {
		service, id := setup(t)

		comment, err := service.Edit(admin, id, "moderated")
		require.NoError(t, err)
		assert.True(t, comment.IsEdited)

		_, err = service.Edit(admin, id, "<script>")
		assert.True(t, IsKind(err, KindValidation))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		service, id := setup(t)
		_, err := service.Edit(stranger, id, "hijacked")
		assert.True(t, IsKind(err, KindForbidden))
	})

	t.Run("deleted comment cannot be edited", func(t *testing.T) {
		service, id := setup(t)
		require.NoError(t, service.SoftDelete(author, id))

		_, err := service.Edit(author, id, "resurrect")
		assert.True(t, IsKind(err, KindNotFound))
	})
}

func TestCommentServiceSoftDelete(t *testing.T) {
	author := &Actor{ID: 7, Role: models.RoleUser, Name: "Ada"}
	stranger := &Actor{ID: 8, Role: models.RoleUser, Name: "Eve"}
	admin := &Actor{ID: 9, Role: models.RoleAdmin, Name: "Root"}

	setup := func(t *testing.T) (*CommentService, *mock.CommentRepository, uint, uint) {
		service, comments, blogs := newTestService()
		blogID := seedBlog(blogs)
		comment, err := service.Create(author, blogID, "Great post!", nil)
		require.NoError(t, err)
		return service, comments, blogID, comment.ID
	}

	t.Run("requires authentication", func(t *testing.T) {
		service, _, _, id := setup(t)
		assert.True(t, IsKind(service.SoftDelete(nil, id), KindUnauthenticated))
	})

	t.Run("stranger is forbidden", func(t *testing.T) {
		service, _, _, id := setup(t)
		assert.True(t, IsKind(service.SoftDelete(stranger, id), KindForbidden))
	})

	t.Run("tombstone replaces body and listing hides the row", func(t *testing.T) {
		service, comments, blogID, id := setup(t)

		require.NoError(t, service.SoftDelete(author, id))

		stored, err := comments.FindByID(id)
		require.NoError(t, err)
		assert.True(t, stored.IsDeleted)
		assert.Equal(t, models.TombstoneBody, stored.Content)
		assert.False(t, stored.IsEdited)

		page, err := service.List(blogID, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, int64(0), page.Total)
		assert.Empty(t, page.Comments)
	})

	t.Run("repeat delete is a no-op success", func(t *testing.T) {
		service, comments, _, id := setup(t)

		require.NoError(t, service.SoftDelete(author, id))
		require.NoError(t, service.SoftDelete(author, id))
		require.NoError(t, service.SoftDelete(admin, id))

		stored, err := comments.FindByID(id)
		require.NoError(t, err)
		assert.Equal(t, models.TombstoneBody, stored.Content)
	})

	t.Run("unknown comment", func(t *testing.T) {
		service, _, _, _ := setup(t)
		assert.True(t, IsKind(service.SoftDelete(author, 999), KindNotFound))
	})
}

// Full lifecycle: empty listing, create, edit, forbidden delete, delete, empty again.
func TestCommentLifecycle(t *testing.T) {
	service, _, blogs := newTestService()
	blogID := seedBlog(blogs)

	userX := &Actor{ID: 1, Role: models.RoleUser, Name: "X"}
	other := &Actor{ID: 2, Role: models.RoleUser, Name: "Y"}

	page, err := service.List(blogID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)

	comment, err := service.Create(userX, blogID, "Great post!", nil)
	require.NoError(t, err)
	assert.False(t, comment.IsEdited)
	assert.False(t, comment.IsDeleted)

	edited, err := service.Edit(userX, comment.ID, "Great post, thanks!")
	require.NoError(t, err)
	assert.True(t, edited.IsEdited)

	assert.True(t, IsKind(service.SoftDelete(other, comment.ID), KindForbidden))
	require.NoError(t, service.SoftDelete(userX, comment.ID))

	page, err = service.List(blogID, 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), page.Total)
}
