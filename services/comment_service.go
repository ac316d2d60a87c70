package services

import (
	"fmt"

	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/repositories"
	"github.com/inkpress/inkpress/utils"
)

// CommentPage is one page of active comments plus the total count of matching
// comments, independent of pagination, so clients can compute page counts.
type CommentPage struct {
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
	Total    int64            `json:"total"`
	Comments []models.Comment `json:"comments"`
}

// CommentService orchestrates validation, sanitization, authorization, and
// the soft-delete and edit semantics of comments. Concurrent edits of the
// same comment are intentionally uncoordinated: last writer wins.
type CommentService struct {
	comments repositories.CommentRepository
	blogs    repositories.BlogRepository
	minLen   int
	maxLen   int
}

// NewCommentService creates a CommentService with the given content length
// bounds, applied to bodies after sanitization.
func NewCommentService(comments repositories.CommentRepository, blogs repositories.BlogRepository, minLen, maxLen int) *CommentService {
	return &CommentService{
		comments: comments,
		blogs:    blogs,
		minLen:   minLen,
		maxLen:   maxLen,
	}
}

// List returns one page of active comments for a blog, newest first.
// Reads are public; no actor is required.
func (s *CommentService) List(blogID uint, page, limit int) (*CommentPage, error) {
	exists, err := s.blogs.ExistsByID(blogID)
	if err != nil {
		return nil, newStore("failed to check blog", err)
	}
	if !exists {
		return nil, newNotFound("blog")
	}

	comments, total, err := s.comments.FindPage(blogID, page, limit)
	if err != nil {
		return nil, newStore("failed to fetch comments", err)
	}

	return &CommentPage{
		Page:     repositories.NormalizePage(page),
		Limit:    repositories.NormalizeLimit(limit),
		Total:    total,
		Comments: comments,
	}, nil
}

// Create publishes a new comment by the actor on the given blog. The body is
// sanitized before length validation. parentID, when given, is stored as-is:
// it is not checked against the blog or for a deleted parent, matching the
// long-standing behavior clients rely on.
func (s *CommentService) Create(actor *Actor, blogID uint, body string, parentID *uint) (*models.Comment, error) {
	if actor == nil {
		return nil, newUnauthenticated()
	}

	content, err := s.cleanBody(body)
	if err != nil {
		return nil, err
	}

	exists, err := s.blogs.ExistsByID(blogID)
	if err != nil {
		return nil, newStore("failed to check blog", err)
	}
	if !exists {
		return nil, newNotFound("blog")
	}

	comment := &models.Comment{
		BlogID:      blogID,
		UserID:      actor.ID,
		AuthorName:  displayName(actor),
		AuthorEmail: actor.Email,
		Content:     content,
		ParentID:    parentID,
		Status:      models.CommentStatusPublished,
	}
	if err := s.comments.Insert(comment); err != nil {
		return nil, newStore("failed to create comment", err)
	}
	return comment, nil
}

// Edit replaces the body of an existing comment. Only the author or an admin
// may edit, and the same sanitization and length bounds as Create apply
// regardless of role. A soft-deleted comment can no longer be edited.
func (s *CommentService) Edit(actor *Actor, commentID uint, newBody string) (*models.Comment, error) {
	if actor == nil {
		return nil, newUnauthenticated()
	}

	content, err := s.cleanBody(newBody)
	if err != nil {
		return nil, err
	}

	comment, err := s.findComment(commentID)
	if err != nil {
		return nil, err
	}
	if !CanModify(actor, comment) {
		return nil, newForbidden()
	}
	if comment.IsDeleted {
		// The tombstone is terminal; a deleted comment acts as absent for edits.
		return nil, newNotFound("comment")
	}

	comment.Content = content
	comment.IsEdited = true
	if err := s.comments.Update(comment); err != nil {
		return nil, newStore("failed to update comment", err)
	}
	return comment, nil
}

// SoftDelete marks a comment deleted and replaces its body with the
// tombstone. The row is retained; active listings stop returning it.
// Deleting an already-deleted comment is a no-op success, so repeated calls
// can never corrupt the tombstone.
func (s *CommentService) SoftDelete(actor *Actor, commentID uint) error {
	if actor == nil {
		return newUnauthenticated()
	}

	comment, err := s.findComment(commentID)
	if err != nil {
		return err
	}
	if !CanModify(actor, comment) {
		return newForbidden()
	}
	if comment.IsDeleted {
		return nil
	}

	comment.IsDeleted = true
	comment.Content = models.TombstoneBody
	if err := s.comments.Update(comment); err != nil {
		return newStore("failed to delete comment", err)
	}
	return nil
}

func (s *CommentService) findComment(id uint) (*models.Comment, error) {
	comment, err := s.comments.FindByID(id)
	if err != nil {
		if err == repositories.ErrNotFound {
			return nil, newNotFound("comment")
		}
		return nil, newStore("failed to load comment", err)
	}
	return comment, nil
}

func (s *CommentService) cleanBody(body string) (string, error) {
	content := utils.SanitizeComment(body)
	if len([]rune(content)) < s.minLen || len([]rune(content)) > s.maxLen {
		return "", newValidation(fmt.Sprintf("comment must be between %d and %d characters", s.minLen, s.maxLen))
	}
	return content, nil
}

func displayName(actor *Actor) string {
	if actor.Name != "" {
		return actor.Name
	}
	if actor.Email != "" {
		return actor.Email
	}
	return "Anonymous"
}
