package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Pagination bounds for comment listings.
const (
	DefaultPageLimit = 10
	MaxPageLimit     = 50
)

// NormalizePage floors the 1-indexed page number at 1.
func NormalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

// NormalizeLimit clamps the page size to [1, MaxPageLimit], defaulting when unset.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageLimit
	}
	if limit > MaxPageLimit {
		return MaxPageLimit
	}
	return limit
}

// CommentRepository is the typed access layer for comments. Callers never see
// the underlying database handle.
type CommentRepository interface {
	// FindPage returns one page of active (non-deleted, published) comments
	// for a blog, newest first, plus the total count of matching comments
	// independent of pagination.
	FindPage(blogID uint, page, limit int) ([]models.Comment, int64, error)
	FindByID(id uint) (*models.Comment, error)
	Insert(comment *models.Comment) error
	Update(comment *models.Comment) error
}

type commentRepository struct {
	db *gorm.DB
}

// NewCommentRepository creates a gorm-backed CommentRepository.
func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) FindPage(blogID uint, page, limit int) ([]models.Comment, int64, error) {
	page = NormalizePage(page)
	limit = NormalizeLimit(limit)

	active := r.db.Model(&models.Comment{}).
		Where("blog_id = ? AND is_deleted = ? AND status = ?", blogID, false, models.CommentStatusPublished)

	var total int64
	if err := active.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var comments []models.Comment
	err := active.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) FindByID(id uint) (*models.Comment, error) {
	var comment models.Comment
	if err := r.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &comment, nil
}

func (r *commentRepository) Insert(comment *models.Comment) error {
	return r.db.Create(comment).Error
}

func (r *commentRepository) Update(comment *models.Comment) error {
	return r.db.Save(comment).Error
}
