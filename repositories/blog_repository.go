package repositories

import (
	"errors"

	"gorm.io/gorm"

	"github.com/inkpress/inkpress/models"
)

// BlogRepository provides the blog lookups the comment layer depends on.
type BlogRepository interface {
	ExistsByID(id uint) (bool, error)
	FindByID(id uint) (*models.Blog, error)
}

type blogRepository struct {
	db *gorm.DB
}

// NewBlogRepository creates a gorm-backed BlogRepository.
func NewBlogRepository(db *gorm.DB) BlogRepository {
	return &blogRepository{db: db}
}

func (r *blogRepository) ExistsByID(id uint) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Blog{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *blogRepository) FindByID(id uint) (*models.Blog, error) {
	var blog models.Blog
	if err := r.db.First(&blog, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &blog, nil
}
