package mock

import (
	"sort"
	"sync"
	"time"

	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/repositories"
)

// BlogRepository is an in-memory repositories.BlogRepository for tests.
type BlogRepository struct {
	blogs  map[uint]*models.Blog
	nextID uint
	mutex  sync.RWMutex
}

// CommentRepository is an in-memory repositories.CommentRepository for tests.
type CommentRepository struct {
	comments map[uint]*models.Comment
	nextID   uint
	mutex    sync.RWMutex

	// FailWith, when set, makes every method return this error. Used to
	// exercise store-failure paths.
	FailWith error
}

func NewBlogRepository() *BlogRepository {
	return &BlogRepository{
		blogs:  make(map[uint]*models.Blog),
		nextID: 1,
	}
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{
		comments: make(map[uint]*models.Comment),
		nextID:   1,
	}
}

func (m *BlogRepository) Create(blog *models.Blog) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	blog.ID = m.nextID
	m.nextID++
	m.blogs[blog.ID] = blog
}

func (m *BlogRepository) ExistsByID(id uint) (bool, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, exists := m.blogs[id]
	return exists, nil
}

func (m *BlogRepository) FindByID(id uint) (*models.Blog, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	blog, exists := m.blogs[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	return blog, nil
}

func (m *CommentRepository) FindPage(blogID uint, page, limit int) ([]models.Comment, int64, error) {
	if m.FailWith != nil {
		return nil, 0, m.FailWith
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	page = repositories.NormalizePage(page)
	limit = repositories.NormalizeLimit(limit)

	var active []models.Comment
	for _, c := range m.comments {
		if c.BlogID == blogID && !c.IsDeleted && c.Status == models.CommentStatusPublished {
			active = append(active, *c)
		}
	}
	sort.Slice(active, func(i, j int) bool {
		return active[i].CreatedAt.After(active[j].CreatedAt)
	})

	total := int64(len(active))
	start := (page - 1) * limit
	if start >= len(active) {
		return []models.Comment{}, total, nil
	}
	end := start + limit
	if end > len(active) {
		end = len(active)
	}
	return active[start:end], total, nil
}

func (m *CommentRepository) FindByID(id uint) (*models.Comment, error) {
	if m.FailWith != nil {
		return nil, m.FailWith
	}
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	comment, exists := m.comments[id]
	if !exists {
		return nil, repositories.ErrNotFound
	}
	copied := *comment
	return &copied, nil
}

func (m *CommentRepository) Insert(comment *models.Comment) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	comment.ID = m.nextID
	m.nextID++
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = now
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}

func (m *CommentRepository) Update(comment *models.Comment) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if _, exists := m.comments[comment.ID]; !exists {
		return repositories.ErrNotFound
	}
	comment.UpdatedAt = time.Now()
	stored := *comment
	m.comments[comment.ID] = &stored
	return nil
}
