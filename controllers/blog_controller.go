package controllers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/utils"
)

// BlogController handles the article surface: public reading, admin
// publishing, like toggling, and image upload.
type BlogController struct {
	db *gorm.DB
}

// NewBlogController creates a BlogController bound to the database.
func NewBlogController(db *gorm.DB) *BlogController {
	return &BlogController{db: db}
}

// List returns all blogs, newest first. Public.
func (b *BlogController) List(ctx *gin.Context) {
	const cacheKey = "cache:blogs:list"
	if bytes, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", bytes)
		return
	}

	var blogs []models.Blog
	if err := b.db.Order("created_at DESC").Find(&blogs).Error; err != nil {
		utils.Sugar.Errorf("failed to list blogs: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50020, "failed to fetch blogs")
		return
	}

	payload := gin.H{"blogs": blogs}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

// Get returns a single blog by id. Public.
func (b *BlogController) Get(ctx *gin.Context) {
	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40040, "invalid blog id")
		return
	}

	cacheKey := fmt.Sprintf("cache:blog:detail:%d", blogID)
	if bytes, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", bytes)
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "blog not found")
			return
		}
		utils.Sugar.Errorf("failed to load blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50021, "failed to fetch blog")
		return
	}

	payload := gin.H{"blog": blog}
	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: payload}
	utils.CacheSetJSON(cacheKey, wrapper, time.Hour)
	utils.Success(ctx, payload)
}

type blogRequest struct {
	Title    string `json:"title" binding:"required"`
	Content  string `json:"content" binding:"required"`
	ImageURL string `json:"image_url"`
}

// Create publishes a new blog. Admin only.
func (b *BlogController) Create(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if !actor.IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40320, "admin role required")
		return
	}

	var req blogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40041, "missing title or content")
		return
	}

	blog := models.Blog{
		Title:       strings.TrimSpace(req.Title),
		Content:     utils.SanitizeBlogHTML(req.Content),
		AuthorEmail: actor.Email,
		ImageURL:    req.ImageURL,
	}
	if blog.Title == "" || blog.Content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40042, "missing title or content")
		return
	}

	if err := b.db.Create(&blog).Error; err != nil {
		utils.Sugar.Errorf("failed to create blog: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50022, "failed to create blog")
		return
	}

	// Images attached to a published blog must survive the upload cleaner.
	b.retainUploadedImage(blog.ImageURL)

	utils.InvalidateByPrefix("cache:blogs:")
	utils.Created(ctx, gin.H{"blog": blog})
}

// Update edits an existing blog. Admin only.
func (b *BlogController) Update(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if !actor.IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40321, "admin role required")
		return
	}

	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40043, "invalid blog id")
		return
	}

	var req blogRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40044, "missing title or content")
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "blog not found")
			return
		}
		utils.Sugar.Errorf("failed to load blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50023, "failed to fetch blog")
		return
	}

	blog.Title = strings.TrimSpace(req.Title)
	blog.Content = utils.SanitizeBlogHTML(req.Content)
	blog.ImageURL = req.ImageURL
	if blog.Title == "" || blog.Content == "" {
		utils.Error(ctx, http.StatusBadRequest, 40045, "missing title or content")
		return
	}

	if err := b.db.Save(&blog).Error; err != nil {
		utils.Sugar.Errorf("failed to update blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50024, "failed to update blog")
		return
	}

	b.retainUploadedImage(blog.ImageURL)

	utils.InvalidateByPrefix("cache:blogs:")
	utils.InvalidateByPrefix(fmt.Sprintf("cache:blog:detail:%d", blogID))
	utils.Respond(ctx, http.StatusOK, 0, "blog updated", gin.H{"blog": blog})
}

// Delete removes a blog. Admin only. Blogs are hard-deleted; their comments
// stay behind as audit rows.
func (b *BlogController) Delete(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if !actor.IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40322, "admin role required")
		return
	}

	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40046, "invalid blog id")
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40422, "blog not found")
			return
		}
		utils.Sugar.Errorf("failed to load blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50025, "failed to fetch blog")
		return
	}

	if err := b.db.Delete(&blog).Error; err != nil {
		utils.Sugar.Errorf("failed to delete blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to delete blog")
		return
	}

	utils.InvalidateByPrefix("cache:blogs:")
	utils.InvalidateByPrefix(fmt.Sprintf("cache:blog:detail:%d", blogID))
	utils.Respond(ctx, http.StatusOK, 0, "blog deleted successfully", nil)
}

// ToggleLike likes a blog, or removes the like when it already exists.
// Responds with the full list of user ids that like the blog.
func (b *BlogController) ToggleLike(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if actor == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40120, "unauthorized")
		return
	}

	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40047, "invalid blog id")
		return
	}

	var blog models.Blog
	if err := b.db.First(&blog, blogID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40423, "blog not found")
			return
		}
		utils.Sugar.Errorf("failed to load blog %d: %v", blogID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to fetch blog")
		return
	}

	var existing models.BlogLike
	err := b.db.Where("blog_id = ? AND user_id = ?", blogID, actor.ID).First(&existing).Error
	switch {
	case err == nil:
		if err := b.db.Delete(&existing).Error; err != nil {
			utils.Sugar.Errorf("failed to remove like: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50028, "failed to update likes")
			return
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.BlogLike{BlogID: blogID, UserID: actor.ID}
		if err := b.db.Create(&like).Error; err != nil {
			utils.Sugar.Errorf("failed to add like: %v", err)
			utils.Error(ctx, http.StatusInternalServerError, 50029, "failed to update likes")
			return
		}
	default:
		utils.Sugar.Errorf("failed to check like: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50030, "failed to update likes")
		return
	}

	var likes []models.BlogLike
	if err := b.db.Where("blog_id = ?", blogID).Find(&likes).Error; err != nil {
		utils.Sugar.Errorf("failed to list likes: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50031, "failed to fetch likes")
		return
	}
	userIDs := make([]uint, 0, len(likes))
	for _, l := range likes {
		userIDs = append(userIDs, l.UserID)
	}

	utils.InvalidateByPrefix(fmt.Sprintf("cache:blog:detail:%d", blogID))
	utils.Success(ctx, gin.H{"likes": utils.UniqueUint(userIDs)})
}

// UploadImage stores a multipart image under the uploads directory and
// returns its public URL. The file is recorded for timed cleanup and kept
// for good once a blog references it.
func (b *BlogController) UploadImage(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if actor == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40121, "unauthorized")
		return
	}

	file, header, err := ctx.Request.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40048, "no file provided")
		return
	}
	defer file.Close()

	cfg := config.Get()
	maxSize := int64(cfg.UploadMaxSizeMB) * 1024 * 1024
	if header.Size > 0 && header.Size > maxSize {
		utils.Error(ctx, http.StatusBadRequest, 40049, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	now := time.Now()
	baseDir := filepath.Join(cfg.UploadDir, now.Format("2006"), now.Format("01"), now.Format("02"))
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		utils.Sugar.Errorf("failed to create upload directory: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50032, "upload failed")
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	safeName := uuid.NewString() + ext
	dstPath := filepath.Join(baseDir, safeName)

	out, err := os.Create(dstPath)
	if err != nil {
		utils.Sugar.Errorf("failed to create upload file: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50033, "upload failed")
		return
	}
	defer out.Close()

	lr := &io.LimitedReader{R: file, N: maxSize + 1}
	written, err := io.Copy(out, lr)
	if err != nil {
		_ = os.Remove(dstPath)
		utils.Sugar.Errorf("failed to write upload: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50034, "upload failed")
		return
	}
	if written > maxSize {
		_ = os.Remove(dstPath)
		utils.Error(ctx, http.StatusBadRequest, 40050, fmt.Sprintf("file size exceeds %dMB", cfg.UploadMaxSizeMB))
		return
	}

	relURL := "/" + filepath.ToSlash(dstPath)
	absPath, _ := filepath.Abs(dstPath)
	expireAt := now.Add(time.Duration(cfg.UploadTTLMinutes) * time.Minute)
	if err := b.db.Create(&models.UploadedFile{FilePath: absPath, URL: relURL, ExpireAt: expireAt}).Error; err != nil {
		utils.Sugar.Warnf("failed to record upload: %v", err)
	}

	utils.Success(ctx, gin.H{"url": relURL})
}

// retainUploadedImage removes the cleanup record for an image that is now
// referenced by a blog, so the cleaner will not expire it.
func (b *BlogController) retainUploadedImage(url string) {
	if url == "" {
		return
	}
	if err := b.db.Where("url = ?", url).Delete(&models.UploadedFile{}).Error; err != nil {
		utils.Sugar.Warnf("failed to retain uploaded image %s: %v", url, err)
	}
}
