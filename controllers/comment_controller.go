package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/services"
	"github.com/inkpress/inkpress/utils"
)

// CommentController adapts HTTP requests to the comment service. All
// decisions (validation, authorization, soft-delete semantics) live in the
// service; this layer only parses input and maps error kinds to statuses.
type CommentController struct {
	service *services.CommentService
}

// NewCommentController creates a CommentController over the given service.
func NewCommentController(service *services.CommentService) *CommentController {
	return &CommentController{service: service}
}

// List returns a page of comments for a blog. Public; no authentication.
func (c *CommentController) List(ctx *gin.Context) {
	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40030, "invalid blog id")
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	cacheKey := fmt.Sprintf("cache:blog:%d:comments:page=%d:limit=%d", blogID, page, limit)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	result, err := c.service.List(blogID, page, limit)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	wrapper := struct {
		Code    int         `json:"code"`
		Message string      `json:"message"`
		Data    interface{} `json:"data"`
	}{Code: 0, Message: "success", Data: result}
	utils.CacheSetJSON(cacheKey, wrapper, 0)
	utils.Success(ctx, result)
}

// Create adds a comment (or a reply, when parent_id is given) to a blog.
func (c *CommentController) Create(ctx *gin.Context) {
	blogID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40031, "invalid blog id")
		return
	}

	var req struct {
		Content  string `json:"content" binding:"required"`
		ParentID *uint  `json:"parent_id"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40032, "invalid request payload")
		return
	}

	comment, err := c.service.Create(middleware.ActorFrom(ctx), blogID, req.Content, req.ParentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateCommentCache(blogID)
	utils.Respond(ctx, http.StatusOK, 0, "comment added", gin.H{"comment": comment})
}

// Update replaces the body of a comment. Author or admin only.
func (c *CommentController) Update(ctx *gin.Context) {
	commentID, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40033, "invalid comment id")
		return
	}

	var req struct {
		Content string `json:"content" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40034, "invalid request payload")
		return
	}

	comment, err := c.service.Edit(middleware.ActorFrom(ctx), commentID, req.Content)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateCommentCache(comment.BlogID)
	utils.Respond(ctx, http.StatusOK, 0, "comment updated", gin.H{"comment": comment})
}

// Delete soft-deletes a comment. Author or admin only.
func (c *CommentController) Delete(ctx *gin.Context) {
	commentID, ok := parseID(ctx.Param("commentId"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40035, "invalid comment id")
		return
	}

	err := c.service.SoftDelete(middleware.ActorFrom(ctx), commentID)
	if err != nil {
		respondServiceError(ctx, err)
		return
	}

	invalidateAllCommentCaches()
	utils.Respond(ctx, http.StatusOK, 0, "comment deleted", nil)
}

func invalidateCommentCache(blogID uint) {
	utils.InvalidateByPrefix(fmt.Sprintf("cache:blog:%d:comments", blogID))
}

func invalidateAllCommentCaches() {
	utils.InvalidateByPrefix("cache:blog:")
}

// respondServiceError maps a service error kind to its HTTP status. Store
// errors are logged with their origin and surface as an opaque 500 so no
// internal detail leaks to the caller.
func respondServiceError(ctx *gin.Context, err error) {
	svcErr, ok := err.(*services.Error)
	if !ok {
		utils.Sugar.Errorf("unexpected service error: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50000, "internal server error")
		return
	}

	switch svcErr.Kind {
	case services.KindUnauthenticated:
		utils.Error(ctx, http.StatusUnauthorized, 40110, svcErr.Message)
	case services.KindForbidden:
		utils.Error(ctx, http.StatusForbidden, 40310, svcErr.Message)
	case services.KindNotFound:
		utils.Error(ctx, http.StatusNotFound, 40410, svcErr.Message)
	case services.KindValidation:
		utils.Error(ctx, http.StatusBadRequest, 40010, svcErr.Message)
	default:
		utils.Sugar.Errorf("store error: %v", svcErr)
		utils.Error(ctx, http.StatusInternalServerError, 50010, "internal server error")
	}
}

func parseID(raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
