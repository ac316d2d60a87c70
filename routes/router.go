package routes

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/controllers"
	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/repositories"
	"github.com/inkpress/inkpress/services"
	"github.com/inkpress/inkpress/utils"
)

// SetupRouter wires routes, middlewares, and controllers.
func SetupRouter(db *gorm.DB) *gin.Engine {
	cfg := config.Get()
	switch strings.ToLower(cfg.GinMode) {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	// Replace default console logger with file-based zap logger
	gl, err := utils.NewRollingFileLogger(cfg.GinPath, cfg.LogLevel, cfg.LogMaxSizeMB, cfg.LogMaxBackups, cfg.LogMaxAgeDays, cfg.LogCompress)
	if err == nil {
		r.Use(utils.Ginzap(gl, time.RFC3339, true))
		r.Use(utils.RecoveryWithZap(gl, false))
	} else {
		// fallback to default recovery if logger failed to init
		r.Use(gin.Recovery())
	}

	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.Static("/static", "./static")

	r.GET("/health", func(ctx *gin.Context) {
		utils.Success(ctx, gin.H{"status": "ok"})
	})

	commentService := services.NewCommentService(
		repositories.NewCommentRepository(db),
		repositories.NewBlogRepository(db),
		cfg.CommentMinLength,
		cfg.CommentMaxLength,
	)

	authController := controllers.NewAuthController(db)
	blogController := controllers.NewBlogController(db)
	commentController := controllers.NewCommentController(commentService)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authGroup.Use(middleware.RateLimitMiddleware())
	authGroup.POST("/register", authController.Register)
	authGroup.POST("/login", authController.Login)
	authGroup.GET("/me", middleware.AuthRequired(), authController.Me)

	// Public reading surface
	api.GET("/blogs", blogController.List)
	api.GET("/blogs/:id", blogController.Get)
	api.GET("/blogs/:id/comments", commentController.List)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired())
	protected.POST("/blogs", blogController.Create)
	protected.PUT("/blogs/:id", blogController.Update)
	protected.DELETE("/blogs/:id", blogController.Delete)
	protected.POST("/blogs/:id/likes", blogController.ToggleLike)
	protected.POST("/blogs/:id/comments", commentController.Create)
	protected.PUT("/comments/:commentId", commentController.Update)
	protected.DELETE("/comments/:commentId", commentController.Delete)
	protected.POST("/upload", blogController.UploadImage)
	protected.GET("/users", authController.ListUsers)
	protected.PATCH("/users/:id", authController.UpdateUserRole)
	protected.DELETE("/users/:id", authController.DeleteUser)

	r.NoRoute(func(ctx *gin.Context) {
		utils.Error(ctx, http.StatusNotFound, 40400, "route not found")
	})

	return r
}
