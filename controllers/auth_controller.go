package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/inkpress/inkpress/config"
	"github.com/inkpress/inkpress/middleware"
	"github.com/inkpress/inkpress/models"
	"github.com/inkpress/inkpress/utils"
)

// AuthController handles registration, login, and the admin user-management
// surface. Token issuance is plain JWT; there is no session state on the
// server side.
type AuthController struct {
	db *gorm.DB
}

// NewAuthController creates an AuthController bound to the database.
func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{db: db}
}

// Register creates a new account with the user role.
func (a *AuthController) Register(ctx *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=8"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40001, "invalid request payload")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.User
	err := a.db.Where("email = ?", email).First(&existing).Error
	if err == nil {
		utils.Error(ctx, http.StatusBadRequest, 40002, "user with this email already exists")
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.Sugar.Errorf("failed to check existing user: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50001, "could not create user")
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.Sugar.Errorf("failed to hash password: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50002, "could not create user")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleUser,
	}
	if err := a.db.Create(&user).Error; err != nil {
		utils.Sugar.Errorf("failed to create user: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50003, "could not create user")
		return
	}

	utils.Respond(ctx, http.StatusCreated, 0, "user created", gin.H{"user": user})
}

// Login verifies credentials and issues a JWT carrying the actor identity.
func (a *AuthController) Login(ctx *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40003, "invalid request payload")
		return
	}

	var user models.User
	if err := a.db.Where("email = ?", strings.ToLower(strings.TrimSpace(req.Email))).First(&user).Error; err != nil {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid email or password")
		return
	}

	if !utils.CheckPassword(user.PasswordHash, req.Password) {
		utils.Error(ctx, http.StatusUnauthorized, 40105, "invalid email or password")
		return
	}

	cfg := config.Get()
	token, err := utils.GenerateToken(user.ID, user.Name, user.Email, user.Role, time.Duration(cfg.TokenTTLHours)*time.Hour)
	if err != nil {
		utils.Sugar.Errorf("failed to generate token: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50004, "failed to generate token")
		return
	}

	utils.Success(ctx, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me returns the profile of the authenticated actor.
func (a *AuthController) Me(ctx *gin.Context) {
	actor := middleware.ActorFrom(ctx)
	if actor == nil {
		utils.Error(ctx, http.StatusUnauthorized, 40106, "unauthorized")
		return
	}

	var user models.User
	if err := a.db.First(&user, actor.ID).Error; err != nil {
		utils.Error(ctx, http.StatusNotFound, 40401, "user not found")
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}

// ListUsers returns all accounts. Admin only; password hashes are never
// serialized.
func (a *AuthController) ListUsers(ctx *gin.Context) {
	if !middleware.ActorFrom(ctx).IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40301, "admin role required")
		return
	}

	var users []models.User
	if err := a.db.Order("created_at DESC").Find(&users).Error; err != nil {
		utils.Sugar.Errorf("failed to list users: %v", err)
		utils.Error(ctx, http.StatusInternalServerError, 50005, "failed to fetch users")
		return
	}

	utils.Success(ctx, gin.H{"users": users})
}

// UpdateUserRole promotes or demotes an account. Admin only.
func (a *AuthController) UpdateUserRole(ctx *gin.Context) {
	if !middleware.ActorFrom(ctx).IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40302, "admin role required")
		return
	}

	userID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40004, "invalid user id")
		return
	}

	var req struct {
		Role string `json:"role" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil || (req.Role != models.RoleAdmin && req.Role != models.RoleUser) {
		utils.Error(ctx, http.StatusBadRequest, 40005, "invalid role")
		return
	}

	var user models.User
	if err := a.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40402, "user not found")
			return
		}
		utils.Sugar.Errorf("failed to load user %d: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50006, "failed to update role")
		return
	}

	user.Role = req.Role
	if err := a.db.Save(&user).Error; err != nil {
		utils.Sugar.Errorf("failed to update role for user %d: %v", userID, err)
		utils.Error(ctx, http.StatusInternalServerError, 50007, "failed to update role")
		return
	}

	utils.Success(ctx, gin.H{"user": user})
}

// DeleteUser removes an account. Admin only. The user's comments are kept;
// their author snapshot still names them.
func (a *AuthController) DeleteUser(ctx *gin.Context) {
	if !middleware.ActorFrom(ctx).IsAdmin() {
		utils.Error(ctx, http.StatusForbidden, 40303, "admin role required")
		return
	}

	userID, ok := parseID(ctx.Param("id"))
	if !ok {
		utils.Error(ctx, http.StatusBadRequest, 40006, "invalid user id")
		return
	}

	res := a.db.Delete(&models.User{}, userID)
	if res.Error != nil {
		utils.Sugar.Errorf("failed to delete user %d: %v", userID, res.Error)
		utils.Error(ctx, http.StatusInternalServerError, 50008, "failed to delete user")
		return
	}
	if res.RowsAffected == 0 {
		utils.Error(ctx, http.StatusNotFound, 40403, "user not found")
		return
	}

	utils.Respond(ctx, http.StatusOK, 0, "user deleted successfully", nil)
}
