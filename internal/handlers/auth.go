package handlers

import (
	"swingconnect/internal/middleware"
	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"
	"swingconnect/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{users: users}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register POST /api/auth/register 注册并直接登录
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	user, err := h.users.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := middleware.SaveLogin(c, user.ID); err != nil {
		log.L.Error("save session failed", zap.Error(err))
	}
	OK(c, user)
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		Fail(c, err)
		return
	}
	if err := middleware.SaveLogin(c, user.ID); err != nil {
		log.L.Error("save session failed", zap.Error(err))
	}
	OK(c, user)
}

// Logout POST /api/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := middleware.ClearLogin(c); err != nil {
		log.L.Warn("clear session failed", zap.Error(err))
	}
	OK(c, nil)
}

// Me GET /api/auth/me 返回当前用户与未读通知数
func (h *AuthHandler) Me(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var unread int64
	if v, ok := c.Get(middleware.UnreadCountKey); ok {
		unread, _ = v.(int64)
	}
	OK(c, gin.H{"user": user, "unread_count": unread})
}

type updateProfileRequest struct {
	Username   *string `json:"username"`
	Bio        *string `json:"bio"`
	DanceRole  *string `json:"dance_role"`
	DanceYears *int    `json:"dance_years"`
}

// UpdateProfile PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	updated, err := h.users.UpdateProfile(c.Request.Context(), user.ID, services.UpdateProfileInput{
		Username:   req.Username,
		Bio:        req.Bio,
		DanceRole:  req.DanceRole,
		DanceYears: req.DanceYears,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, updated)
}
