package handlers

import (
	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type LikeHandler struct {
	engagement *services.EngagementService
}

func NewLikeHandler(engagement *services.EngagementService) *LikeHandler {
	return &LikeHandler{engagement: engagement}
}

type toggleLikeRequest struct {
	TargetType string `json:"target_type" binding:"required,targettype"`
	TargetID   uint   `json:"target_id" binding:"required"`
}

// Toggle POST /api/likes 点赞/取消点赞，返回操作后的状态
func (h *LikeHandler) Toggle(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var req toggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	liked, err := h.engagement.ToggleLike(c.Request.Context(), req.TargetType, req.TargetID, user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"liked": liked})
}
