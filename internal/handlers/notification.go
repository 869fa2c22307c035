package handlers

import (
	"strconv"

	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifications *services.NotificationService
}

func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// List GET /api/notifications?page_size=&cursor= 最新在前
func (h *NotificationHandler) List(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)

	items, next, hasMore, err := h.notifications.List(c.Request.Context(), user.ID, pageSize, uint(cursor))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{
		"notifications": items,
		"cursor":        next,
		"has_more":      hasMore,
	})
}

// MarkRead POST /api/notifications/:id/read
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.notifications.MarkRead(c.Request.Context(), id, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// MarkAllRead POST /api/notifications/read_all
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	if err := h.notifications.MarkAllRead(c.Request.Context(), user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// UnreadCount GET /api/notifications/unread_count
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	count, err := h.notifications.UnreadCount(c.Request.Context(), user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"count": count})
}
