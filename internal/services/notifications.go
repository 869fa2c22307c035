package services

import (
	"context"
	"errors"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/pkg/errorx"
)

const DefaultNotificationPageSize = 20

// Related 通知关联的上下文
type Related struct {
	ActorID   *uint
	PostID    *uint
	CommentID *uint
}

// NotificationService 通知的写入与收件箱查询
type NotificationService struct {
	store storage.Store
}

func NewNotificationService(store storage.Store) *NotificationService {
	return &NotificationService{store: store}
}

// Create 写入一条未读通知
func (s *NotificationService) Create(ctx context.Context, recipientID uint, typ models.NotificationType, title, message string, related Related) (*models.Notification, error) {
	n := &models.Notification{
		RecipientID:      recipientID,
		ActorID:          related.ActorID,
		Type:             typ,
		Title:            title,
		Message:          message,
		RelatedPostID:    related.PostID,
		RelatedCommentID: related.CommentID,
		IsRead:           false,
	}
	if err := s.store.CreateNotification(ctx, n); err != nil {
		return nil, err
	}
	return n, nil
}

// List 收件箱，最新在前，cursor 为本页最后一条的 id
func (s *NotificationService) List(ctx context.Context, userID uint, pageSize int, cursor uint) ([]models.Notification, uint, bool, error) {
	if pageSize < 1 || pageSize > 100 {
		pageSize = DefaultNotificationPageSize
	}

	notifications, err := s.store.ListNotifications(ctx, userID, pageSize+1, cursor)
	if err != nil {
		return nil, 0, false, err
	}

	hasMore := len(notifications) > pageSize
	if hasMore {
		notifications = notifications[:pageSize]
	}
	var next uint
	if len(notifications) > 0 {
		next = notifications[len(notifications)-1].ID
	}
	return notifications, next, hasMore, nil
}

// MarkRead 单条已读，只能操作自己的通知
func (s *NotificationService) MarkRead(ctx context.Context, id, userID uint) error {
	if err := s.store.MarkNotificationRead(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorx.ErrNotFound
		}
		return err
	}
	return nil
}

// MarkAllRead 全部标记已读
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.store.MarkAllNotificationsRead(ctx, userID)
}

// UnreadCount 未读数，导航栏角标用
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.store.CountUnreadNotifications(ctx, userID)
}
