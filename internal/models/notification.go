package models

import (
	"time"
)

type NotificationType string

const (
	NotificationTypeCommentPost  NotificationType = "comment_post"
	NotificationTypeReplyComment NotificationType = "reply_comment"
	NotificationTypeLikePost     NotificationType = "like_post"
	NotificationTypeSystem       NotificationType = "system"
)

type Notification struct {
	ID               uint             `gorm:"primaryKey" json:"id"`
	RecipientID      uint             `gorm:"not null;index" json:"recipient_id"`
	Recipient        User             `gorm:"foreignKey:RecipientID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	ActorID          *uint            `gorm:"index" json:"actor_id"` // Sender，系统通知为空
	Type             NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Title            string           `gorm:"size:100;not null" json:"title"`
	Message          string           `gorm:"type:text" json:"message"`
	RelatedPostID    *uint            `json:"related_post_id,omitempty"`
	RelatedCommentID *uint            `json:"related_comment_id,omitempty"`
	IsRead           bool             `gorm:"default:false;index" json:"is_read"`
	CreatedAt        time.Time        `json:"created_at"`
}
