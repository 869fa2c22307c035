package models

import (
	"fmt"
	"time"
)

// 点赞目标类型
const (
	TargetPost    = "post"
	TargetComment = "comment"
)

// Like 点赞关系记录
// 主键为确定性拼接的复合键 {targetType}_{targetID}_{userID}，
// "用户 X 是否赞过目标 Y" 因此是一次 O(1) 的主键存在性检查，
// 同一用户对同一目标的切换天然幂等。取消点赞时物理删除，不做软删
type Like struct {
	Key        string    `gorm:"primaryKey;size:64" json:"key"`
	TargetType string    `gorm:"size:20;not null" json:"target_type"` // post, comment
	TargetID   uint      `gorm:"not null;index" json:"target_id"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// LikeKey 生成复合主键
func LikeKey(targetType string, targetID, userID uint) string {
	return fmt.Sprintf("%s_%d_%d", targetType, targetID, userID)
}
