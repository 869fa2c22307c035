package models

import (
	"time"
)

// 举报处理状态
const (
	ReportStatusPending  = "pending"
	ReportStatusResolved = "resolved"
	ReportStatusRejected = "rejected"
)

// Report 举报记录
// (target_type, target_id, reporter_id) 唯一，同一用户重复举报同一目标会被拒绝，
// 避免刷高目标的举报计数
type Report struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TargetType  string    `gorm:"size:20;not null;uniqueIndex:idx_target_reporter" json:"target_type"` // post, comment
	TargetID    uint      `gorm:"not null;uniqueIndex:idx_target_reporter" json:"target_id"`
	ReporterID  uint      `gorm:"not null;index;uniqueIndex:idx_target_reporter" json:"reporter_id"`
	Reporter    User      `gorm:"foreignKey:ReporterID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	Reason      string    `gorm:"size:200;not null" json:"reason"`
	Description string    `gorm:"type:text" json:"description"`
	Status      string    `gorm:"size:20;not null;default:'pending'" json:"status"` // pending, resolved, rejected
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
