package models

import (
	"time"

	"gorm.io/datatypes"
)

// 评论嵌套的展示层级上限，仅用于前端折叠，写入路径不裁剪 Depth
const MaxDisplayDepth = 3

// EditRecord 一次编辑前的旧内容快照
type EditRecord struct {
	Content  string    `json:"content"`
	EditedAt time.Time `json:"edited_at"`
}

// Comment 归属于唯一一个帖子
// 根评论 Depth 为 0 且 RootID 为空；回复的 Depth 恒为父评论 Depth+1，
// RootID 指向整条线程最顶层的根评论
type Comment struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Cid        string `gorm:"uniqueIndex;size:8;not null" json:"cid"`
	PostID     uint   `gorm:"not null;index" json:"post_id"`
	Post       Post   `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
	AuthorID   uint   `gorm:"not null;index" json:"author_id"`
	AuthorName string `gorm:"size:50;not null" json:"author_name"`
	ParentID   *uint  `gorm:"index" json:"parent_id"` // Nullable for top-level comments
	RootID     *uint  `gorm:"index" json:"root_id"`   // 线程根评论 ID，根评论自身为空
	Depth      int    `gorm:"default:0" json:"depth"`
	Content    string `gorm:"type:text;not null" json:"content"`
	Status     string `gorm:"size:20;not null;index;default:'active'" json:"status"`
	Likes      int    `gorm:"default:0" json:"likes"`
	Reports    int    `gorm:"default:0" json:"reports"`

	// 编辑历史，[]EditRecord 的 JSON，编辑前追加旧内容，可审计
	EditHistory datatypes.JSON `json:"edit_history,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
