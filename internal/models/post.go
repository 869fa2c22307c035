package models

import (
	"errors"
	"time"

	"gorm.io/datatypes"
)

// 帖子分类
const (
	CategoryGeneral     = "general"
	CategoryQnA         = "qna"
	CategoryEvent       = "event"
	CategoryMarketplace = "marketplace"
	CategoryLesson      = "lesson"
	CategoryReview      = "review"
)

// 内容状态（帖子和评论共用）
const (
	StatusActive   = "active"
	StatusHidden   = "hidden"
	StatusDeleted  = "deleted"
	StatusReported = "reported"
)

// 可见范围
const (
	VisibilityPublic  = "public"
	VisibilityMembers = "members"
)

var Categories = []string{
	CategoryGeneral, CategoryQnA, CategoryEvent,
	CategoryMarketplace, CategoryLesson, CategoryReview,
}

var (
	ErrPayloadMismatch = errors.New("附加信息与帖子分类不匹配")
	ErrEventCapacity   = errors.New("活动人数已满")
)

// PostStats 帖子的反范式化计数器
// 点赞/评论/举报数的增减通过原子自增完成，不做读改写
type PostStats struct {
	Views        int       `gorm:"default:0" json:"views"`
	Likes        int       `gorm:"default:0" json:"likes"`
	Comments     int       `gorm:"default:0" json:"comments"`
	Shares       int       `gorm:"default:0" json:"shares"`
	Reports      int       `gorm:"default:0" json:"reports"`
	LastActivity time.Time `json:"last_activity"`
}

// EventInfo 活动类帖子的附加信息
type EventInfo struct {
	StartDate           time.Time `json:"start_date"`
	Location            string    `json:"location"`
	Capacity            int       `json:"capacity"`
	CurrentParticipants int       `json:"current_participants"`
}

// MarketplaceInfo 二手市场类帖子的附加信息
type MarketplaceInfo struct {
	Price          int    `json:"price"`
	Condition      string `json:"condition"`       // new, like_new, used
	DeliveryMethod string `json:"delivery_method"` // meetup, shipping
}

// Post 按 category 区分变体，只有对应变体才携带附加信息
// event 帖带 EventInfo，marketplace 帖带 MarketplaceInfo，其余为 nil
type Post struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Pid        string `gorm:"uniqueIndex;size:8;not null" json:"pid"`
	AuthorID   uint   `gorm:"not null;index" json:"author_id"`
	Author     User   `gorm:"foreignKey:AuthorID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	AuthorName string `gorm:"size:50;not null" json:"author_name"` // 冗余存储，列表页免联查
	Category   string `gorm:"size:20;not null;index;default:'general'" json:"category"`
	Status     string `gorm:"size:20;not null;index;default:'active'" json:"status"`
	Visibility string `gorm:"size:20;not null;default:'public'" json:"visibility"`
	Title      string `gorm:"not null" json:"title"`
	Content    string `gorm:"type:text" json:"content"`

	Stats PostStats `gorm:"embedded;embeddedPrefix:stat_" json:"stats"`

	EventInfo       *datatypes.JSONType[EventInfo]       `json:"event_info,omitempty"`
	MarketplaceInfo *datatypes.JSONType[MarketplaceInfo] `json:"marketplace_info,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidatePayload 校验附加信息与分类的配对关系
func (p *Post) ValidatePayload() error {
	if p.EventInfo != nil && p.Category != CategoryEvent {
		return ErrPayloadMismatch
	}
	if p.MarketplaceInfo != nil && p.Category != CategoryMarketplace {
		return ErrPayloadMismatch
	}
	if p.EventInfo != nil {
		info := p.EventInfo.Data()
		if info.Capacity > 0 && info.CurrentParticipants > info.Capacity {
			return ErrEventCapacity
		}
	}
	return nil
}
