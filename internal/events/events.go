package events

import (
	"context"

	"swingconnect/internal/models"
	"swingconnect/pkg/log"

	"go.uber.org/zap"
)

// Event 领域事件
// 评论/点赞写路径只负责发布事件，通知扇出由订阅方完成，两者完全解耦
type Event interface {
	Name() string
}

// CommentCreated 评论创建成功后发布
type CommentCreated struct {
	Comment models.Comment
	Post    models.Post
}

func (CommentCreated) Name() string { return "comment.created" }

// LikeAdded 新增点赞（取消点赞不发事件）
type LikeAdded struct {
	TargetType string
	TargetID   uint
	OwnerID    uint // 被赞内容的作者
	ActorID    uint
	ActorName  string
	PostID     uint
	PostTitle  string
}

func (LikeAdded) Name() string { return "like.added" }

// Handler 事件订阅方
type Handler interface {
	HandleEvent(ctx context.Context, e Event) error
}

// Dispatcher 写路径持有的发布接口，测试可替换为记录用的假实现
type Dispatcher interface {
	Publish(ctx context.Context, e Event)
}

// Bus 进程内同步派发
// 订阅方的失败只记日志、不回传：通知属于尽力而为的副作用，
// 绝不允许它阻断或回滚评论/点赞本身
type Bus struct {
	handlers []Handler
}

var _ Dispatcher = (*Bus)(nil)

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) Subscribe(h Handler) {
	b.handlers = append(b.handlers, h)
}

func (b *Bus) Publish(ctx context.Context, e Event) {
	for _, h := range b.handlers {
		if err := h.HandleEvent(ctx, e); err != nil {
			log.L.Warn("event handler failed",
				zap.String("event", e.Name()),
				zap.Error(err),
			)
		}
	}
}
