package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"swingconnect/internal/events"
	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"
	"swingconnect/pkg/log"

	"go.uber.org/zap"
)

const (
	DefaultCommentPageSize = 20
	MaxCommentPageSize     = 100
	MaxCommentLength       = 2000
)

// CommentService 评论的创建/查询/编辑/软删除
// 写路径只发布领域事件，通知扇出由订阅方（Notifier）承担
type CommentService struct {
	store      storage.Store
	dispatcher events.Dispatcher
}

func NewCommentService(store storage.Store, dispatcher events.Dispatcher) *CommentService {
	return &CommentService{store: store, dispatcher: dispatcher}
}

// CreateCommentInput 创建评论的入参，ParentID 非空表示回复
type CreateCommentInput struct {
	Content  string
	ParentID *uint
}

// Create 创建评论
// 回复时读取父评论推导 Depth 与 RootID：Depth 恒为父评论 Depth+1，
// RootID 取父评论的 RootID，父评论本身是根评论时取 ParentID。
// Depth 不设上限，超过展示层级的折叠由前端处理
func (s *CommentService) Create(ctx context.Context, postID uint, in CreateCommentInput, authorID uint, authorName string) (*models.Comment, error) {
	content := strings.TrimSpace(in.Content)
	if content == "" || len(content) > MaxCommentLength {
		return nil, errorx.ErrInvalidParam
	}

	post, err := s.store.GetPost(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	if post.Status != models.StatusActive {
		return nil, errorx.ErrNotFound
	}

	depth := 0
	var rootID *uint
	if in.ParentID != nil {
		parent, err := s.store.GetComment(ctx, *in.ParentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errorx.New(errorx.CodeNotFound, "父评论不存在")
			}
			return nil, err
		}
		if parent.PostID != postID || parent.Status != models.StatusActive {
			return nil, errorx.ErrInvalidParam
		}
		depth = parent.Depth + 1
		if parent.RootID != nil {
			rootID = parent.RootID
		} else {
			rootID = in.ParentID
		}
	}

	comment := &models.Comment{
		Cid:        utils.RandStringBytesMaskImpr(8),
		PostID:     postID,
		AuthorID:   authorID,
		AuthorName: authorName,
		ParentID:   in.ParentID,
		RootID:     rootID,
		Depth:      depth,
		Content:    content,
		Status:     models.StatusActive,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	// 评论写入与计数自增是两次独立的存储操作，后者失败时评论已落库，
	// 调用方会收到错误（无自动重试），计数可能暂时偏小
	if err := s.store.IncrPostStat(ctx, postID, "comments", 1); err != nil {
		return nil, err
	}
	if err := s.store.TouchPostActivity(ctx, postID, time.Now()); err != nil {
		log.L.Warn("touch post activity failed",
			zap.Uint("post_id", postID), zap.Error(err))
	}

	// 通知扇出走事件总线，失败不影响评论创建
	s.dispatcher.Publish(ctx, events.CommentCreated{Comment: *comment, Post: *post})

	return comment, nil
}

// List 按创建时间升序（楼层顺序）分页返回 active 评论
// 多取一条用来判断是否还有下一页，cursor 为本页最后一条的 id
func (s *CommentService) List(ctx context.Context, postID uint, pageSize int, cursor uint) ([]models.Comment, uint, bool, error) {
	if pageSize < 1 || pageSize > MaxCommentPageSize {
		pageSize = DefaultCommentPageSize
	}

	comments, err := s.store.ListActiveComments(ctx, postID, pageSize+1, cursor)
	if err != nil {
		return nil, 0, false, err
	}

	hasMore := len(comments) > pageSize
	if hasMore {
		comments = comments[:pageSize]
	}
	var next uint
	if len(comments) > 0 {
		next = comments[len(comments)-1].ID
	}
	return comments, next, hasMore, nil
}

// Update 编辑评论，仅作者本人可操作
// 覆盖前把旧内容追加进 EditHistory，编辑不改动 Depth/RootID/ParentID
func (s *CommentService) Update(ctx context.Context, commentID, userID uint, content string) (*models.Comment, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > MaxCommentLength {
		return nil, errorx.ErrInvalidParam
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	if comment.Status != models.StatusActive {
		return nil, errorx.ErrNotFound
	}
	if comment.AuthorID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "只能编辑自己的评论")
	}

	var history []models.EditRecord
	if len(comment.EditHistory) > 0 {
		if err := json.Unmarshal(comment.EditHistory, &history); err != nil {
			log.L.Warn("corrupt comment edit history",
				zap.Uint("comment_id", commentID), zap.Error(err))
			history = nil
		}
	}
	history = append(history, models.EditRecord{
		Content:  comment.Content,
		EditedAt: time.Now(),
	})
	raw, err := json.Marshal(history)
	if err != nil {
		return nil, err
	}

	comment.EditHistory = raw
	comment.Content = content
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete 软删除评论并回减帖子的评论计数，仅作者本人可操作
func (s *CommentService) Delete(ctx context.Context, commentID, userID uint) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorx.ErrNotFound
		}
		return err
	}
	if comment.Status == models.StatusDeleted {
		return errorx.ErrNotFound
	}
	if comment.AuthorID != userID {
		return errorx.New(errorx.CodeForbidden, "只能删除自己的评论")
	}

	comment.Status = models.StatusDeleted
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return err
	}
	return s.store.IncrPostStat(ctx, comment.PostID, "comments", -1)
}
