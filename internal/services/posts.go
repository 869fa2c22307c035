package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"
	"swingconnect/pkg/log"

	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// PostService 帖子的发布/查询/编辑/软删除与活动报名
type PostService struct {
	store storage.Store
	hot   *HotBoard
}

func NewPostService(store storage.Store, hot *HotBoard) *PostService {
	return &PostService{store: store, hot: hot}
}

// CreatePostInput 发帖入参，附加信息只在对应分类下有效
type CreatePostInput struct {
	Title           string
	Content         string
	Category        string
	Visibility      string
	EventInfo       *models.EventInfo
	MarketplaceInfo *models.MarketplaceInfo
}

func (s *PostService) Create(ctx context.Context, in CreatePostInput, authorID uint, authorName string) (*models.Post, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "标题不能为空")
	}

	visibility := in.Visibility
	if visibility == "" {
		visibility = models.VisibilityPublic
	}

	post := &models.Post{
		Pid:        utils.RandStringBytesMaskImpr(8),
		AuthorID:   authorID,
		AuthorName: authorName,
		Category:   in.Category,
		Status:     models.StatusActive,
		Visibility: visibility,
		Title:      title,
		Content:    in.Content,
		Stats:      models.PostStats{LastActivity: time.Now()},
	}
	if in.EventInfo != nil {
		v := datatypes.NewJSONType(*in.EventInfo)
		post.EventInfo = &v
	}
	if in.MarketplaceInfo != nil {
		v := datatypes.NewJSONType(*in.MarketplaceInfo)
		post.MarketplaceInfo = &v
	}

	if err := post.ValidatePayload(); err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, err.Error())
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get 按对外 Pid 取帖子详情并自增浏览量
func (s *PostService) Get(ctx context.Context, pid string) (*models.Post, error) {
	post, err := s.store.GetPostByPid(ctx, pid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	if post.Status == models.StatusDeleted || post.Status == models.StatusHidden {
		return nil, errorx.ErrNotFound
	}

	// 浏览量自增失败不影响读取
	if err := s.store.IncrPostStat(ctx, post.ID, "views", 1); err != nil {
		log.L.Warn("incr post views failed", zap.Uint("post_id", post.ID), zap.Error(err))
	} else {
		post.Stats.Views++
	}
	if s.hot != nil {
		s.hot.ScheduleUpdate(post.ID)
	}
	return post, nil
}

// Lookup 按 Pid 取 active 帖子，不计浏览量
func (s *PostService) Lookup(ctx context.Context, pid string) (*models.Post, error) {
	post, err := s.store.GetPostByPid(ctx, pid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	if post.Status != models.StatusActive {
		return nil, errorx.ErrNotFound
	}
	return post, nil
}

// List 按分类分页列出 active 帖子，最新在前
func (s *PostService) List(ctx context.Context, category string, page, perPage int) ([]models.Post, int64, error) {
	if category != "" {
		valid := false
		for _, c := range models.Categories {
			if c == category {
				valid = true
				break
			}
		}
		if !valid {
			return nil, 0, errorx.ErrInvalidParam
		}
	}
	return s.store.ListPosts(ctx, storage.PostFilter{
		Category: category,
		Page:     page,
		PerPage:  perPage,
	})
}

// UpdatePostInput 编辑帖子，nil 字段不改动
type UpdatePostInput struct {
	Title           *string
	Content         *string
	EventInfo       *models.EventInfo
	MarketplaceInfo *models.MarketplaceInfo
}

// Update 编辑帖子，仅作者本人可操作，分类不可变更
func (s *PostService) Update(ctx context.Context, pid string, userID uint, in UpdatePostInput) (*models.Post, error) {
	post, err := s.getOwned(ctx, pid, userID)
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "标题不能为空")
		}
		post.Title = title
	}
	if in.Content != nil {
		post.Content = *in.Content
	}
	if in.EventInfo != nil {
		v := datatypes.NewJSONType(*in.EventInfo)
		post.EventInfo = &v
	}
	if in.MarketplaceInfo != nil {
		v := datatypes.NewJSONType(*in.MarketplaceInfo)
		post.MarketplaceInfo = &v
	}

	if err := post.ValidatePayload(); err != nil {
		return nil, errorx.New(errorx.CodeInvalidParam, err.Error())
	}
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete 软删除：状态翻转为 deleted，文档永不物理移除
func (s *PostService) Delete(ctx context.Context, pid string, userID uint) error {
	post, err := s.getOwned(ctx, pid, userID)
	if err != nil {
		return err
	}
	post.Status = models.StatusDeleted
	return s.store.UpdatePost(ctx, post)
}

// Hide 管理员隐藏帖子（处理举报用）
func (s *PostService) Hide(ctx context.Context, id uint) error {
	post, err := s.store.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return errorx.ErrNotFound
		}
		return err
	}
	post.Status = models.StatusHidden
	return s.store.UpdatePost(ctx, post)
}

// JoinEvent 报名活动帖，人数达到容量上限后拒绝
// 读改写非原子，并发报名由写回前的 ValidatePayload 再次拦截超员
func (s *PostService) JoinEvent(ctx context.Context, pid string, userID uint) (*models.Post, error) {
	post, err := s.Lookup(ctx, pid)
	if err != nil {
		return nil, err
	}
	if post.Category != models.CategoryEvent || post.EventInfo == nil {
		return nil, errorx.ErrInvalidParam
	}

	info := post.EventInfo.Data()
	if info.Capacity > 0 && info.CurrentParticipants >= info.Capacity {
		return nil, errorx.ErrEventFull
	}
	info.CurrentParticipants++
	v := datatypes.NewJSONType(info)
	post.EventInfo = &v

	if err := post.ValidatePayload(); err != nil {
		return nil, errorx.ErrEventFull
	}
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// LeaveEvent 取消报名，人数下限为 0
func (s *PostService) LeaveEvent(ctx context.Context, pid string, userID uint) (*models.Post, error) {
	post, err := s.Lookup(ctx, pid)
	if err != nil {
		return nil, err
	}
	if post.Category != models.CategoryEvent || post.EventInfo == nil {
		return nil, errorx.ErrInvalidParam
	}

	info := post.EventInfo.Data()
	if info.CurrentParticipants > 0 {
		info.CurrentParticipants--
	}
	v := datatypes.NewJSONType(info)
	post.EventInfo = &v

	if err := s.store.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) getOwned(ctx context.Context, pid string, userID uint) (*models.Post, error) {
	post, err := s.store.GetPostByPid(ctx, pid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	if post.Status == models.StatusDeleted {
		return nil, errorx.ErrNotFound
	}
	if post.AuthorID != userID {
		return nil, errorx.New(errorx.CodeForbidden, "无权操作此帖子")
	}
	return post, nil
}
