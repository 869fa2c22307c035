package services

import (
	"context"
	"errors"

	"swingconnect/internal/events"
	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/pkg/errorx"
)

// EngagementService 点赞切换与批量状态查询
type EngagementService struct {
	store      storage.Store
	dispatcher events.Dispatcher
}

func NewEngagementService(store storage.Store, dispatcher events.Dispatcher) *EngagementService {
	return &EngagementService{store: store, dispatcher: dispatcher}
}

// ToggleLike 切换点赞状态，返回切换后的新状态（true=已点赞）
// 复合主键让存在性检查是一次 O(1) 读：存在则删除并回减计数，
// 不存在则创建并自增计数。首次点赞帖子时发布 LikeAdded 事件，取消不发
func (s *EngagementService) ToggleLike(ctx context.Context, targetType string, targetID, userID uint) (bool, error) {
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return false, errorx.ErrInvalidParam
	}

	key := models.LikeKey(targetType, targetID, userID)

	if _, err := s.store.GetLike(ctx, key); err == nil {
		// 已点赞 → 取消：物理删除并回减计数
		if err := s.store.DeleteLike(ctx, key); err != nil {
			return false, err
		}
		return false, s.incrLikeCounter(ctx, targetType, targetID, -1)
	} else if !errors.Is(err, storage.ErrNotFound) {
		return false, err
	}

	// 目标必须存在，否则会留下指向未来记录的孤儿点赞
	var post *models.Post
	if targetType == models.TargetPost {
		p, err := s.store.GetPost(ctx, targetID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return false, errorx.ErrNotFound
			}
			return false, err
		}
		post = p
	} else {
		if _, err := s.store.GetComment(ctx, targetID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return false, errorx.ErrNotFound
			}
			return false, err
		}
	}

	like := &models.Like{
		Key:        key,
		TargetType: targetType,
		TargetID:   targetID,
		UserID:     userID,
	}
	if err := s.store.CreateLike(ctx, like); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			// 并发下另一请求先写入，视为已点赞
			return true, nil
		}
		return false, err
	}
	if err := s.incrLikeCounter(ctx, targetType, targetID, 1); err != nil {
		return false, err
	}

	if post != nil {
		s.dispatcher.Publish(ctx, events.LikeAdded{
			TargetType: targetType,
			TargetID:   targetID,
			OwnerID:    post.AuthorID,
			ActorID:    userID,
			PostID:     post.ID,
			PostTitle:  post.Title,
		})
	}
	return true, nil
}

func (s *EngagementService) incrLikeCounter(ctx context.Context, targetType string, targetID uint, delta int) error {
	if targetType == models.TargetPost {
		return s.store.IncrPostStat(ctx, targetID, "likes", delta)
	}
	return s.store.IncrCommentField(ctx, targetID, "likes", delta)
}

// UserLikes 批量查询用户对一组目标的点赞状态
// 列表页用来一次性写入初始点赞高亮，复合键 IN 查询代替逐个往返
func (s *EngagementService) UserLikes(ctx context.Context, targetType string, targetIDs []uint, userID uint) (map[uint]bool, error) {
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return nil, errorx.ErrInvalidParam
	}

	result := make(map[uint]bool, len(targetIDs))
	keys := make([]string, 0, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = false
		keys = append(keys, models.LikeKey(targetType, id, userID))
	}

	likes, err := s.store.GetLikesByKeys(ctx, keys)
	if err != nil {
		return nil, err
	}
	for _, l := range likes {
		result[l.TargetID] = true
	}
	return result, nil
}
