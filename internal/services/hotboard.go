package services

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"swingconnect/internal/events"
	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/internal/utils"
	"swingconnect/pkg/log"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	keyPostHot = "swingconnect:post:hot"

	hotBatchSize     = 50
	hotFlushInterval = 500 * time.Millisecond
)

// HotBoard 热榜服务：互动事件入队，后台批量重算分数写入 redis zset。
// redis 客户端可为 nil，此时热榜退化为按最新排序。
type HotBoard struct {
	store storage.Store
	rdb   *redis.Client

	queue   chan uint
	mu      sync.Mutex
	pending map[uint]struct{}
	once    sync.Once
}

var _ events.Handler = (*HotBoard)(nil)

func NewHotBoard(store storage.Store, rdb *redis.Client) *HotBoard {
	return &HotBoard{
		store:   store,
		rdb:     rdb,
		queue:   make(chan uint, 1024),
		pending: make(map[uint]struct{}),
	}
}

// HandleEvent 订阅评论/点赞事件，互动发生时安排所属帖子重算分数
func (h *HotBoard) HandleEvent(ctx context.Context, e events.Event) error {
	switch ev := e.(type) {
	case events.CommentCreated:
		h.ScheduleUpdate(ev.Post.ID)
	case events.LikeAdded:
		if ev.TargetType == models.TargetPost {
			h.ScheduleUpdate(ev.PostID)
		}
	}
	return nil
}

// Start 启动后台刷新协程，重复调用只生效一次
func (h *HotBoard) Start() {
	if h.rdb == nil {
		return
	}
	h.once.Do(func() {
		go h.loop()
	})
}

// ScheduleUpdate 标记帖子待重算，队列满时直接丢弃
func (h *HotBoard) ScheduleUpdate(postID uint) {
	if h.rdb == nil {
		return
	}
	h.mu.Lock()
	if _, ok := h.pending[postID]; ok {
		h.mu.Unlock()
		return
	}
	h.pending[postID] = struct{}{}
	h.mu.Unlock()

	select {
	case h.queue <- postID:
	default:
		h.mu.Lock()
		delete(h.pending, postID)
		h.mu.Unlock()
	}
}

func (h *HotBoard) loop() {
	ticker := time.NewTicker(hotFlushInterval)
	defer ticker.Stop()

	batch := make([]uint, 0, hotBatchSize)
	for {
		select {
		case id := <-h.queue:
			batch = append(batch, id)
			if len(batch) >= hotBatchSize {
				h.flush(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				h.flush(batch)
				batch = batch[:0]
			}
		}
	}
}

func (h *HotBoard) flush(ids []uint) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	h.mu.Lock()
	for _, id := range ids {
		delete(h.pending, id)
	}
	h.mu.Unlock()

	posts, err := h.store.GetPostsByIDs(ctx, ids)
	if err != nil {
		log.L.Error("hot board load posts failed", zap.Error(err))
		return
	}

	members := make([]redis.Z, 0, len(posts))
	for i := range posts {
		p := &posts[i]
		if p.Status != models.StatusActive {
			// 已删除/隐藏的帖子移出榜单
			if err := h.rdb.ZRem(ctx, keyPostHot, p.ID).Err(); err != nil {
				log.L.Warn("hot board zrem failed", zap.Uint("post_id", p.ID), zap.Error(err))
			}
			continue
		}
		score := utils.CalculateHotScore(p.CreatedAt,
			p.Stats.Likes, p.Stats.Comments, p.Stats.Shares)
		members = append(members, redis.Z{Score: score, Member: p.ID})
	}
	if len(members) == 0 {
		return
	}
	if err := h.rdb.ZAdd(ctx, keyPostHot, members...).Err(); err != nil {
		log.L.Error("hot board zadd failed", zap.Error(err))
	}
}

// Top 取热榜前 n 条帖子，redis 不可用时回退为最新帖子
func (h *HotBoard) Top(ctx context.Context, n int) ([]models.Post, error) {
	if n <= 0 || n > 100 {
		n = 20
	}
	if h.rdb == nil {
		posts, _, err := h.store.ListPosts(ctx, storage.PostFilter{Page: 1, PerPage: n})
		return posts, err
	}

	ids, err := h.rdb.ZRevRange(ctx, keyPostHot, 0, int64(n-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, err
	}
	if len(ids) == 0 {
		posts, _, err := h.store.ListPosts(ctx, storage.PostFilter{Page: 1, PerPage: n})
		return posts, err
	}

	postIDs := make([]uint, 0, len(ids))
	for _, s := range ids {
		id, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			continue
		}
		postIDs = append(postIDs, uint(id))
	}

	posts, err := h.store.GetPostsByIDs(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	// 保持 zset 的分数顺序
	byID := make(map[uint]models.Post, len(posts))
	for _, p := range posts {
		byID[p.ID] = p
	}
	ordered := make([]models.Post, 0, len(postIDs))
	for _, id := range postIDs {
		if p, ok := byID[id]; ok && p.Status == models.StatusActive {
			ordered = append(ordered, p)
		}
	}
	return ordered, nil
}
