package storage

import (
	"context"
	"errors"
	"time"

	"swingconnect/internal/models"
)

// 存储层统一错误，postgres 与 inmemory 实现共用
var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// PostFilter 帖子列表查询条件
type PostFilter struct {
	Category string // 为空不过滤
	Status   string // 为空默认 active
	Page     int
	PerPage  int
}

// Store 定义后端文档存储的契约
// 生产环境为 postgres 实现，测试使用 inmemory 实现替换
//
// 计数器方法（IncrPostStat / IncrCommentField）必须以原子自增方式实现，
// 避免并发调用间丢失更新；跨文档不提供事务原子性
type Store interface {
	// users
	CreateUser(ctx context.Context, u *models.User) error
	GetUser(ctx context.Context, id uint) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, u *models.User) error

	// posts
	CreatePost(ctx context.Context, p *models.Post) error
	GetPost(ctx context.Context, id uint) (*models.Post, error)
	GetPostByPid(ctx context.Context, pid string) (*models.Post, error)
	GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error)
	ListPosts(ctx context.Context, f PostFilter) ([]models.Post, int64, error)
	UpdatePost(ctx context.Context, p *models.Post) error
	IncrPostStat(ctx context.Context, id uint, field string, delta int) error
	TouchPostActivity(ctx context.Context, id uint, at time.Time) error

	// comments
	CreateComment(ctx context.Context, cm *models.Comment) error
	GetComment(ctx context.Context, id uint) (*models.Comment, error)
	// ListActiveComments 返回 id 升序（即创建时间升序）的 active 评论，
	// cursor 为上一页最后一条的 id，0 表示从头开始
	ListActiveComments(ctx context.Context, postID uint, limit int, cursor uint) ([]models.Comment, error)
	UpdateComment(ctx context.Context, cm *models.Comment) error
	IncrCommentField(ctx context.Context, id uint, field string, delta int) error

	// likes
	GetLike(ctx context.Context, key string) (*models.Like, error)
	CreateLike(ctx context.Context, l *models.Like) error
	DeleteLike(ctx context.Context, key string) error
	GetLikesByKeys(ctx context.Context, keys []string) ([]models.Like, error)

	// reports
	CreateReport(ctx context.Context, r *models.Report) error
	GetReport(ctx context.Context, id uint) (*models.Report, error)
	GetReportByTarget(ctx context.Context, targetType string, targetID, reporterID uint) (*models.Report, error)
	ListReports(ctx context.Context, status string, limit int) ([]models.Report, error)
	UpdateReport(ctx context.Context, r *models.Report) error

	// notifications
	CreateNotification(ctx context.Context, n *models.Notification) error
	// ListNotifications 返回 id 倒序（最新在前），cursor 为上一页最后一条的 id，0 表示从最新开始
	ListNotifications(ctx context.Context, recipientID uint, limit int, cursor uint) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID uint) error
	MarkAllNotificationsRead(ctx context.Context, recipientID uint) error
	CountUnreadNotifications(ctx context.Context, recipientID uint) (int64, error)

	// studios
	CreateStudio(ctx context.Context, s *models.Studio) error
	GetStudio(ctx context.Context, id uint) (*models.Studio, error)
	ListStudios(ctx context.Context, city string) ([]models.Studio, error)
	CountStudios(ctx context.Context) (int64, error)
}
