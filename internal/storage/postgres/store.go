package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"

	"gorm.io/gorm"
)

// Store 基于 gorm/postgres 的存储实现
type Store struct {
	db *gorm.DB
}

var _ storage.Store = (*Store)(nil)

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// 计数器字段到列名的映射，防止拼接任意列名
var postStatColumns = map[string]string{
	"views":    "stat_views",
	"likes":    "stat_likes",
	"comments": "stat_comments",
	"shares":   "stat_shares",
	"reports":  "stat_reports",
}

var commentColumns = map[string]string{
	"likes":   "likes",
	"reports": "reports",
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return storage.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return storage.ErrDuplicate
	}
	return err
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Create(u).Error)
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	return translate(s.db.WithContext(ctx).Save(u).Error)
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	return translate(s.db.WithContext(ctx).Create(p).Error)
}

func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) GetPostByPid(ctx context.Context, pid string) (*models.Post, error) {
	var p models.Post
	if err := s.db.WithContext(ctx).Where("pid = ?", pid).First(&p).Error; err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (s *Store) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	var posts []models.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&posts).Error
	return posts, translate(err)
}

func (s *Store) ListPosts(ctx context.Context, f storage.PostFilter) ([]models.Post, int64, error) {
	status := f.Status
	if status == "" {
		status = models.StatusActive
	}
	q := s.db.WithContext(ctx).Model(&models.Post{}).Where("status = ?", status)
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, translate(err)
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}

	var posts []models.Post
	err := q.Order("created_at DESC").
		Limit(perPage).
		Offset((page - 1) * perPage).
		Find(&posts).Error
	return posts, total, translate(err)
}

func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	return translate(s.db.WithContext(ctx).Save(p).Error)
}

// IncrPostStat 原子自增帖子的反范式化计数器
func (s *Store) IncrPostStat(ctx context.Context, id uint, field string, delta int) error {
	col, ok := postStatColumns[field]
	if !ok {
		return fmt.Errorf("unknown post stat field: %s", field)
	}
	res := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TouchPostActivity(ctx context.Context, id uint, at time.Time) error {
	return translate(s.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("stat_last_activity", at).Error)
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, cm *models.Comment) error {
	return translate(s.db.WithContext(ctx).Create(cm).Error)
}

func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	var cm models.Comment
	if err := s.db.WithContext(ctx).First(&cm, id).Error; err != nil {
		return nil, translate(err)
	}
	return &cm, nil
}

func (s *Store) ListActiveComments(ctx context.Context, postID uint, limit int, cursor uint) ([]models.Comment, error) {
	q := s.db.WithContext(ctx).
		Where("post_id = ? AND status = ?", postID, models.StatusActive)
	if cursor > 0 {
		q = q.Where("id > ?", cursor)
	}
	var comments []models.Comment
	err := q.Order("id ASC").Limit(limit).Find(&comments).Error
	return comments, translate(err)
}

func (s *Store) UpdateComment(ctx context.Context, cm *models.Comment) error {
	return translate(s.db.WithContext(ctx).Save(cm).Error)
}

func (s *Store) IncrCommentField(ctx context.Context, id uint, field string, delta int) error {
	col, ok := commentColumns[field]
	if !ok {
		return fmt.Errorf("unknown comment field: %s", field)
	}
	res := s.db.WithContext(ctx).Model(&models.Comment{}).
		Where("id = ?", id).
		UpdateColumn(col, gorm.Expr(col+" + ?", delta))
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// === Likes ===

func (s *Store) GetLike(ctx context.Context, key string) (*models.Like, error) {
	var l models.Like
	if err := s.db.WithContext(ctx).Where("key = ?", key).First(&l).Error; err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (s *Store) CreateLike(ctx context.Context, l *models.Like) error {
	return translate(s.db.WithContext(ctx).Create(l).Error)
}

// DeleteLike 物理删除，取消点赞不留记录
func (s *Store) DeleteLike(ctx context.Context, key string) error {
	return translate(s.db.WithContext(ctx).Where("key = ?", key).Delete(&models.Like{}).Error)
}

// GetLikesByKeys 一次 IN 查询批量取回存在的点赞记录
func (s *Store) GetLikesByKeys(ctx context.Context, keys []string) ([]models.Like, error) {
	var likes []models.Like
	if len(keys) == 0 {
		return likes, nil
	}
	err := s.db.WithContext(ctx).Where("key IN ?", keys).Find(&likes).Error
	return likes, translate(err)
}

// === Reports ===

func (s *Store) CreateReport(ctx context.Context, r *models.Report) error {
	return translate(s.db.WithContext(ctx).Create(r).Error)
}

func (s *Store) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	var r models.Report
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) GetReportByTarget(ctx context.Context, targetType string, targetID, reporterID uint) (*models.Report, error) {
	var r models.Report
	err := s.db.WithContext(ctx).
		Where("target_type = ? AND target_id = ? AND reporter_id = ?", targetType, targetID, reporterID).
		First(&r).Error
	if err != nil {
		return nil, translate(err)
	}
	return &r, nil
}

func (s *Store) ListReports(ctx context.Context, status string, limit int) ([]models.Report, error) {
	q := s.db.WithContext(ctx).Model(&models.Report{})
	if status != "" {
		q = q.Where("status = ?", status)
	}
	if limit < 1 || limit > 200 {
		limit = 50
	}
	var reports []models.Report
	err := q.Order("created_at DESC").Limit(limit).Find(&reports).Error
	return reports, translate(err)
}

func (s *Store) UpdateReport(ctx context.Context, r *models.Report) error {
	return translate(s.db.WithContext(ctx).Save(r).Error)
}

// === Notifications ===

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	return translate(s.db.WithContext(ctx).Create(n).Error)
}

func (s *Store) ListNotifications(ctx context.Context, recipientID uint, limit int, cursor uint) ([]models.Notification, error) {
	q := s.db.WithContext(ctx).Where("recipient_id = ?", recipientID)
	if cursor > 0 {
		q = q.Where("id < ?", cursor)
	}
	var notifications []models.Notification
	err := q.Order("id DESC").Limit(limit).Find(&notifications).Error
	return notifications, translate(err)
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID uint) error {
	res := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("id = ? AND recipient_id = ?", id, recipientID).
		Update("is_read", true)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, recipientID uint) error {
	return translate(s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true).Error)
}

func (s *Store) CountUnreadNotifications(ctx context.Context, recipientID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Count(&count).Error
	return count, translate(err)
}

// === Studios ===

func (s *Store) CreateStudio(ctx context.Context, studio *models.Studio) error {
	return translate(s.db.WithContext(ctx).Create(studio).Error)
}

func (s *Store) GetStudio(ctx context.Context, id uint) (*models.Studio, error) {
	var studio models.Studio
	if err := s.db.WithContext(ctx).First(&studio, id).Error; err != nil {
		return nil, translate(err)
	}
	return &studio, nil
}

func (s *Store) ListStudios(ctx context.Context, city string) ([]models.Studio, error) {
	q := s.db.WithContext(ctx).Model(&models.Studio{})
	if city != "" {
		q = q.Where("city = ?", city)
	}
	var studios []models.Studio
	err := q.Order("id ASC").Find(&studios).Error
	return studios, translate(err)
}

func (s *Store) CountStudios(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Studio{}).Count(&count).Error
	return count, translate(err)
}
