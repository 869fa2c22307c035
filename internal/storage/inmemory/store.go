package inmemory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
)

// Store 实现 storage.Store 的内存版本，测试用
// 所有方法持锁执行，计数器自增因此与 postgres 的原子自增等价
type Store struct {
	mu sync.RWMutex

	users         map[uint]*models.User
	posts         map[uint]*models.Post
	comments      map[uint]*models.Comment
	likes         map[string]*models.Like
	reports       map[uint]*models.Report
	notifications map[uint]*models.Notification
	studios       map[uint]*models.Studio

	nextID uint
}

var _ storage.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:         make(map[uint]*models.User),
		posts:         make(map[uint]*models.Post),
		comments:      make(map[uint]*models.Comment),
		likes:         make(map[string]*models.Like),
		reports:       make(map[uint]*models.Report),
		notifications: make(map[uint]*models.Notification),
		studios:       make(map[uint]*models.Studio),
	}
}

// genID 单调递增的自增主键，与数据库行为一致（id 序即创建序）
func (s *Store) genID() uint {
	s.nextID++
	return s.nextID
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return storage.ErrDuplicate
		}
	}
	u.ID = s.genID()
	u.CreatedAt = time.Now()
	u.UpdatedAt = u.CreatedAt
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uint) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) UpdateUser(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.ID]; !ok {
		return storage.ErrNotFound
	}
	u.UpdatedAt = time.Now()
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

// === Posts ===

func (s *Store) CreatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = s.genID()
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *Store) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *Store) GetPostByPid(ctx context.Context, pid string) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.posts {
		if p.Pid == pid {
			cp := *p
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) GetPostsByIDs(ctx context.Context, ids []uint) ([]models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	posts := make([]models.Post, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.posts[id]; ok {
			posts = append(posts, *p)
		}
	}
	return posts, nil
}

func (s *Store) ListPosts(ctx context.Context, f storage.PostFilter) ([]models.Post, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	status := f.Status
	if status == "" {
		status = models.StatusActive
	}

	var all []models.Post
	for _, p := range s.posts {
		if p.Status != status {
			continue
		}
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].ID > all[j].ID
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	total := int64(len(all))

	page := f.Page
	if page < 1 {
		page = 1
	}
	perPage := f.PerPage
	if perPage < 1 || perPage > 100 {
		perPage = 30
	}
	start := (page - 1) * perPage
	if start >= len(all) {
		return []models.Post{}, total, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (s *Store) UpdatePost(ctx context.Context, p *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[p.ID]; !ok {
		return storage.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

func (s *Store) IncrPostStat(ctx context.Context, id uint, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch field {
	case "views":
		p.Stats.Views += delta
	case "likes":
		p.Stats.Likes += delta
	case "comments":
		p.Stats.Comments += delta
	case "shares":
		p.Stats.Shares += delta
	case "reports":
		p.Stats.Reports += delta
	default:
		return fmt.Errorf("unknown post stat field: %s", field)
	}
	return nil
}

func (s *Store) TouchPostActivity(ctx context.Context, id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Stats.LastActivity = at
	return nil
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, cm *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm.ID = s.genID()
	now := time.Now()
	cm.CreatedAt = now
	cm.UpdatedAt = now
	cp := *cm
	s.comments[cm.ID] = &cp
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cm, ok := s.comments[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *cm
	return &cp, nil
}

func (s *Store) ListActiveComments(ctx context.Context, postID uint, limit int, cursor uint) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Comment
	for _, cm := range s.comments {
		if cm.PostID != postID || cm.Status != models.StatusActive {
			continue
		}
		if cm.ID <= cursor {
			continue
		}
		result = append(result, *cm)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) UpdateComment(ctx context.Context, cm *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.comments[cm.ID]; !ok {
		return storage.ErrNotFound
	}
	cm.UpdatedAt = time.Now()
	cp := *cm
	s.comments[cm.ID] = &cp
	return nil
}

func (s *Store) IncrCommentField(ctx context.Context, id uint, field string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cm, ok := s.comments[id]
	if !ok {
		return storage.ErrNotFound
	}
	switch field {
	case "likes":
		cm.Likes += delta
	case "reports":
		cm.Reports += delta
	default:
		return fmt.Errorf("unknown comment field: %s", field)
	}
	return nil
}

// === Likes ===

func (s *Store) GetLike(ctx context.Context, key string) (*models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	l, ok := s.likes[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *Store) CreateLike(ctx context.Context, l *models.Like) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.likes[l.Key]; ok {
		return storage.ErrDuplicate
	}
	l.CreatedAt = time.Now()
	cp := *l
	s.likes[l.Key] = &cp
	return nil
}

func (s *Store) DeleteLike(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.likes, key)
	return nil
}

func (s *Store) GetLikesByKeys(ctx context.Context, keys []string) ([]models.Like, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	likes := make([]models.Like, 0, len(keys))
	for _, key := range keys {
		if l, ok := s.likes[key]; ok {
			likes = append(likes, *l)
		}
	}
	return likes, nil
}

// === Reports ===

func (s *Store) CreateReport(ctx context.Context, r *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reports {
		if existing.TargetType == r.TargetType &&
			existing.TargetID == r.TargetID &&
			existing.ReporterID == r.ReporterID {
			return storage.ErrDuplicate
		}
	}
	r.ID = s.genID()
	now := time.Now()
	r.CreatedAt = now
	r.UpdatedAt = now
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

func (s *Store) GetReport(ctx context.Context, id uint) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *Store) GetReportByTarget(ctx context.Context, targetType string, targetID, reporterID uint) (*models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.reports {
		if r.TargetType == targetType && r.TargetID == targetID && r.ReporterID == reporterID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListReports(ctx context.Context, status string, limit int) ([]models.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Report
	for _, r := range s.reports {
		if status != "" && r.Status != status {
			continue
		}
		result = append(result, *r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit < 1 || limit > 200 {
		limit = 50
	}
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) UpdateReport(ctx context.Context, r *models.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.reports[r.ID]; !ok {
		return storage.ErrNotFound
	}
	r.UpdatedAt = time.Now()
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

// === Notifications ===

func (s *Store) CreateNotification(ctx context.Context, n *models.Notification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n.ID = s.genID()
	n.CreatedAt = time.Now()
	cp := *n
	s.notifications[n.ID] = &cp
	return nil
}

func (s *Store) ListNotifications(ctx context.Context, recipientID uint, limit int, cursor uint) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID != recipientID {
			continue
		}
		if cursor > 0 && n.ID >= cursor {
			continue
		}
		result = append(result, *n)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, ok := s.notifications[id]
	if !ok || n.RecipientID != recipientID {
		return storage.ErrNotFound
	}
	n.IsRead = true
	return nil
}

func (s *Store) MarkAllNotificationsRead(ctx context.Context, recipientID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.notifications {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (s *Store) CountUnreadNotifications(ctx context.Context, recipientID uint) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

// === Studios ===

func (s *Store) CreateStudio(ctx context.Context, studio *models.Studio) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.studios {
		if existing.Name == studio.Name {
			return storage.ErrDuplicate
		}
	}
	studio.ID = s.genID()
	now := time.Now()
	studio.CreatedAt = now
	studio.UpdatedAt = now
	cp := *studio
	s.studios[studio.ID] = &cp
	return nil
}

func (s *Store) GetStudio(ctx context.Context, id uint) (*models.Studio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	studio, ok := s.studios[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *studio
	return &cp, nil
}

func (s *Store) ListStudios(ctx context.Context, city string) ([]models.Studio, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var result []models.Studio
	for _, studio := range s.studios {
		if city != "" && studio.City != city {
			continue
		}
		result = append(result, *studio)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Store) CountStudios(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return int64(len(s.studios)), nil
}
