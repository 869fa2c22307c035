package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"swingconnect/internal/events"
	"swingconnect/internal/models"
	"swingconnect/internal/storage/inmemory"
)

// fixture 把全部服务接到同一个内存存储和事件总线上，
// 通知订阅者也已挂载，和生产装配一致
type fixture struct {
	store         *inmemory.Store
	users         *UserService
	posts         *PostService
	comments      *CommentService
	engagement    *EngagementService
	reports       *ReportService
	notifications *NotificationService
	studios       *StudioService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := inmemory.New()
	bus := events.NewBus()
	notifications := NewNotificationService(store)
	bus.Subscribe(NewNotifier(store, notifications))

	hot := NewHotBoard(store, nil)

	return &fixture{
		store:         store,
		users:         NewUserService(store),
		posts:         NewPostService(store, hot),
		comments:      NewCommentService(store, bus),
		engagement:    NewEngagementService(store, bus),
		reports:       NewReportService(store),
		notifications: notifications,
		studios:       NewStudioService(store),
	}
}

func seedUser(t *testing.T, f *fixture, name string) *models.User {
	t.Helper()
	user, err := f.users.Register(context.Background(), fmt.Sprintf("%s@example.com", name), "password123")
	require.NoError(t, err)
	return user
}

func seedPost(t *testing.T, f *fixture, author *models.User) *models.Post {
	t.Helper()
	post, err := f.posts.Create(context.Background(), CreatePostInput{
		Title:    "周五 social 约起",
		Content:  "老地方见",
		Category: models.CategoryGeneral,
	}, author.ID, author.Username)
	require.NoError(t, err)
	return post
}

func seedComment(t *testing.T, f *fixture, post *models.Post, author *models.User, parentID *uint) *models.Comment {
	t.Helper()
	comment, err := f.comments.Create(context.Background(), post.ID, CreateCommentInput{
		Content:  "来了来了",
		ParentID: parentID,
	}, author.ID, author.Username)
	require.NoError(t, err)
	return comment
}
