package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
)

func TestToggleLike_Post(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)

	liked, err := f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.Likes)

	// 再切换一次 → 取消点赞，计数回到原值
	liked, err = f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, liked)

	got, err = f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Stats.Likes)
}

func TestToggleLike_Comment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)
	comment := seedComment(t, f, post, alice, nil)

	liked, err := f.engagement.ToggleLike(ctx, models.TargetComment, comment.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, liked)

	got, err := f.store.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)
}

func TestToggleLike_InvalidTarget(t *testing.T) {
	f := newFixture(t)
	alice := seedUser(t, f, "alice")

	_, err := f.engagement.ToggleLike(context.Background(), "story", 1, alice.ID)
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)
}

func TestToggleLike_MissingTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")

	// 目标不存在时拒绝，并且不能留下孤儿点赞记录
	_, err := f.engagement.ToggleLike(ctx, models.TargetPost, 9999, alice.ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)

	_, err = f.store.GetLike(ctx, models.LikeKey(models.TargetPost, 9999, alice.ID))
	assert.Error(t, err)

	_, err = f.engagement.ToggleLike(ctx, models.TargetComment, 9999, alice.ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestToggleLike_IdempotentPerUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	carol := seedUser(t, f, "carol")
	post := seedPost(t, f, alice)

	// 两个不同用户各算一次
	_, err := f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, carol.ID)
	require.NoError(t, err)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stats.Likes)
}

func TestLikeNotification(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)

	_, err := f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, bob.ID)
	require.NoError(t, err)

	items, _, _, err := f.notifications.List(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationTypeLikePost, items[0].Type)
	assert.Contains(t, items[0].Message, bob.Username)

	// 取消点赞不再发通知
	_, err = f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, bob.ID)
	require.NoError(t, err)
	items, _, _, err = f.notifications.List(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestLikeNotification_SelfLikeSuppressed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	post := seedPost(t, f, alice)

	_, err := f.engagement.ToggleLike(ctx, models.TargetPost, post.ID, alice.ID)
	require.NoError(t, err)

	count, err := f.notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)
}

func TestUserLikes_BatchStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	p1 := seedPost(t, f, alice)
	p2 := seedPost(t, f, alice)
	p3 := seedPost(t, f, alice)

	_, err := f.engagement.ToggleLike(ctx, models.TargetPost, p1.ID, bob.ID)
	require.NoError(t, err)
	_, err = f.engagement.ToggleLike(ctx, models.TargetPost, p3.ID, bob.ID)
	require.NoError(t, err)

	likes, err := f.engagement.UserLikes(ctx, models.TargetPost, []uint{p1.ID, p2.ID, p3.ID}, bob.ID)
	require.NoError(t, err)
	assert.True(t, likes[p1.ID])
	assert.False(t, likes[p2.ID])
	assert.True(t, likes[p3.ID])
}
