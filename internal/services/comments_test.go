package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
)

func TestCreateComment_TopLevel(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	comment, err := f.comments.Create(ctx, post.ID, CreateCommentInput{Content: "沙发"}, author.ID, author.Username)
	require.NoError(t, err)

	assert.Equal(t, 0, comment.Depth)
	assert.Nil(t, comment.ParentID)
	assert.Nil(t, comment.RootID)
	assert.Equal(t, models.StatusActive, comment.Status)
	assert.Len(t, comment.Cid, 8)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.Comments)
}

func TestCreateComment_ReplyDerivesDepthAndRoot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	root := seedComment(t, f, post, author, nil)
	reply := seedComment(t, f, post, author, &root.ID)
	deep := seedComment(t, f, post, author, &reply.ID)

	assert.Equal(t, 1, reply.Depth)
	require.NotNil(t, reply.RootID)
	assert.Equal(t, root.ID, *reply.RootID)

	// 孙级回复的根仍指向最顶层评论
	assert.Equal(t, 2, deep.Depth)
	require.NotNil(t, deep.RootID)
	assert.Equal(t, root.ID, *deep.RootID)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Stats.Comments)
}

func TestCreateComment_DepthBeyondDisplayLimit(t *testing.T) {
	f := newFixture(t)
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	// 写入路径不裁剪层级，超出 MaxDisplayDepth 照常落库
	parent := seedComment(t, f, post, author, nil)
	for i := 1; i <= models.MaxDisplayDepth+2; i++ {
		child := seedComment(t, f, post, author, &parent.ID)
		assert.Equal(t, i, child.Depth)
		parent = child
	}
}

func TestCreateComment_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	_, err := f.comments.Create(ctx, post.ID, CreateCommentInput{Content: "   "}, author.ID, author.Username)
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)

	_, err = f.comments.Create(ctx, post.ID, CreateCommentInput{Content: strings.Repeat("长", MaxCommentLength)}, author.ID, author.Username)
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)

	_, err = f.comments.Create(ctx, 9999, CreateCommentInput{Content: "帖子不存在"}, author.ID, author.Username)
	assert.Equal(t, errorx.CodeNotFound, err.(*errorx.CodeError).Code)

	missing := uint(9999)
	_, err = f.comments.Create(ctx, post.ID, CreateCommentInput{Content: "父评论不存在", ParentID: &missing}, author.ID, author.Username)
	assert.Equal(t, errorx.CodeNotFound, err.(*errorx.CodeError).Code)
}

func TestCreateComment_ParentMustBelongToPost(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	postA := seedPost(t, f, author)
	postB := seedPost(t, f, author)
	parent := seedComment(t, f, postA, author, nil)

	_, err := f.comments.Create(ctx, postB.ID, CreateCommentInput{Content: "跨帖回复", ParentID: &parent.ID}, author.ID, author.Username)
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)
}

func TestListComments_CursorPagination(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	var ids []uint
	for i := 0; i < 5; i++ {
		cm := seedComment(t, f, post, author, nil)
		ids = append(ids, cm.ID)
	}

	page1, cursor, hasMore, err := f.comments.List(ctx, post.ID, 2, 0)
	require.NoError(t, err)
	require.Len(t, page1, 2)
	assert.True(t, hasMore)
	// 楼层顺序：最早的在前
	assert.Equal(t, ids[0], page1[0].ID)
	assert.Equal(t, ids[1], page1[1].ID)
	assert.Equal(t, ids[1], cursor)

	page2, cursor, hasMore, err := f.comments.List(ctx, post.ID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, page2, 2)
	assert.True(t, hasMore)
	assert.Equal(t, ids[2], page2[0].ID)

	page3, _, hasMore, err := f.comments.List(ctx, post.ID, 2, cursor)
	require.NoError(t, err)
	require.Len(t, page3, 1)
	assert.False(t, hasMore)
	assert.Equal(t, ids[4], page3[0].ID)
}

func TestListComments_SkipsDeleted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	keep := seedComment(t, f, post, author, nil)
	gone := seedComment(t, f, post, author, nil)
	require.NoError(t, f.comments.Delete(ctx, gone.ID, author.ID))

	comments, _, _, err := f.comments.List(ctx, post.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, keep.ID, comments[0].ID)
}

func TestUpdateComment_AppendsEditHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)
	root := seedComment(t, f, post, author, nil)
	comment := seedComment(t, f, post, author, &root.ID)
	original := comment.Content

	updated, err := f.comments.Update(ctx, comment.ID, author.ID, "改主意了")
	require.NoError(t, err)
	assert.Equal(t, "改主意了", updated.Content)

	// 编辑不触碰线程结构
	assert.Equal(t, comment.Depth, updated.Depth)
	require.NotNil(t, updated.ParentID)
	assert.Equal(t, root.ID, *updated.ParentID)
	require.NotNil(t, updated.RootID)
	assert.Equal(t, root.ID, *updated.RootID)

	var history []models.EditRecord
	require.NoError(t, json.Unmarshal(updated.EditHistory, &history))
	require.Len(t, history, 1)
	assert.Equal(t, original, history[0].Content)
	assert.False(t, history[0].EditedAt.IsZero())

	// 再编辑一次，历史追加而非覆盖
	updated, err = f.comments.Update(ctx, comment.ID, author.ID, "又改了")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(updated.EditHistory, &history))
	require.Len(t, history, 2)
	assert.Equal(t, "改主意了", history[1].Content)
}

func TestUpdateComment_AuthorOnly(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	other := seedUser(t, f, "bob")
	post := seedPost(t, f, author)
	comment := seedComment(t, f, post, author, nil)

	_, err := f.comments.Update(ctx, comment.ID, other.ID, "动别人的评论")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, err.(*errorx.CodeError).Code)
}

func TestDeleteComment_SoftDeleteAndCounter(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	author := seedUser(t, f, "alice")
	post := seedPost(t, f, author)

	root := seedComment(t, f, post, author, nil)
	reply := seedComment(t, f, post, author, &root.ID)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	require.Equal(t, 2, got.Stats.Comments)

	require.NoError(t, f.comments.Delete(ctx, reply.ID, author.ID))

	got, err = f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.Comments)

	// 软删除：记录仍在，状态翻转
	raw, err := f.store.GetComment(ctx, reply.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusDeleted, raw.Status)

	// 重复删除视为不存在
	err = f.comments.Delete(ctx, reply.ID, author.ID)
	assert.ErrorIs(t, err, errorx.ErrNotFound)
}

func TestDeleteComment_AuthorOnly(t *testing.T) {
	f := newFixture(t)
	author := seedUser(t, f, "alice")
	other := seedUser(t, f, "bob")
	post := seedPost(t, f, author)
	comment := seedComment(t, f, post, author, nil)

	err := f.comments.Delete(context.Background(), comment.ID, other.ID)
	require.Error(t, err)
	assert.Equal(t, errorx.CodeForbidden, err.(*errorx.CodeError).Code)
}

func TestCommentNotifications(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	carol := seedUser(t, f, "carol")
	post := seedPost(t, f, alice)

	// bob 评论 alice 的帖子 → alice 收到 comment_post 通知
	bobComment := seedComment(t, f, post, bob, nil)

	items, _, _, err := f.notifications.List(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationTypeCommentPost, items[0].Type)
	require.NotNil(t, items[0].ActorID)
	assert.Equal(t, bob.ID, *items[0].ActorID)
	require.NotNil(t, items[0].RelatedPostID)
	assert.Equal(t, post.ID, *items[0].RelatedPostID)

	// carol 回复 bob 的评论 → bob 收到回复通知，帖子作者 alice 也收到新评论通知
	_ = seedComment(t, f, post, carol, &bobComment.ID)

	items, _, _, err = f.notifications.List(ctx, bob.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationTypeReplyComment, items[0].Type)

	items, _, _, err = f.notifications.List(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, models.NotificationTypeCommentPost, items[0].Type)

	// 自己评论自己的帖子不产生通知
	_ = seedComment(t, f, post, alice, nil)
	count, err := f.notifications.UnreadCount(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestCommentNotifications_ReplyToPostAuthorNotDuplicated(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)
	aliceComment := seedComment(t, f, post, alice, nil)

	// bob 回复帖子作者自己的评论 → alice 只收到一条回复通知，不再叠加评论通知
	_ = seedComment(t, f, post, bob, &aliceComment.ID)

	items, _, _, err := f.notifications.List(ctx, alice.ID, 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, models.NotificationTypeReplyComment, items[0].Type)
}
