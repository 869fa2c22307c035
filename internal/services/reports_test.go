package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
)

func TestCreateReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)

	report, err := f.reports.Create(ctx, models.TargetPost, post.ID, bob.ID, "spam", "全是广告")
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusPending, report.Status)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.Reports)
}

func TestCreateReport_DuplicateRejected(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	carol := seedUser(t, f, "carol")
	post := seedPost(t, f, alice)

	_, err := f.reports.Create(ctx, models.TargetPost, post.ID, bob.ID, "spam", "")
	require.NoError(t, err)

	// 同一用户重复举报被拒绝，计数不被刷高
	_, err = f.reports.Create(ctx, models.TargetPost, post.ID, bob.ID, "spam", "再来一次")
	assert.ErrorIs(t, err, errorx.ErrAlreadyReported)

	got, err := f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Stats.Reports)

	// 其他用户照常可以举报
	_, err = f.reports.Create(ctx, models.TargetPost, post.ID, carol.ID, "harassment", "")
	require.NoError(t, err)

	got, err = f.store.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Stats.Reports)
}

func TestCreateReport_CommentTarget(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)
	comment := seedComment(t, f, post, alice, nil)

	_, err := f.reports.Create(ctx, models.TargetComment, comment.ID, bob.ID, "offensive", "")
	require.NoError(t, err)

	got, err := f.store.GetComment(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Reports)
}

func TestCreateReport_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	bob := seedUser(t, f, "bob")

	_, err := f.reports.Create(ctx, "user", 1, bob.ID, "spam", "")
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)

	_, err = f.reports.Create(ctx, models.TargetPost, 9999, bob.ID, "spam", "")
	assert.ErrorIs(t, err, errorx.ErrNotFound)

	alice := seedUser(t, f, "alice")
	post := seedPost(t, f, alice)
	_, err = f.reports.Create(ctx, models.TargetPost, post.ID, bob.ID, "  ", "")
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)
}

func TestResolveReport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := seedUser(t, f, "alice")
	bob := seedUser(t, f, "bob")
	post := seedPost(t, f, alice)

	report, err := f.reports.Create(ctx, models.TargetPost, post.ID, bob.ID, "spam", "")
	require.NoError(t, err)

	pending, err := f.reports.ListPending(ctx, 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)

	resolved, err := f.reports.Resolve(ctx, report.ID, models.ReportStatusResolved)
	require.NoError(t, err)
	assert.Equal(t, models.ReportStatusResolved, resolved.Status)

	pending, err = f.reports.ListPending(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)

	// 只接受 resolved / rejected
	_, err = f.reports.Resolve(ctx, report.ID, "pending")
	assert.ErrorIs(t, err, errorx.ErrInvalidParam)
}
