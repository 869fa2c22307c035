package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
)

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.users.Register(ctx, "Lindy.Hopper@Example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, "lindy.hopper@example.com", user.Email)
	assert.Equal(t, "lindy.hopper", user.Username) // 默认取邮箱前缀
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "password123", user.Password)

	// 重复邮箱
	_, err = f.users.Register(ctx, "lindy.hopper@example.com", "password456")
	assert.ErrorIs(t, err, errorx.ErrUserExist)
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "not-an-email", "password123")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, err.(*errorx.CodeError).Code)

	_, err = f.users.Register(ctx, "short@example.com", "12345")
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, err.(*errorx.CodeError).Code)
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	registered := seedUser(t, f, "alice")

	user, err := f.users.Login(ctx, "alice@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = f.users.Login(ctx, "alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, errorx.ErrInvalidPassword)

	_, err = f.users.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, errorx.ErrUserNotExist)
}

func TestLogin_BannedUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := seedUser(t, f, "alice")

	user.Status = models.UserStatusBanned
	require.NoError(t, f.store.UpdateUser(ctx, user))

	_, err := f.users.Login(ctx, "alice@example.com", "password123")
	assert.ErrorIs(t, err, errorx.ErrUserPunished)
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := seedUser(t, f, "alice")

	name := "AliceSwing"
	role := models.DanceRoleFollower
	years := 5
	updated, err := f.users.UpdateProfile(ctx, user.ID, UpdateProfileInput{
		Username:   &name,
		DanceRole:  &role,
		DanceYears: &years,
	})
	require.NoError(t, err)
	assert.Equal(t, "AliceSwing", updated.Username)
	assert.Equal(t, models.DanceRoleFollower, updated.DanceRole)
	assert.Equal(t, 5, updated.DanceYears)

	bad := "spectator"
	_, err = f.users.UpdateProfile(ctx, user.ID, UpdateProfileInput{DanceRole: &bad})
	require.Error(t, err)
	assert.Equal(t, errorx.CodeInvalidParam, err.(*errorx.CodeError).Code)
}
