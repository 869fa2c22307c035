package services

import (
	"context"
	"errors"
	"strings"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"
)

// UserService 注册/登录/资料维护
type UserService struct {
	store storage.Store
}

func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// Register 邮箱注册，用户名默认取邮箱前缀
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, errorx.New(errorx.CodeInvalidParam, "邮箱格式不正确")
	}
	if len(password) < 6 {
		return nil, errorx.New(errorx.CodeInvalidParam, "密码至少 6 位")
	}

	if _, err := s.store.GetUserByEmail(ctx, email); err == nil {
		return nil, errorx.ErrUserExist
	} else if !errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: strings.SplitN(email, "@", 2)[0],
		Email:    email,
		Password: hashed,
		Role:     models.RoleUser,
		Status:   models.UserStatusNormal,
	}
	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errorx.ErrUserExist
		}
		return nil, err
	}
	return user, nil
}

// Login 校验邮箱密码，封禁用户不允许登录
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrUserNotExist
		}
		return nil, err
	}
	if !utils.CheckPassword(password, user.Password) {
		return nil, errorx.ErrInvalidPassword
	}
	if user.Status == models.UserStatusBanned {
		return nil, errorx.ErrUserPunished
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.store.GetUser(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrUserNotExist
		}
		return nil, err
	}
	return user, nil
}

// UpdateProfileInput nil 字段不改动
type UpdateProfileInput struct {
	Username   *string
	Bio        *string
	DanceRole  *string
	DanceYears *int
}

// UpdateProfile 更新个人资料
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in UpdateProfileInput) (*models.User, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		name := strings.TrimSpace(*in.Username)
		if name == "" {
			return nil, errorx.New(errorx.CodeInvalidParam, "用户名不能为空")
		}
		user.Username = name
	}
	if in.Bio != nil {
		user.Bio = *in.Bio
	}
	if in.DanceRole != nil {
		switch *in.DanceRole {
		case models.DanceRoleLeader, models.DanceRoleFollower, models.DanceRoleBoth:
			user.DanceRole = *in.DanceRole
		default:
			return nil, errorx.New(errorx.CodeInvalidParam, "舞蹈角色不正确")
		}
	}
	if in.DanceYears != nil {
		if *in.DanceYears < 0 {
			return nil, errorx.ErrInvalidParam
		}
		user.DanceYears = *in.DanceYears
	}

	if err := s.store.UpdateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errorx.New(errorx.CodeUserExist, "用户名已被占用")
		}
		return nil, err
	}
	return user, nil
}
