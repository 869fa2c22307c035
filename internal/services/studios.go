package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"
)

const studioCacheTTL = 5 * time.Minute

// StudioService 工作室目录，管理员录入、全员可查
type StudioService struct {
	store storage.Store
}

func NewStudioService(store storage.Store) *StudioService {
	return &StudioService{store: store}
}

type CreateStudioInput struct {
	Name        string
	City        string
	Address     string
	Description string
	Website     string
	DanceStyles string
}

func (s *StudioService) Create(ctx context.Context, in CreateStudioInput) (*models.Studio, error) {
	name := strings.TrimSpace(in.Name)
	city := strings.TrimSpace(in.City)
	if name == "" || city == "" {
		return nil, errorx.New(errorx.CodeInvalidParam, "名称和城市不能为空")
	}

	studio := &models.Studio{
		Name:        name,
		City:        city,
		Address:     in.Address,
		Description: in.Description,
		Website:     in.Website,
		DanceStyles: in.DanceStyles,
	}
	if err := s.store.CreateStudio(ctx, studio); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errorx.New(errorx.CodeInvalidParam, "工作室已存在")
		}
		return nil, err
	}
	utils.GetCache().Delete(studioCacheKey(city))
	utils.GetCache().Delete(studioCacheKey(""))
	return studio, nil
}

func (s *StudioService) Get(ctx context.Context, id uint) (*models.Studio, error) {
	studio, err := s.store.GetStudio(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	return studio, nil
}

// List 按城市筛选，style 非空时在逗号分隔的舞种里做包含匹配
// 目录变动少，按城市缓存 5 分钟
func (s *StudioService) List(ctx context.Context, city, style string) ([]models.Studio, error) {
	city = strings.TrimSpace(city)

	var studios []models.Studio
	if cached := utils.GetCache().Get(studioCacheKey(city)); cached != nil {
		studios = cached.([]models.Studio)
	} else {
		var err error
		studios, err = s.store.ListStudios(ctx, city)
		if err != nil {
			return nil, err
		}
		utils.GetCache().Set(studioCacheKey(city), studios, studioCacheTTL)
	}
	style = strings.ToLower(strings.TrimSpace(style))
	if style == "" {
		return studios, nil
	}

	filtered := make([]models.Studio, 0, len(studios))
	for _, st := range studios {
		for _, have := range strings.Split(st.DanceStyles, ",") {
			if strings.ToLower(strings.TrimSpace(have)) == style {
				filtered = append(filtered, st)
				break
			}
		}
	}
	return filtered, nil
}

func studioCacheKey(city string) string {
	return "studios:" + city
}
