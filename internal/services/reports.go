package services

import (
	"context"
	"errors"
	"strings"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/pkg/errorx"
)

// ReportService 举报的提交与管理员处理
type ReportService struct {
	store storage.Store
}

func NewReportService(store storage.Store) *ReportService {
	return &ReportService{store: store}
}

// Create 提交举报并自增目标的举报计数
// 同一用户对同一目标只能举报一次，重复提交返回 ErrAlreadyReported，
// 计数不会被刷高
func (s *ReportService) Create(ctx context.Context, targetType string, targetID, reporterID uint, reason, description string) (*models.Report, error) {
	if targetType != models.TargetPost && targetType != models.TargetComment {
		return nil, errorx.ErrInvalidParam
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, errorx.ErrInvalidParam
	}

	// 目标必须存在
	if targetType == models.TargetPost {
		if _, err := s.store.GetPost(ctx, targetID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errorx.ErrNotFound
			}
			return nil, err
		}
	} else {
		if _, err := s.store.GetComment(ctx, targetID); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return nil, errorx.ErrNotFound
			}
			return nil, err
		}
	}

	report := &models.Report{
		TargetType:  targetType,
		TargetID:    targetID,
		ReporterID:  reporterID,
		Reason:      reason,
		Description: description,
		Status:      models.ReportStatusPending,
	}
	if err := s.store.CreateReport(ctx, report); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			return nil, errorx.ErrAlreadyReported
		}
		return nil, err
	}

	if targetType == models.TargetPost {
		if err := s.store.IncrPostStat(ctx, targetID, "reports", 1); err != nil {
			return nil, err
		}
	} else {
		if err := s.store.IncrCommentField(ctx, targetID, "reports", 1); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// ListPending 管理员查看待处理举报
func (s *ReportService) ListPending(ctx context.Context, limit int) ([]models.Report, error) {
	return s.store.ListReports(ctx, models.ReportStatusPending, limit)
}

// Resolve 管理员处理举报，status 为 resolved 或 rejected
func (s *ReportService) Resolve(ctx context.Context, reportID uint, status string) (*models.Report, error) {
	if status != models.ReportStatusResolved && status != models.ReportStatusRejected {
		return nil, errorx.ErrInvalidParam
	}
	report, err := s.store.GetReport(ctx, reportID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, errorx.ErrNotFound
		}
		return nil, err
	}
	report.Status = status
	if err := s.store.UpdateReport(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}
