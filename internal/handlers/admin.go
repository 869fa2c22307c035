package handlers

import (
	"strconv"

	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

// AdminHandler 举报处理后台
type AdminHandler struct {
	reports *services.ReportService
	posts   *services.PostService
}

func NewAdminHandler(reports *services.ReportService, posts *services.PostService) *AdminHandler {
	return &AdminHandler{reports: reports, posts: posts}
}

// ListReports GET /api/admin/reports 待处理举报队列
func (h *AdminHandler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	reports, err := h.reports.ListPending(c.Request.Context(), limit)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"reports": reports})
}

type resolveReportRequest struct {
	Status string `json:"status" binding:"required,oneof=resolved rejected"`
}

// ResolveReport POST /api/admin/reports/:id/resolve
func (h *AdminHandler) ResolveReport(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	var req resolveReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	report, err := h.reports.Resolve(c.Request.Context(), id, req.Status)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, report)
}

// HidePost POST /api/admin/posts/:id/hide 违规帖子下架
func (h *AdminHandler) HidePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.posts.Hide(c.Request.Context(), id); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}
