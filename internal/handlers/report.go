package handlers

import (
	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reports *services.ReportService
}

func NewReportHandler(reports *services.ReportService) *ReportHandler {
	return &ReportHandler{reports: reports}
}

type createReportRequest struct {
	TargetType  string `json:"target_type" binding:"required,targettype"`
	TargetID    uint   `json:"target_id" binding:"required"`
	Reason      string `json:"reason" binding:"required,max=50"`
	Description string `json:"description" binding:"max=500"`
}

// Create POST /api/reports 举报内容，重复举报返回已举报错误
func (h *ReportHandler) Create(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	report, err := h.reports.Create(c.Request.Context(),
		req.TargetType, req.TargetID, user.ID, req.Reason, req.Description)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, report)
}
