package handlers

import (
	"swingconnect/internal/services"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type StudioHandler struct {
	studios *services.StudioService
}

func NewStudioHandler(studios *services.StudioService) *StudioHandler {
	return &StudioHandler{studios: studios}
}

// List GET /api/studios?city=&style=
func (h *StudioHandler) List(c *gin.Context) {
	studios, err := h.studios.List(c.Request.Context(), c.Query("city"), c.Query("style"))
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"studios": studios})
}

// Get GET /api/studios/:id
func (h *StudioHandler) Get(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	studio, err := h.studios.Get(c.Request.Context(), id)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, studio)
}

type createStudioRequest struct {
	Name        string `json:"name" binding:"required,max=100"`
	City        string `json:"city" binding:"required,max=50"`
	Address     string `json:"address" binding:"max=200"`
	Description string `json:"description"`
	Website     string `json:"website" binding:"omitempty,url"`
	DanceStyles string `json:"dance_styles" binding:"max=200"`
}

// Create POST /api/admin/studios 管理员录入
func (h *StudioHandler) Create(c *gin.Context) {
	var req createStudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	studio, err := h.studios.Create(c.Request.Context(), services.CreateStudioInput{
		Name:        req.Name,
		City:        req.City,
		Address:     req.Address,
		Description: req.Description,
		Website:     req.Website,
		DanceStyles: req.DanceStyles,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, studio)
}
