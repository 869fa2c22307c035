package handlers

import (
	"strconv"

	"swingconnect/internal/models"
	"swingconnect/internal/services"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	posts      *services.PostService
	engagement *services.EngagementService
	hot        *services.HotBoard
}

func NewPostHandler(posts *services.PostService, engagement *services.EngagementService, hot *services.HotBoard) *PostHandler {
	return &PostHandler{posts: posts, engagement: engagement, hot: hot}
}

type createPostRequest struct {
	Title           string                  `json:"title" binding:"required,max=120"`
	Content         string                  `json:"content"`
	Category        string                  `json:"category" binding:"required,category"`
	Visibility      string                  `json:"visibility" binding:"omitempty,oneof=public members"`
	EventInfo       *models.EventInfo       `json:"event_info"`
	MarketplaceInfo *models.MarketplaceInfo `json:"marketplace_info"`
}

// Create POST /api/posts
func (h *PostHandler) Create(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	post, err := h.posts.Create(c.Request.Context(), services.CreatePostInput{
		Title:           req.Title,
		Content:         req.Content,
		Category:        req.Category,
		Visibility:      req.Visibility,
		EventInfo:       req.EventInfo,
		MarketplaceInfo: req.MarketplaceInfo,
	}, user.ID, user.Username)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, post)
}

// Get GET /api/posts/:pid 详情，附带服务端渲染后的 HTML 与当前用户点赞状态
func (h *PostHandler) Get(c *gin.Context) {
	post, err := h.posts.Get(c.Request.Context(), c.Param("pid"))
	if err != nil {
		Fail(c, err)
		return
	}

	liked := false
	if user := currentUser(c); user != nil {
		likes, err := h.engagement.UserLikes(c.Request.Context(),
			models.TargetPost, []uint{post.ID}, user.ID)
		if err == nil {
			liked = likes[post.ID]
		}
	}

	OK(c, gin.H{
		"post":         post,
		"content_html": utils.RenderMarkdown(post.Content),
		"liked":        liked,
	})
}

// List GET /api/posts?category=&page=&per_page=
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "20"))

	posts, total, err := h.posts.List(c.Request.Context(), c.Query("category"), page, perPage)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"posts": posts, "total": total, "page": page})
}

// Hot GET /api/posts/hot 热榜
func (h *PostHandler) Hot(c *gin.Context) {
	n, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	posts, err := h.hot.Top(c.Request.Context(), n)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, gin.H{"posts": posts})
}

type updatePostRequest struct {
	Title           *string                 `json:"title"`
	Content         *string                 `json:"content"`
	EventInfo       *models.EventInfo       `json:"event_info"`
	MarketplaceInfo *models.MarketplaceInfo `json:"marketplace_info"`
}

// Update PUT /api/posts/:pid
func (h *PostHandler) Update(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	post, err := h.posts.Update(c.Request.Context(), c.Param("pid"), user.ID, services.UpdatePostInput{
		Title:           req.Title,
		Content:         req.Content,
		EventInfo:       req.EventInfo,
		MarketplaceInfo: req.MarketplaceInfo,
	})
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, post)
}

// Delete DELETE /api/posts/:pid
func (h *PostHandler) Delete(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	if err := h.posts.Delete(c.Request.Context(), c.Param("pid"), user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

// JoinEvent POST /api/posts/:pid/join
func (h *PostHandler) JoinEvent(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	post, err := h.posts.JoinEvent(c.Request.Context(), c.Param("pid"), user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, post)
}

// LeaveEvent POST /api/posts/:pid/leave
func (h *PostHandler) LeaveEvent(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	post, err := h.posts.LeaveEvent(c.Request.Context(), c.Param("pid"), user.ID)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, post)
}
