package handlers

import (
	"strconv"

	"swingconnect/internal/models"
	"swingconnect/internal/services"
	"swingconnect/internal/utils"
	"swingconnect/pkg/errorx"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	comments   *services.CommentService
	engagement *services.EngagementService
	posts      *services.PostService
}

func NewCommentHandler(comments *services.CommentService, engagement *services.EngagementService, posts *services.PostService) *CommentHandler {
	return &CommentHandler{comments: comments, engagement: engagement, posts: posts}
}

// commentView 列表项：原始正文之外附带渲染好的 HTML 和点赞状态
type commentView struct {
	models.Comment
	ContentHTML string `json:"content_html"`
	Liked       bool   `json:"liked"`
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required"`
	ParentID *uint  `json:"parent_id"`
}

// Create POST /api/posts/:pid/comments
func (h *CommentHandler) Create(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	post, err := h.posts.Lookup(c.Request.Context(), c.Param("pid"))
	if err != nil {
		Fail(c, err)
		return
	}
	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	comment, err := h.comments.Create(c.Request.Context(), post.ID, services.CreateCommentInput{
		Content:  req.Content,
		ParentID: req.ParentID,
	}, user.ID, user.Username)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, comment)
}

// List GET /api/posts/:pid/comments?page_size=&cursor=
// 登录用户会附带每条评论的点赞状态
func (h *CommentHandler) List(c *gin.Context) {
	post, err := h.posts.Lookup(c.Request.Context(), c.Param("pid"))
	if err != nil {
		Fail(c, err)
		return
	}
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	cursor, _ := strconv.ParseUint(c.DefaultQuery("cursor", "0"), 10, 64)

	comments, next, hasMore, err := h.comments.List(c.Request.Context(), post.ID, pageSize, uint(cursor))
	if err != nil {
		Fail(c, err)
		return
	}

	liked := map[uint]bool{}
	if user := currentUser(c); user != nil && len(comments) > 0 {
		ids := make([]uint, 0, len(comments))
		for _, cm := range comments {
			ids = append(ids, cm.ID)
		}
		if m, err := h.engagement.UserLikes(c.Request.Context(), models.TargetComment, ids, user.ID); err == nil {
			liked = m
		}
	}

	views := make([]commentView, 0, len(comments))
	for _, cm := range comments {
		views = append(views, commentView{
			Comment:     cm,
			ContentHTML: utils.RenderMarkdown(cm.Content),
			Liked:       liked[cm.ID],
		})
	}

	OK(c, gin.H{
		"comments": views,
		"cursor":   next,
		"has_more": hasMore,
	})
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// Update PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}

	comment, err := h.comments.Update(c.Request.Context(), id, user.ID, req.Content)
	if err != nil {
		Fail(c, err)
		return
	}
	OK(c, comment)
}

// Delete DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	user := mustUser(c)
	if user == nil {
		return
	}
	id, err := parseUintParam(c, "id")
	if err != nil {
		Fail(c, errorx.ErrInvalidParam)
		return
	}
	if err := h.comments.Delete(c.Request.Context(), id, user.ID); err != nil {
		Fail(c, err)
		return
	}
	OK(c, nil)
}

func parseUintParam(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v), err
}
