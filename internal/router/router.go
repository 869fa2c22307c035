package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"swingconnect/internal/handlers"
	"swingconnect/internal/middleware"
	"swingconnect/internal/storage"
)

// Handlers 路由依赖的全部处理器
type Handlers struct {
	Auth         *handlers.AuthHandler
	Post         *handlers.PostHandler
	Comment      *handlers.CommentHandler
	Like         *handlers.LikeHandler
	Report       *handlers.ReportHandler
	Notification *handlers.NotificationHandler
	Studio       *handlers.StudioHandler
	Admin        *handlers.AdminHandler
}

// New 组装 gin 引擎：session、用户加载中间件与全部路由
func New(h Handlers, store storage.Store, sessionSecret string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	sessionStore := cookie.NewStore([]byte(sessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
	})
	r.Use(sessions.Sessions("swingconnect_session", sessionStore))
	r.Use(middleware.LoadUser(store))

	api := r.Group("/api")
	{
		// 无需登录
		api.POST("/auth/register", h.Auth.Register)
		api.POST("/auth/login", h.Auth.Login)

		api.GET("/posts", h.Post.List)
		api.GET("/posts/hot", h.Post.Hot)
		api.GET("/posts/:pid", h.Post.Get)
		api.GET("/posts/:pid/comments", h.Comment.List)

		api.GET("/studios", h.Studio.List)
		api.GET("/studios/:id", h.Studio.Get)
	}

	authed := api.Group("", middleware.AuthRequired())
	{
		authed.POST("/auth/logout", h.Auth.Logout)
		authed.GET("/auth/me", h.Auth.Me)
		authed.PUT("/auth/profile", h.Auth.UpdateProfile)

		authed.POST("/posts", h.Post.Create)
		authed.PUT("/posts/:pid", h.Post.Update)
		authed.DELETE("/posts/:pid", h.Post.Delete)
		authed.POST("/posts/:pid/join", h.Post.JoinEvent)
		authed.POST("/posts/:pid/leave", h.Post.LeaveEvent)

		authed.POST("/posts/:pid/comments", h.Comment.Create)
		authed.PUT("/comments/:id", h.Comment.Update)
		authed.DELETE("/comments/:id", h.Comment.Delete)

		authed.POST("/likes", h.Like.Toggle)
		authed.POST("/reports", h.Report.Create)

		authed.GET("/notifications", h.Notification.List)
		authed.GET("/notifications/unread_count", h.Notification.UnreadCount)
		authed.POST("/notifications/read_all", h.Notification.MarkAllRead)
		authed.POST("/notifications/:id/read", h.Notification.MarkRead)
	}

	admin := api.Group("/admin", middleware.AuthRequired(), middleware.AdminRequired())
	{
		admin.GET("/reports", h.Admin.ListReports)
		admin.POST("/reports/:id/resolve", h.Admin.ResolveReport)
		admin.POST("/posts/:id/hide", h.Admin.HidePost)
		admin.POST("/studios", h.Studio.Create)
	}

	return r
}
