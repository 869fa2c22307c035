package middleware

import (
	"net/http"

	"swingconnect/internal/models"
	"swingconnect/internal/storage"
	"swingconnect/pkg/errorx"
	"swingconnect/pkg/log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 上下文键
const (
	CheckUserKey   = "currentUser"
	UnreadCountKey = "unreadCount"

	sessionUserID = "user_id"
)

// LoadUser 从 session 加载当前用户与未读通知数放入上下文
// 未登录请求正常放行，只是上下文里没有用户
func LoadUser(store storage.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		v := session.Get(sessionUserID)
		if v == nil {
			c.Next()
			return
		}
		userID, ok := v.(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := store.GetUser(c.Request.Context(), userID)
		if err != nil {
			// session 里残留的失效用户，清掉
			session.Delete(sessionUserID)
			_ = session.Save()
			c.Next()
			return
		}
		c.Set(CheckUserKey, user)

		unread, err := store.CountUnreadNotifications(c.Request.Context(), user.ID)
		if err != nil {
			log.L.Warn("count unread notifications failed",
				zap.Uint("user_id", user.ID), zap.Error(err))
		} else {
			c.Set(UnreadCountKey, unread)
		}
		c.Next()
	}
}

// AuthRequired 登录校验，未登录返回 401
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := c.Get(CheckUserKey); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeNeedLogin,
				"msg":  errorx.ErrNeedLogin.Msg,
			})
			return
		}
		c.Next()
	}
}

// AdminRequired 管理员校验，需在 AuthRequired 之后挂载
func AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		v, ok := c.Get(CheckUserKey)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code": errorx.CodeNeedLogin,
				"msg":  errorx.ErrNeedLogin.Msg,
			})
			return
		}
		user, _ := v.(*models.User)
		if user == nil || user.Role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"code": errorx.CodeForbidden,
				"msg":  errorx.ErrForbidden.Msg,
			})
			return
		}
		c.Next()
	}
}

// SaveLogin 登录成功后写 session
func SaveLogin(c *gin.Context, userID uint) error {
	session := sessions.Default(c)
	session.Set(sessionUserID, userID)
	return session.Save()
}

// ClearLogin 退出登录清 session
func ClearLogin(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	return session.Save()
}
