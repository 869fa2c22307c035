package handlers

import (
	"errors"
	"net/http"

	"swingconnect/internal/middleware"
	"swingconnect/internal/models"
	"swingconnect/pkg/errorx"
	"swingconnect/pkg/log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一 JSON 出参结构
type Response struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
	Data any    `json:"data,omitempty"`
}

// OK 成功响应，code 固定为 0
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Response{Code: 0, Msg: "success", Data: data})
}

// Fail 失败响应：业务错误按错误码映射 HTTP 状态，
// 其余错误一律 500 并只下发通用提示
func Fail(c *gin.Context, err error) {
	var ce *errorx.CodeError
	if errors.As(err, &ce) {
		c.JSON(httpStatus(ce.Code), Response{Code: ce.Code, Msg: ce.Msg})
		return
	}
	log.L.Error("request failed",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err))
	c.JSON(http.StatusInternalServerError, Response{
		Code: errorx.CodeServerBusy,
		Msg:  errorx.ErrServerBusy.Msg,
	})
}

func httpStatus(code int) int {
	switch code {
	case errorx.CodeInvalidParam, errorx.CodeUserExist, errorx.CodeInvalidPassword,
		errorx.CodeAlreadyReported, errorx.CodeEventFull:
		return http.StatusBadRequest
	case errorx.CodeNeedLogin:
		return http.StatusUnauthorized
	case errorx.CodeForbidden, errorx.CodeUserPunished:
		return http.StatusForbidden
	case errorx.CodeNotFound, errorx.CodeUserNotExist:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// currentUser 从中间件注入的上下文里取登录用户，未登录返回 nil
func currentUser(c *gin.Context) *models.User {
	v, ok := c.Get(middleware.CheckUserKey)
	if !ok {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// mustUser 取登录用户，未登录直接写 401 并返回 nil
func mustUser(c *gin.Context) *models.User {
	user := currentUser(c)
	if user == nil {
		Fail(c, errorx.ErrNeedLogin)
	}
	return user
}
