package errorx

import "fmt"

// CodeError 带业务错误码的自定义错误
// 服务层返回，Handler 根据错误码映射 HTTP 状态并下发给前端
type CodeError struct {
	Code int    // 业务错误码
	Msg  string // 错误消息
}

// Error 实现 error 接口
func (e *CodeError) Error() string {
	return e.Msg
}

// New 创建一个新的 CodeError
func New(code int, msg string) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  msg,
	}
}

// Newf 创建一个带格式化消息的 CodeError
func Newf(code int, format string, args ...any) *CodeError {
	return &CodeError{
		Code: code,
		Msg:  fmt.Sprintf(format, args...),
	}
}

// 业务错误码常量定义
const (
	CodeInvalidParam    = 1001
	CodeUserExist       = 1002
	CodeUserNotExist    = 1003
	CodeInvalidPassword = 1004
	CodeServerBusy      = 1005
	CodeNeedLogin       = 1006
	CodeNotFound        = 1007
	CodeForbidden       = 1008
	CodeAlreadyReported = 1009
	CodeUserPunished    = 1010 // 禁言/封禁
	CodeEventFull       = 1011
)

// 预定义常用错误实例（服务层可直接返回）
var (
	ErrInvalidParam    = New(CodeInvalidParam, "请求参数错误")
	ErrUserExist       = New(CodeUserExist, "邮箱已注册")
	ErrUserNotExist    = New(CodeUserNotExist, "用户不存在")
	ErrInvalidPassword = New(CodeInvalidPassword, "邮箱或密码错误")
	ErrServerBusy      = New(CodeServerBusy, "服务繁忙，请稍后重试")
	ErrNeedLogin       = New(CodeNeedLogin, "请先登录")
	ErrNotFound        = New(CodeNotFound, "内容不存在")
	ErrForbidden       = New(CodeForbidden, "无权执行此操作")
	ErrAlreadyReported = New(CodeAlreadyReported, "您已举报过该内容")
	ErrUserPunished    = New(CodeUserPunished, "账号已被限制，无法操作")
	ErrEventFull       = New(CodeEventFull, "活动人数已满")
)
