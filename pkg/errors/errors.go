package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// AppError 自定义应用错误
// 设计说明：
// 1. Code是业务错误码，前三位决定HTTP状态码（见HTTPStatus）
// 2. Message是返回给客户端的提示信息
// 3. Err是内部错误，仅记录到日志，不返回给客户端
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap 支持errors.Is和errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus 根据错误码区间映射HTTP状态码
// 冲突类错误（409xx）按400返回
func (e *AppError) HTTPStatus() int {
	switch e.Code / 100 {
	case 400, 409:
		return http.StatusBadRequest
	case 401:
		return http.StatusUnauthorized
	case 403:
		return http.StatusForbidden
	case 404:
		return http.StatusNotFound
	case 422:
		return http.StatusUnprocessableEntity
	case 429:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// New 创建新的AppError
func New(code int, message string) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
	}
}

// Newf 格式化创建AppError
func Newf(code int, format string, args ...interface{}) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap 包装系统错误（如数据库错误、网络错误）
func Wrap(err error, message string) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: message,
		Err:     err,
	}
}

// Wrapf 格式化包装错误
func Wrapf(err error, format string, args ...interface{}) *AppError {
	return &AppError{
		Code:    ErrCodeInternal,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}

// =========================================
// 错误码定义
// =========================================
// 规范：
// - 400xx: 参数校验失败
// - 401xx: 认证失败
// - 403xx: 权限不足
// - 404xx: 资源不存在
// - 409xx: 业务冲突（被引用、重复、引用不存在的记录）
// - 422xx: 输入格式无法处理（日期格式错误）
// - 429xx: 请求过于频繁
// - 500xx: 服务端错误

const (
	// 系统级错误码
	ErrCodeInternal      = 50000
	ErrCodeDatabaseError = 50001
	ErrCodeRedisError    = 50002

	// 参数错误
	ErrCodeInvalidParams = 40000
	ErrCodeBindError     = 40001
	ErrCodeMissingFields = 40002
	ErrCodeWeakPassword  = 40003

	// 认证授权
	ErrCodeUnauthorized       = 40100
	ErrCodeInvalidToken       = 40101
	ErrCodeTokenExpired       = 40102
	ErrCodeInvalidCredentials = 40103
	ErrCodeForbidden          = 40300

	// 资源不存在
	ErrCodeNotFound      = 40400
	ErrCodeUserNotFound  = 40401
	ErrCodeBookNotFound  = 40402
	ErrCodeOrderNotFound = 40403

	// 业务冲突
	ErrCodeConflict         = 40900
	ErrCodeDuplicateEntry   = 40901
	ErrCodeHasDependents    = 40902
	ErrCodeUnknownReference = 40903

	// 格式错误
	ErrCodeUnprocessable = 42200
	ErrCodeInvalidDate   = 42201

	ErrCodeTooManyRequests = 42900
)

// =========================================
// 预定义错误
// =========================================

var (
	ErrInternal      = New(ErrCodeInternal, "Internal server error")
	ErrDatabaseError = New(ErrCodeDatabaseError, "Database error")
	ErrRedisError    = New(ErrCodeRedisError, "Cache service error")

	ErrUnauthorized       = New(ErrCodeUnauthorized, "Missing authorization token")
	ErrInvalidToken       = New(ErrCodeInvalidToken, "Invalid token")
	ErrTokenExpired       = New(ErrCodeTokenExpired, "Token has expired")
	ErrTokenRevoked       = New(ErrCodeInvalidToken, "Token has been revoked")
	ErrInvalidCredentials = New(ErrCodeInvalidCredentials, "Invalid credentials")
	ErrForbidden          = New(ErrCodeForbidden, "Admin privileges required")

	ErrUserNotFound = New(ErrCodeUserNotFound, "User not found")

	ErrEmailDuplicate    = New(ErrCodeDuplicateEntry, "Email is already registered")
	ErrUsernameDuplicate = New(ErrCodeDuplicateEntry, "Username is already taken")
	ErrWeakPassword      = New(ErrCodeWeakPassword, "Password must be 8-64 characters and contain letters and digits")

	ErrInvalidParams   = New(ErrCodeInvalidParams, "Invalid parameters")
	ErrBindError       = New(ErrCodeBindError, "Malformed request body")
	ErrTooManyRequests = New(ErrCodeTooManyRequests, "Too many requests")
)

// =========================================
// 辅助函数
// =========================================

// Validation 参数校验错误
func Validation(message string) *AppError {
	return New(ErrCodeInvalidParams, message)
}

// NotFound 资源不存在错误，例如 NotFound("Book") → "Book not found"
func NotFound(resource string) *AppError {
	return New(ErrCodeNotFound, resource+" not found")
}

// Conflict 业务冲突错误
func Conflict(message string) *AppError {
	return New(ErrCodeConflict, message)
}

// Unprocessable 输入格式错误
func Unprocessable(message string) *AppError {
	return New(ErrCodeUnprocessable, message)
}

// MissingFields 缺少必填字段
// 例如：MissingFields("BookID", "Title") → "BookID and Title are required"
func MissingFields(fields ...string) *AppError {
	if len(fields) == 1 {
		return New(ErrCodeMissingFields, fields[0]+" is required")
	}
	return New(ErrCodeMissingFields, joinFields(fields)+" are required")
}

// joinFields 按"A, B, and C"格式拼接字段名
func joinFields(fields []string) string {
	switch len(fields) {
	case 0:
		return "Fields"
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}

// IsAppError 判断是否为AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError 提取AppError（如果不是AppError则包装成Internal错误）
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Wrap(err, "Internal server error")
}

// HasCode 判断错误链中是否包含指定错误码
func HasCode(err error, code int) bool {
	var appErr *AppError
	return errors.As(err, &appErr) && appErr.Code == code
}
