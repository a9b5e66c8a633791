package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apperrors "github.com/xiebiao/bookstore-api/pkg/errors"
)

// 响应约定：
// 1. 成功时直接返回资源对象（或资源列表），HTTP状态码表达结果
// 2. 失败时统一返回 {"message": "..."}，状态码由AppError错误码区间决定
// 3. 列表返回 {count, <资源名>: [...]}，分页时附带 page/per_page/total_pages

// ErrorBody 错误响应体
type ErrorBody struct {
	Message string `json:"message"`
}

// OK 200响应
func OK(c *gin.Context, body interface{}) {
	c.JSON(http.StatusOK, body)
}

// Created 201响应
func Created(c *gin.Context, body interface{}) {
	c.JSON(http.StatusCreated, body)
}

// Message 只包含提示信息的200响应（删除、登出等）
func Message(c *gin.Context, message string) {
	c.JSON(http.StatusOK, gin.H{"message": message})
}

// Error 错误响应（自动处理AppError）
// 用法：
//
//	book, err := h.bookService.Get(ctx, id)
//	if err != nil {
//	    response.Error(c, err)
//	    return
//	}
func Error(c *gin.Context, err error) {
	appErr := apperrors.GetAppError(err)
	status := appErr.HTTPStatus()

	// 内部错误只记录到日志，不返回给客户端
	if appErr.Err != nil || status >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("code", appErr.Code),
			zap.String("message", appErr.Message),
			zap.Error(appErr.Err),
		)
	}

	c.AbortWithStatusJSON(status, ErrorBody{Message: appErr.Message})
}

// ErrorWithCode 自定义错误码和消息
func ErrorWithCode(c *gin.Context, code int, message string) {
	Error(c, apperrors.New(code, message))
}

// =========================================
// 分页响应
// =========================================

// Paginated 分页列表响应
// key是列表字段名，例如 "books"、"orders"
func Paginated(c *gin.Context, key string, items interface{}, count int64, page, perPage int) {
	c.JSON(http.StatusOK, gin.H{
		"count":       count,
		"page":        page,
		"per_page":    perPage,
		"total_pages": TotalPages(count, perPage),
		key:           items,
	})
}

// List 不分页的列表响应
func List(c *gin.Context, key string, items interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"count": count,
		key:     items,
	})
}

// TotalPages 向上取整计算总页数
func TotalPages(count int64, perPage int) int {
	if perPage <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(perPage) - 1) / int64(perPage))
}
