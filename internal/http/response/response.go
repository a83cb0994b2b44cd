package response

import (
	"github.com/shanture-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// ErrorBody 统一错误响应结构
type ErrorBody struct {
	Success   bool        `json:"success"`
	Error     string      `json:"error"`
	Details   interface{} `json:"details,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// Success 成功响应，fields 平铺到顶层
func Success(c *gin.Context, fields gin.H) {
	write(c, CodeOK, "", fields)
}

// SuccessWithMsg 成功响应（带提示消息）
func SuccessWithMsg(c *gin.Context, msg string, fields gin.H) {
	write(c, CodeOK, msg, fields)
}

// Created 201 响应
func Created(c *gin.Context, msg string, fields gin.H) {
	write(c, CodeCreated, msg, fields)
}

func write(c *gin.Context, status int, msg string, fields gin.H) {
	body := gin.H{"success": true}
	if msg != "" {
		body["message"] = msg
	}
	for k, v := range fields {
		if k == "success" {
			continue
		}
		body[k] = v
	}
	c.JSON(status, body)
}

// Error 错误响应
func Error(c *gin.Context, statusCode int, msg string) {
	ErrorWithDetails(c, statusCode, msg, nil)
}

// ErrorWithDetails 错误响应（带明细）
func ErrorWithDetails(c *gin.Context, statusCode int, msg string, details interface{}) {
	c.JSON(statusCode, ErrorBody{
		Success:   false,
		Error:     msg,
		Details:   details,
		RequestID: requestID(c),
	})
}

// AbortWithError 返回错误并终止后续处理
func AbortWithError(c *gin.Context, statusCode int, msg string) {
	Error(c, statusCode, msg)
	c.Abort()
}

// NotFound 404响应
func NotFound(c *gin.Context, msg string) {
	Error(c, CodeNotFound, msg)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, CodeBadRequest, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
