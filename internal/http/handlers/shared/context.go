package shared

import (
	"strings"

	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextString 从上下文读取字符串值，缺失时返回 401。
func GetContextString(c *gin.Context, key string) (string, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "Authentication required", nil)
		return "", false
	}
	str, ok := value.(string)
	if !ok || strings.TrimSpace(str) == "" {
		RespondError(c, response.CodeUnauthorized, "Authentication required", nil)
		return "", false
	}
	return str, true
}

// GetCustomerID 当前登录顾客 ID
func GetCustomerID(c *gin.Context) (string, bool) {
	return GetContextString(c, constants.ContextKeyCustomerID)
}

// GetRequestID 当前请求 ID
func GetRequestID(c *gin.Context) string {
	if value, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
