package shared

import (
	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if c.Request != nil {
		return logger.FromContext(c.Request.Context())
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
// 500 错误仅在 debug 模式下把原始错误放进 details。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
		if code >= response.CodeInternal && gin.Mode() == gin.DebugMode {
			appErr.WithDetails(err.Error())
		}
	}
	response.ErrorWithDetails(c, appErr.Code, appErr.Message, appErr.Details)
}

// RespondErrorWithDetails 返回带明细的错误响应
func RespondErrorWithDetails(c *gin.Context, code int, msg string, details interface{}) {
	response.ErrorWithDetails(c, code, msg, details)
}
