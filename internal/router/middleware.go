package router

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Content-Length",
			"Authorization",
			"X-Requested-With",
			requestIDHeader,
		}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", requestIDHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件，同时写入请求 context 供服务层日志使用
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(requestIDHeader))
		if requestID == "" || len(requestID) > 128 {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextKeyRequestID, requestID)
		c.Request = c.Request.WithContext(logger.WithRequestID(c.Request.Context(), requestID))
		c.Writer.Header().Set(requestIDHeader, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = zap.L()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if customerID, ok := c.Get(constants.ContextKeyCustomerID); ok {
			entry = entry.With("customer_id", customerID)
		}
		switch {
		case len(c.Errors) > 0:
			entry.Errorw("request", "errors", c.Errors.String())
		case c.Writer.Status() >= 500:
			entry.Errorw("request")
		default:
			entry.Infow("request")
		}
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextKeyRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// CustomerAuthenticator 校验顾客 token
type CustomerAuthenticator interface {
	Authenticate(ctx context.Context, token string) (*service.CustomerJWTClaims, error)
}

// CustomerJWTAuthMiddleware 顾客 JWT 鉴权中间件
// token 合法但顾客已不存在时同样返回 401
func CustomerJWTAuthMiddleware(auth CustomerAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth == nil {
			response.AbortWithError(c, response.CodeUnauthorized, "Not authorized, token failed")
			return
		}
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			response.AbortWithError(c, response.CodeUnauthorized, "Not authorized, no token provided")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.AbortWithError(c, response.CodeUnauthorized, "Not authorized, no token provided")
			return
		}

		claims, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(parts[1]))
		if err != nil {
			switch {
			case errors.Is(err, service.ErrCustomerNotFound):
				response.AbortWithError(c, response.CodeUnauthorized, "Not authorized, user not found")
			case errors.Is(err, service.ErrInvalidToken):
				response.AbortWithError(c, response.CodeUnauthorized, "Not authorized, token failed")
			default:
				logger.FromContext(c.Request.Context()).Errorw("customer_auth_failed", "error", err)
				response.AbortWithError(c, response.CodeInternal, "Authentication unavailable")
			}
			return
		}

		c.Set(constants.ContextKeyCustomerID, claims.CustomerID)
		c.Set(constants.ContextKeyUsername, claims.Username)
		c.Next()
	}
}
