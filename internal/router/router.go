package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shanture-next/internal/cache"
	"github.com/shanture-next/internal/config"
	publichandlers "github.com/shanture-next/internal/http/handlers/public"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/provider"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const healthCheckTimeout = 2 * time.Second

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "shanture"
	}
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "Too many login attempts, please retry in %d seconds",
	}

	// 中间件
	r.Use(gin.Recovery())
	if cfg.Telemetry.Enabled {
		r.Use(otelgin.Middleware(telemetryServiceName(cfg)))
	}
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	api := r.Group("/api")
	{
		// 公开接口
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.POST("/register", publicHandler.Register)
		api.POST("/login", RateLimitMiddleware(cache.Client(), loginRule, KeyByIPAndJSONField("username")), publicHandler.Login)

		// 顾客接口（需鉴权）
		authed := api.Group("")
		authed.Use(CustomerJWTAuthMiddleware(c.CustomerService))
		{
			authed.GET("/profile", publicHandler.GetProfile)
			authed.PATCH("/register/:id", publicHandler.UpdateProfile)

			authed.GET("/cart", publicHandler.GetCart)
			authed.POST("/cart/:productId", publicHandler.AddToCart)
			authed.PUT("/cart/items/:id", publicHandler.UpdateCartItem)
			authed.DELETE("/cart/items/:id", publicHandler.RemoveCartItem)

			authed.GET("/orders", publicHandler.ListOrders)
			authed.POST("/orders", publicHandler.CreateOrder)
			authed.GET("/orders/:orderId", publicHandler.GetOrder)
			authed.DELETE("/orders/:orderId", publicHandler.DeleteOrder)
		}
	}

	// 健康检查
	r.GET("/health", healthHandler(c))

	return r
}

func healthHandler(c *provider.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
		defer cancel()

		status := gin.H{"status": "ok", "database": "ok", "redis": "disabled"}
		code := http.StatusOK
		if c == nil || c.DB == nil {
			status["status"], status["database"] = "degraded", "unavailable"
			code = http.StatusServiceUnavailable
		} else if sqlDB, err := c.DB.DB(); err != nil || sqlDB.PingContext(checkCtx) != nil {
			status["status"], status["database"] = "degraded", "unavailable"
			code = http.StatusServiceUnavailable
		}
		if cache.Enabled() {
			status["redis"] = "ok"
			if err := cache.Ping(checkCtx); err != nil {
				status["redis"] = "unavailable"
			}
		}
		ctx.JSON(code, status)
	}
}

func telemetryServiceName(cfg *config.Config) string {
	if name := strings.TrimSpace(cfg.Telemetry.ServiceName); name != "" {
		return name
	}
	return "shanture-api"
}
