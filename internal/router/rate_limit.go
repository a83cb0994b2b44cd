package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shanture-next/internal/http/response"
	"github.com/shanture-next/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则
// 超限后 key 的过期时间延长为 BlockSeconds（为 0 时沿用窗口剩余时间）
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	BlockSeconds  int
	Message       string // 含一个 %d 占位符，填入需等待的秒数
}

const defaultRateLimitMessage = "Too many requests, please retry in %d seconds"

// KEYS[1] 计数 key；ARGV 窗口秒数、上限、封禁秒数；返回 {count, ttl}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
if tonumber(ARGV[3]) > 0 and current == tonumber(ARGV[2]) + 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[3])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// rateLimitDecision 单次计数结果
type rateLimitDecision struct {
	count      int64
	retryAfter int
	limited    bool
}

func (rule RateLimitRule) enabled() bool {
	return rule.WindowSeconds > 0 && rule.MaxRequests > 0
}

func (rule RateLimitRule) key(raw string) string {
	if rule.Prefix == "" {
		return raw
	}
	return rule.Prefix + ":" + raw
}

func (rule RateLimitRule) message(retryAfter int) string {
	format := strings.TrimSpace(rule.Message)
	if format == "" {
		format = defaultRateLimitMessage
	}
	return fmt.Sprintf(format, retryAfter)
}

// decide 把脚本返回的计数与 TTL 换算为限流结论
func (rule RateLimitRule) decide(count, ttl int64) rateLimitDecision {
	decision := rateLimitDecision{count: count}
	if count <= int64(rule.MaxRequests) {
		return decision
	}
	decision.limited = true
	decision.retryAfter = int(ttl)
	if decision.retryAfter < 1 {
		decision.retryAfter = rule.WindowSeconds
	}
	if decision.retryAfter < 1 {
		decision.retryAfter = 1
	}
	return decision
}

func hitRateLimit(ctx context.Context, client *redis.Client, rule RateLimitRule, key string) (rateLimitDecision, error) {
	values, err := rateLimitScript.Run(ctx, client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Int64Slice()
	if err != nil {
		return rateLimitDecision{}, err
	}
	if len(values) < 2 {
		return rateLimitDecision{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}
	return rule.decide(values[0], values[1]), nil
}

// RateLimitMiddleware Redis 频率限制中间件，client 为空或规则未配置时放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		raw := ""
		if keyFunc != nil {
			raw = strings.TrimSpace(keyFunc(c))
		}
		if raw == "" {
			raw = c.ClientIP()
		}
		key := rule.key(raw)

		log := logger.FromContext(c.Request.Context())
		decision, err := hitRateLimit(c.Request.Context(), client, rule, key)
		if err != nil {
			log.Errorw("rate_limit_script_failed", "key", key, "error", err)
			response.AbortWithError(c, response.CodeInternal, "Rate limiter unavailable")
			return
		}
		if decision.limited {
			log.Warnw("rate_limited", "key", key, "count", decision.count, "retry_after", decision.retryAfter)
			c.Header("Retry-After", strconv.Itoa(decision.retryAfter))
			response.AbortWithError(c, response.CodeTooManyRequests, rule.message(decision.retryAfter))
			return
		}
		c.Next()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按请求体字段（小写）与 IP 组合限流，字段缺失时只用 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONStringField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONStringField 读取请求体中的字符串字段，并把请求体还原给后续处理器
func peekJSONStringField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var value string
	if err := json.Unmarshal(payload[field], &value); err != nil {
		return ""
	}
	return strings.TrimSpace(value)
}
