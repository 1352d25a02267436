package router

import (
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/http/response"
	"github.com/coffee-bar/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 生成限流 key 的函数
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 限流规则
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	// BlockSeconds 超限后封禁时长，0 表示等待窗口自然过期
	BlockSeconds int
	// Message 超限提示，%d 占位为剩余秒数
	Message string
}

// 首次超限时把 key 的过期时间延长到封禁时长
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
local limit = tonumber(ARGV[2])
local block = tonumber(ARGV[3])
if block > 0 and current == limit + 1 then
	redis.call("EXPIRE", KEYS[1], block)
end
local ttl = redis.call("TTL", KEYS[1])
return {current, ttl}
`)

// RateLimitMiddleware Redis 频率限制中间件，未启用 Redis 时直接放行
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || rule.WindowSeconds <= 0 || rule.MaxRequests <= 0 {
			c.Next()
			return
		}

		key := ""
		if keyFunc != nil {
			key = strings.TrimSpace(keyFunc(c))
		}
		if key == "" {
			key = c.ClientIP()
		}
		if rule.Prefix != "" {
			key = fmt.Sprintf("%s:%s", rule.Prefix, key)
		}

		result, err := rateLimitScript.Run(c.Request.Context(), client, []string{key}, rule.WindowSeconds, rule.MaxRequests, rule.BlockSeconds).Result()
		if err != nil {
			logger.Warnw("rate_limit_unavailable", "key", key, "error", err)
			response.Error(c, response.CodeInternal, "rate limit unavailable")
			c.Abort()
			return
		}

		values, ok := result.([]interface{})
		if !ok || len(values) < 2 {
			response.Error(c, response.CodeInternal, "rate limit unavailable")
			c.Abort()
			return
		}
		count, ok := toInt64(values[0])
		if !ok {
			response.Error(c, response.CodeInternal, "rate limit unavailable")
			c.Abort()
			return
		}
		ttlSeconds, _ := toInt64(values[1])
		if count > int64(rule.MaxRequests) {
			response.Error(c, response.CodeTooManyRequests, rateLimitMessage(rule, waitSeconds(rule, ttlSeconds)))
			c.Abort()
			return
		}

		c.Next()
	}
}

// KeyByIP 以客户端 IP 作为限流 key；会话 cookie 可随时丢弃，不能作为限流依据
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

func waitSeconds(rule RateLimitRule, ttlSeconds int64) int {
	wait := int(ttlSeconds)
	if wait < 1 {
		wait = rule.BlockSeconds
	}
	if wait < 1 {
		wait = rule.WindowSeconds
	}
	if wait < 1 {
		wait = 1
	}
	return wait
}

func rateLimitMessage(rule RateLimitRule, wait int) string {
	msg := strings.TrimSpace(rule.Message)
	if msg == "" {
		msg = "too many requests, retry in %d seconds"
	}
	if !strings.Contains(msg, "%d") {
		return msg
	}
	return fmt.Sprintf(msg, wait)
}

func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
