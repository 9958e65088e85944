package middleware

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/azulroute/tour-booking-api/internal/config"
)

// tokenBucketLua refills and consumes atomically inside Redis. KEYS[1] is the
// bucket hash; ARGV: capacity, refill tokens, refill interval ms, now ms, ttl s.
// Returns {allowed, remaining, retry_after_ms}.
const tokenBucketLua = `
local key = KEYS[1]
local capacity = tonumber(ARGV[1])
local refill_tokens = tonumber(ARGV[2])
local refill_interval_ms = tonumber(ARGV[3])
local now_ms = tonumber(ARGV[4])
local ttl_s = tonumber(ARGV[5])

local data = redis.call('HMGET', key, 'tokens', 'ts')
local tokens = tonumber(data[1])
local ts = tonumber(data[2])

if tokens == nil then
  tokens = capacity
  ts = now_ms
end

local elapsed = now_ms - ts
if elapsed > 0 and refill_interval_ms > 0 then
  local refills = math.floor(elapsed / refill_interval_ms)
  if refills > 0 then
    tokens = math.min(capacity, tokens + refills * refill_tokens)
    ts = ts + refills * refill_interval_ms
  end
end

local allowed = 0
local retry_ms = 0
if tokens > 0 then
  tokens = tokens - 1
  allowed = 1
else
  retry_ms = refill_interval_ms - (now_ms - ts)
  if retry_ms < 0 then retry_ms = 0 end
end

redis.call('HMSET', key, 'tokens', tokens, 'ts', ts)
redis.call('EXPIRE', key, ttl_s)

return {allowed, tokens, retry_ms}
`

// NewTokenBucket limits each client IP per route. Failing open: any Redis
// error lets the request through so an unreachable cache never takes the
// booking flow down with it.
func NewTokenBucket(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	script := redis.NewScript(tokenBucketLua)

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("%s:%s:%s", cfg.Prefix, c.RealIP(), c.Path())

			nowMs := time.Now().UnixMilli()
			res, err := script.Run(ctx, rdb, []string{key},
				cfg.Capacity,
				cfg.RefillTokens,
				cfg.RefillInterval.Milliseconds(),
				nowMs,
				int64(cfg.TTL.Seconds()),
			).Result()
			if err != nil {
				return next(c)
			}

			vals, ok := res.([]interface{})
			if !ok || len(vals) != 3 {
				return next(c)
			}
			allowed := asInt64(vals[0]) == 1
			remaining := asInt64(vals[1])
			retryMs := asInt64(vals[2])

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.Capacity))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.FormatInt(remaining, 10))

			if !allowed {
				retrySec := (retryMs + 999) / 1000
				if retrySec < 1 {
					retrySec = 1
				}
				c.Response().Header().Set("Retry-After", strconv.FormatInt(retrySec, 10))
				return c.JSON(http.StatusTooManyRequests, echo.Map{
					"error": "too many requests",
				})
			}
			return next(c)
		}
	}
}

func asInt64(v interface{}) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case int:
		return int64(t)
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}
