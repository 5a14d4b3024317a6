package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// 每个 IP 一个桶，按到达顺序记请求时间，检查时裁掉窗口外的头部
type bucket struct {
	hits []time.Time
}

type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket
	max     int
	window  time.Duration
	swept   time.Time
}

func (l *rateLimiter) allow(key string, now time.Time) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	// 每个窗口长度最多整表清扫一次，清掉早已沉寂的 IP
	if now.Sub(l.swept) > l.window {
		for k, b := range l.buckets {
			if len(b.hits) == 0 || now.Sub(b.hits[len(b.hits)-1]) > l.window {
				delete(l.buckets, k)
			}
		}
		l.swept = now
	}

	b := l.buckets[key]
	if b == nil {
		b = &bucket{}
		l.buckets[key] = b
	}
	cutoff := now.Add(-l.window)
	drop := 0
	for drop < len(b.hits) && !b.hits[drop].After(cutoff) {
		drop++
	}
	b.hits = b.hits[drop:]
	if len(b.hits) >= l.max {
		return false
	}
	b.hits = append(b.hits, now)
	return true
}

// RateLimit 滑动窗口限流中间件，扫描这类会打外部模型的接口用。
// 每 IP 每个窗口最多 maxAttempts 次，超过返回 429
func RateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	limiter := &rateLimiter{
		buckets: make(map[string]*bucket),
		max:     maxAttempts,
		window:  window,
		swept:   time.Now(),
	}
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP(), time.Now()) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many scan requests, slow down",
			})
			return
		}
		c.Next()
	}
}
