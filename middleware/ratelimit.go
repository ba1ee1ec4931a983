package middleware

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// KeyFunc 限流维度
type KeyFunc func(c *gin.Context) string

// ByClientIP 按客户端 IP 限流
func ByClientIP(c *gin.Context) string {
	return c.ClientIP()
}

// ByUser 按登录用户限流，需在 JWTAuth 之后使用；未登录时退化为 IP
func ByUser(c *gin.Context) string {
	if id := GetCurrentUserID(c); id != 0 {
		return fmt.Sprintf("user:%d", id)
	}
	return c.ClientIP()
}

// LoginRateLimit 登录接口限流中间件
// 每 IP 在 window 内最多 maxAttempts 次尝试，超过则返回 429
func LoginRateLimit(maxAttempts int, window time.Duration) gin.HandlerFunc {
	return RateLimit(ByClientIP, maxAttempts, window, "登录尝试过于频繁，请稍后再试")
}

// RateLimit 滑动窗口限流
func RateLimit(key KeyFunc, maxAttempts int, window time.Duration, message string) gin.HandlerFunc {
	type entry struct {
		timestamps []time.Time
	}
	var (
		mu    sync.Mutex
		store = make(map[string]*entry)
	)
	prune := func(e *entry, cutoff time.Time) {
		kept := e.timestamps[:0]
		for _, t := range e.timestamps {
			if t.After(cutoff) {
				kept = append(kept, t)
			}
		}
		e.timestamps = kept
	}
	// 定期清理过期数据
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			mu.Lock()
			cutoff := time.Now().Add(-window)
			for k, e := range store {
				prune(e, cutoff)
				if len(e.timestamps) == 0 {
					delete(store, k)
				}
			}
			mu.Unlock()
		}
	}()

	return func(c *gin.Context) {
		k := key(c)
		now := time.Now()
		mu.Lock()
		e, ok := store[k]
		if !ok {
			e = &entry{}
			store[k] = e
		}
		prune(e, now.Add(-window))
		if len(e.timestamps) >= maxAttempts {
			mu.Unlock()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"code":    http.StatusTooManyRequests,
				"message": message,
			})
			c.Abort()
			return
		}
		e.timestamps = append(e.timestamps, now)
		mu.Unlock()
		c.Next()
	}
}
