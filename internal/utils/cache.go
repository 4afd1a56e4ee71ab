package utils

import (
	"fmt"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/patrickmn/go-cache"
)

// RateLimiter 基于 go-cache 的简易滑动窗口限流（按键计数）
type RateLimiter struct {
	storage *cache.Cache
	limit   int
}

// NewRateLimiter limit 是窗口内最大次数，window 是窗口长度
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	return &RateLimiter{
		storage: cache.New(window, 2*window),
		limit:   limit,
	}
}

// Allow 判断该键是否还允许一次操作，允许时顺带累加计数
func (r *RateLimiter) Allow(key string) bool {
	n, err := r.storage.IncrementInt(key, 1)
	if err != nil {
		// 键不存在，开启新窗口
		r.storage.SetDefault(key, 1)
		return true
	}
	return n <= r.limit
}

// ViewDedup 播放量去重：同一 IP 在 TTL 窗口内对同一影片只计一次
// 去重只是抑制刷量，计数本身依旧单调递增
type ViewDedup struct {
	seen *expirable.LRU[string, struct{}]
}

// NewViewDedup size 是最大追踪条数，ttl 是去重窗口
func NewViewDedup(size int, ttl time.Duration) *ViewDedup {
	return &ViewDedup{seen: expirable.NewLRU[string, struct{}](size, nil, ttl)}
}

// ShouldCount 首次出现返回 true 并记录，窗口内重复返回 false
func (v *ViewDedup) ShouldCount(filmID, ipHash string) bool {
	key := fmt.Sprintf("%s:%s", filmID, ipHash)
	if _, ok := v.seen.Get(key); ok {
		return false
	}
	v.seen.Add(key, struct{}{})
	return true
}
