package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 全局缓存实例，用于目录列表等热点读
var Cache *cache.Cache

// InitCache 初始化缓存
func InitCache() {
	// 默认过期时间5分钟，清理间隔10分钟
	Cache = cache.New(5*time.Minute, 10*time.Minute)
}

// CacheGet 获取缓存值
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 设置缓存值
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheClear 清空所有缓存（管理端写入后调用）
func CacheClear() {
	Cache.Flush()
}

// CacheItem 包装实际的数据，增加过期时间
type CacheItem[T any] struct {
	Value     T
	ExpiredAt time.Time
}

// SearchCache 搜索结果缓存封装：LRU 控制容量，TTL 控制新鲜度
type SearchCache[T any] struct {
	storage *lru.Cache[string, CacheItem[T]]
	ttl     time.Duration
}

// NewSearchCache 初始化，size 是最大缓存条数，ttl 是数据有效期
func NewSearchCache[T any](size int, ttl time.Duration) *SearchCache[T] {
	// lru.New 是线程安全的
	c, _ := lru.New[string, CacheItem[T]](size)
	return &SearchCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入缓存（已存在时覆盖）
func (c *SearchCache[T]) Set(key string, value T) {
	c.storage.Add(key, CacheItem[T]{
		Value:     value,
		ExpiredAt: time.Now().Add(c.ttl),
	})
}

// Get 读取缓存（带过期检查）
func (c *SearchCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}

	// 检查是否过期
	if time.Now().After(item.ExpiredAt) {
		c.storage.Remove(key)
		return zero, false
	}

	return item.Value, true
}

// Clear 清空缓存
func (c *SearchCache[T]) Clear() {
	c.storage.Purge()
}

// Len 当前缓存条数
func (c *SearchCache[T]) Len() int {
	return c.storage.Len()
}
