package service

import (
	"strings"
	"time"

	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/repository"
	"github.com/user/nextflix/internal/utils"
	"golang.org/x/sync/singleflight"
)

// SearchService 搜索服务
// 1. 命中缓存直接返回
// 2. 未命中时查询存储，singleflight 保证同一关键词并发只查一次
type SearchService struct {
	movies repository.MovieRepository
	cache  *utils.SearchCache[[]*model.Movie]
	sf     singleflight.Group
}

// NewSearchService 创建搜索服务
func NewSearchService(movies repository.MovieRepository) *SearchService {
	return &SearchService{
		movies: movies,
		cache:  utils.NewSearchCache[[]*model.Movie](1000, 5*time.Minute),
	}
}

// Search 按关键词搜索影片（标题与简介的子串匹配，不排序）
func (s *SearchService) Search(keyword string) ([]*model.Movie, error) {
	keyword = strings.TrimSpace(keyword)

	// 1. 先查缓存
	cacheKey := strings.ToLower(keyword)
	if cached, ok := s.cache.Get(cacheKey); ok {
		return cached, nil
	}

	// 2. 使用 singleflight 避免并发请求同一个词
	val, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		movies, err := s.movies.Search(keyword)
		if err != nil {
			return nil, err
		}
		s.cache.Set(cacheKey, movies)
		return movies, nil
	})
	if err != nil {
		return nil, err
	}

	return val.([]*model.Movie), nil
}

// Invalidate 目录变更后清空搜索缓存
func (s *SearchService) Invalidate() {
	s.cache.Clear()
}
