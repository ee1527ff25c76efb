package repository

import (
	"strings"
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/user/nextflix/internal/model"
)

// memoryMovieRepository 内存影片仓库，结构与内存用户仓库一致
type memoryMovieRepository struct {
	mu     sync.RWMutex
	seq    int
	movies []*model.Movie
	byID   map[int]*model.Movie
}

// NewMemoryMovieRepository 创建内存影片仓库
func NewMemoryMovieRepository() MovieRepository {
	return &memoryMovieRepository{
		byID: make(map[int]*model.Movie),
	}
}

func cloneMovie(m *model.Movie) *model.Movie {
	if m == nil {
		return nil
	}
	clone := *m
	clone.Genres = append(pq.StringArray{}, m.Genres...)
	clone.Cast = append(pq.StringArray{}, m.Cast...)
	return &clone
}

func matchFilter(m *model.Movie, filter model.MovieFilter) bool {
	if filter.Genre != "" {
		found := false
		for _, g := range m.Genres {
			if g == filter.Genre {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	if filter.Trending && !m.IsTrending {
		return false
	}
	if filter.TopRated && !m.IsTopRated {
		return false
	}
	if filter.Original && !m.IsOriginal {
		return false
	}
	return true
}

// List 按过滤条件查询影片，零值过滤器返回全部
func (r *memoryMovieRepository) List(filter model.MovieFilter) ([]*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	movies := make([]*model.Movie, 0, len(r.movies))
	for _, m := range r.movies {
		if matchFilter(m, filter) {
			movies = append(movies, cloneMovie(m))
		}
	}
	return movies, nil
}

// FindByID 根据 ID 查找影片，不存在返回 (nil, nil)
func (r *memoryMovieRepository) FindByID(id int) (*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneMovie(r.byID[id]), nil
}

// Search 在标题与简介上做大小写不敏感的子串匹配
func (r *memoryMovieRepository) Search(keyword string) ([]*model.Movie, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keyword = strings.ToLower(keyword)
	var movies []*model.Movie
	for _, m := range r.movies {
		if strings.Contains(strings.ToLower(m.Title), keyword) ||
			strings.Contains(strings.ToLower(m.Description), keyword) {
			movies = append(movies, cloneMovie(m))
		}
	}
	return movies, nil
}

// Create 创建影片，分配 ID 与时间戳
func (r *memoryMovieRepository) Create(movie *model.Movie) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	now := time.Now()
	stored := cloneMovie(movie)
	stored.ID = r.seq
	stored.CreatedAt = now
	stored.UpdatedAt = now

	r.movies = append(r.movies, stored)
	r.byID[stored.ID] = stored

	return cloneMovie(stored), nil
}

// Update 合并补丁字段并刷新更新时间，不存在返回 ErrNotFound
func (r *memoryMovieRepository) Update(id int, patch model.MoviePatch) (*model.Movie, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	movie, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	if patch.Title != nil {
		movie.Title = *patch.Title
	}
	if patch.Description != nil {
		movie.Description = *patch.Description
	}
	if patch.ReleaseYear != nil {
		movie.ReleaseYear = *patch.ReleaseYear
	}
	if patch.Duration != nil {
		movie.Duration = *patch.Duration
	}
	if patch.Genres != nil {
		movie.Genres = append(pq.StringArray{}, *patch.Genres...)
	}
	if patch.Director != nil {
		movie.Director = *patch.Director
	}
	if patch.Cast != nil {
		movie.Cast = append(pq.StringArray{}, *patch.Cast...)
	}
	if patch.PosterPath != nil {
		movie.PosterPath = *patch.PosterPath
	}
	if patch.BackdropPath != nil {
		movie.BackdropPath = *patch.BackdropPath
	}
	if patch.VideoURL != nil {
		movie.VideoURL = *patch.VideoURL
	}
	if patch.TrailerURL != nil {
		movie.TrailerURL = *patch.TrailerURL
	}
	if patch.MaturityRating != nil {
		movie.MaturityRating = *patch.MaturityRating
	}
	if patch.VoteAverage != nil {
		movie.VoteAverage = *patch.VoteAverage
	}
	if patch.VoteCount != nil {
		movie.VoteCount = *patch.VoteCount
	}
	if patch.IsTrending != nil {
		movie.IsTrending = *patch.IsTrending
	}
	if patch.IsTopRated != nil {
		movie.IsTopRated = *patch.IsTopRated
	}
	if patch.IsOriginal != nil {
		movie.IsOriginal = *patch.IsOriginal
	}
	movie.UpdatedAt = time.Now()

	return cloneMovie(movie), nil
}

// Delete 删除影片，不存在返回 ErrNotFound
func (r *memoryMovieRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}

	delete(r.byID, id)
	for i, m := range r.movies {
		if m.ID == id {
			r.movies = append(r.movies[:i], r.movies[i+1:]...)
			break
		}
	}
	return nil
}

// Count 获取影片总数
func (r *memoryMovieRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.movies)), nil
}

// CountTrending 统计热播影片数
func (r *memoryMovieRepository) CountTrending() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, m := range r.movies {
		if m.IsTrending {
			count++
		}
	}
	return count, nil
}

// CountTopRated 统计高分影片数
func (r *memoryMovieRepository) CountTopRated() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, m := range r.movies {
		if m.IsTopRated {
			count++
		}
	}
	return count, nil
}
