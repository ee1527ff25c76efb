package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/user/nextflix/internal/model"
	"gorm.io/gorm"
)

type movieRepository struct {
	db *gorm.DB
}

// NewMovieRepository 创建 Postgres 影片仓库
func NewMovieRepository(db *gorm.DB) MovieRepository {
	return &movieRepository{db: db}
}

// List 按过滤条件查询影片，零值过滤器返回全部
func (r *movieRepository) List(filter model.MovieFilter) ([]*model.Movie, error) {
	query := r.db.Model(&model.Movie{}).Order("id ASC")

	if filter.Genre != "" {
		query = query.Where("? = ANY(genres)", filter.Genre)
	}
	if filter.Trending {
		query = query.Where("is_trending = ?", true)
	}
	if filter.TopRated {
		query = query.Where("is_top_rated = ?", true)
	}
	if filter.Original {
		query = query.Where("is_original = ?", true)
	}

	var movies []*model.Movie
	err := query.Find(&movies).Error
	return movies, err
}

// FindByID 根据 ID 查找影片
func (r *movieRepository) FindByID(id int) (*model.Movie, error) {
	var movie model.Movie
	err := r.db.First(&movie, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &movie, nil
}

// Search 在标题与简介上做大小写不敏感的子串匹配
func (r *movieRepository) Search(keyword string) ([]*model.Movie, error) {
	var movies []*model.Movie
	pattern := "%" + keyword + "%"
	err := r.db.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern).
		Order("id ASC").
		Find(&movies).Error
	return movies, err
}

// Create 创建影片，分配 ID 与时间戳
func (r *movieRepository) Create(movie *model.Movie) (*model.Movie, error) {
	now := time.Now()
	movie.ID = 0
	movie.CreatedAt = now
	movie.UpdatedAt = now

	if err := r.db.Create(movie).Error; err != nil {
		return nil, err
	}

	return movie, nil
}

// Update 合并补丁字段并刷新更新时间，不存在返回 ErrNotFound
func (r *movieRepository) Update(id int, patch model.MoviePatch) (*model.Movie, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.ReleaseYear != nil {
		updates["release_year"] = *patch.ReleaseYear
	}
	if patch.Duration != nil {
		updates["duration"] = *patch.Duration
	}
	if patch.Genres != nil {
		updates["genres"] = pq.StringArray(*patch.Genres)
	}
	if patch.Director != nil {
		updates["director"] = *patch.Director
	}
	if patch.Cast != nil {
		updates["cast_members"] = pq.StringArray(*patch.Cast)
	}
	if patch.PosterPath != nil {
		updates["poster_path"] = *patch.PosterPath
	}
	if patch.BackdropPath != nil {
		updates["backdrop_path"] = *patch.BackdropPath
	}
	if patch.VideoURL != nil {
		updates["video_url"] = *patch.VideoURL
	}
	if patch.TrailerURL != nil {
		updates["trailer_url"] = *patch.TrailerURL
	}
	if patch.MaturityRating != nil {
		updates["maturity_rating"] = *patch.MaturityRating
	}
	if patch.VoteAverage != nil {
		updates["vote_average"] = *patch.VoteAverage
	}
	if patch.VoteCount != nil {
		updates["vote_count"] = *patch.VoteCount
	}
	if patch.IsTrending != nil {
		updates["is_trending"] = *patch.IsTrending
	}
	if patch.IsTopRated != nil {
		updates["is_top_rated"] = *patch.IsTopRated
	}
	if patch.IsOriginal != nil {
		updates["is_original"] = *patch.IsOriginal
	}

	result := r.db.Model(&model.Movie{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id)
}

// Delete 删除影片，不存在返回 ErrNotFound
func (r *movieRepository) Delete(id int) error {
	result := r.db.Delete(&model.Movie{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count 获取影片总数
func (r *movieRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Count(&count).Error
	return count, err
}

// CountTrending 统计热播影片数
func (r *movieRepository) CountTrending() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("is_trending = ?", true).Count(&count).Error
	return count, err
}

// CountTopRated 统计高分影片数
func (r *movieRepository) CountTopRated() (int64, error) {
	var count int64
	err := r.db.Model(&model.Movie{}).Where("is_top_rated = ?", true).Count(&count).Error
	return count, err
}
