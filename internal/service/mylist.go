package service

import (
	"errors"

	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/repository"
)

// 片单操作错误，由 handler 翻译为响应状态码
var (
	// ErrMovieNotFound 引用的影片不存在
	ErrMovieNotFound = errors.New("影片不存在")
	// ErrAlreadyInList 影片已在片单中
	ErrAlreadyInList = errors.New("该影片已在你的片单中")
	// ErrNotInList 影片不在片单中
	ErrNotInList = errors.New("该影片不在你的片单中")
)

// ListService 片单服务：维护用户片单字段，写入前校验影片存在
type ListService struct {
	users  repository.UserRepository
	movies repository.MovieRepository
}

// NewListService 创建片单服务
func NewListService(users repository.UserRepository, movies repository.MovieRepository) *ListService {
	return &ListService{users: users, movies: movies}
}

// Add 添加影片到片单：影片必须存在，且不允许重复添加
func (s *ListService) Add(userID, movieID int) error {
	movie, err := s.movies.FindByID(movieID)
	if err != nil {
		return err
	}
	if movie == nil {
		return ErrMovieNotFound
	}

	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return repository.ErrNotFound
	}

	for _, id := range user.MyList {
		if int(id) == movieID {
			return ErrAlreadyInList
		}
	}

	return s.users.UpdateWatchlist(userID, append(user.MyList, int64(movieID)))
}

// Remove 从片单移除影片
func (s *ListService) Remove(userID, movieID int) error {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return repository.ErrNotFound
	}

	filtered := make([]int64, 0, len(user.MyList))
	found := false
	for _, id := range user.MyList {
		if int(id) == movieID {
			found = true
			continue
		}
		filtered = append(filtered, id)
	}
	if !found {
		return ErrNotInList
	}

	return s.users.UpdateWatchlist(userID, filtered)
}

// Get 解析片单为影片记录，目录中已删除的引用静默跳过
func (s *ListService) Get(userID int) ([]*model.Movie, error) {
	user, err := s.users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, repository.ErrNotFound
	}

	movies := make([]*model.Movie, 0, len(user.MyList))
	for _, id := range user.MyList {
		movie, err := s.movies.FindByID(int(id))
		if err != nil {
			return nil, err
		}
		if movie != nil {
			movies = append(movies, movie)
		}
	}
	return movies, nil
}
