package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/utils"
)

// listWithCache 列表查询统一走缓存，管理端写入后整体失效
func (h *Handler) listWithCache(c *gin.Context, cacheKey string, filter model.MovieFilter) {
	if cached, ok := utils.CacheGet(cacheKey); ok {
		movies := cached.([]*model.Movie)
		utils.SuccessWithCount(c, movies, len(movies))
		return
	}

	movies, err := h.Repos.Movie.List(filter)
	if err != nil {
		translateError(c, err)
		return
	}

	utils.CacheSet(cacheKey, movies, 5*time.Minute)
	utils.SuccessWithCount(c, movies, len(movies))
}

// ListMovies 获取全部影片
func (h *Handler) ListMovies(c *gin.Context) {
	h.listWithCache(c, "movies:all", model.MovieFilter{})
}

// TrendingMovies 获取热播影片
func (h *Handler) TrendingMovies(c *gin.Context) {
	h.listWithCache(c, "movies:trending", model.MovieFilter{Trending: true})
}

// TopRatedMovies 获取高分影片
func (h *Handler) TopRatedMovies(c *gin.Context) {
	h.listWithCache(c, "movies:top-rated", model.MovieFilter{TopRated: true})
}

// OriginalMovies 获取自制影片
func (h *Handler) OriginalMovies(c *gin.Context) {
	h.listWithCache(c, "movies:originals", model.MovieFilter{Original: true})
}

// MoviesByGenre 按类型获取影片，类型必须在固定枚举内
func (h *Handler) MoviesByGenre(c *gin.Context) {
	genre := c.Param("genre")
	if !model.IsValidGenre(genre) {
		utils.BadRequest(c, "无效的影片类型")
		return
	}

	h.listWithCache(c, "movies:genre:"+genre, model.MovieFilter{Genre: genre})
}

// SearchMovies 搜索影片，q 参数必填
func (h *Handler) SearchMovies(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		utils.BadRequest(c, "请提供搜索关键词")
		return
	}

	movies, err := h.Search.Search(keyword)
	if err != nil {
		translateError(c, err)
		return
	}

	utils.SuccessWithCount(c, movies, len(movies))
}

// GetMovie 根据 ID 获取影片
func (h *Handler) GetMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	movie, err := h.Repos.Movie.FindByID(id)
	if err != nil {
		translateError(c, err)
		return
	}
	if movie == nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	utils.Success(c, movie)
}

// CreateMovie 创建影片（管理员）
func (h *Handler) CreateMovie(c *gin.Context) {
	var req model.CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "影片字段缺失或枚举值无效")
		return
	}

	movie := &model.Movie{
		Title:          req.Title,
		Description:    req.Description,
		ReleaseYear:    req.ReleaseYear,
		Duration:       req.Duration,
		Genres:         pq.StringArray(req.Genres),
		Director:       req.Director,
		Cast:           pq.StringArray(req.Cast),
		PosterPath:     req.PosterPath,
		BackdropPath:   req.BackdropPath,
		VideoURL:       req.VideoURL,
		TrailerURL:     req.TrailerURL,
		MaturityRating: req.MaturityRating,
		VoteAverage:    req.VoteAverage,
		VoteCount:      req.VoteCount,
		IsTrending:     req.IsTrending,
		IsTopRated:     req.IsTopRated,
		IsOriginal:     req.IsOriginal,
	}

	created, err := h.Repos.Movie.Create(movie)
	if err != nil {
		translateError(c, err)
		return
	}

	h.invalidateCatalogCache()
	utils.Created(c, created)
}

// UpdateMovie 更新影片（管理员）
func (h *Handler) UpdateMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	var req model.UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "影片字段或枚举值无效")
		return
	}

	movie, err := h.Repos.Movie.Update(id, req.Patch())
	if err != nil {
		translateError(c, err)
		return
	}

	h.invalidateCatalogCache()
	utils.Success(c, movie)
}

// DeleteMovie 删除影片（管理员）
// 用户片单里的残留引用不在这里清理，读取片单时会静默跳过
func (h *Handler) DeleteMovie(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "影片不存在")
		return
	}

	if err := h.Repos.Movie.Delete(id); err != nil {
		translateError(c, err)
		return
	}

	h.invalidateCatalogCache()
	utils.Success(c, gin.H{})
}

// invalidateCatalogCache 管理端写入后清空列表缓存与搜索缓存
func (h *Handler) invalidateCatalogCache() {
	utils.CacheClear()
	h.Search.Invalidate()
}
