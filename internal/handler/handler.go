package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/user/nextflix/internal/config"
	"github.com/user/nextflix/internal/repository"
	"github.com/user/nextflix/internal/service"
	"github.com/user/nextflix/internal/utils"
)

// Handler HTTP 处理器
type Handler struct {
	Repos  *repository.Repositories
	Config *config.Config
	List   *service.ListService
	Search *service.SearchService
}

// NewHandler 创建处理器
func NewHandler(repos *repository.Repositories, cfg *config.Config) *Handler {
	return &Handler{
		Repos:  repos,
		Config: cfg,
		List:   service.NewListService(repos.User, repos.Movie),
		Search: service.NewSearchService(repos.Movie),
	}
}

// translateError 终端错误翻译：把已知的存储层/服务层错误映射为响应状态码，
// 其余一律按 500 处理
func translateError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		utils.NotFound(c, "")
	case errors.Is(err, repository.ErrDuplicateEmail):
		utils.BadRequest(c, err.Error())
	case errors.Is(err, service.ErrMovieNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, service.ErrAlreadyInList), errors.Is(err, service.ErrNotInList):
		utils.BadRequest(c, err.Error())
	default:
		utils.InternalServerError(c, "")
	}
}
