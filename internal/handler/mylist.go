package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/nextflix/internal/middleware"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/service"
	"github.com/user/nextflix/internal/utils"
)

// GetMyList 获取当前用户的片单（已解析为影片记录）
func (h *Handler) GetMyList(c *gin.Context) {
	movies, err := h.List.Get(middleware.GetUserID(c))
	if err != nil {
		translateError(c, err)
		return
	}

	utils.SuccessWithCount(c, movies, len(movies))
}

// AddToMyList 添加影片到片单
func (h *Handler) AddToMyList(c *gin.Context) {
	var req model.AddToListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供影片 ID")
		return
	}

	if err := h.List.Add(middleware.GetUserID(c), req.MovieID); err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, gin.H{"movieId": req.MovieID})
}

// RemoveFromMyList 从片单移除影片
func (h *Handler) RemoveFromMyList(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		translateError(c, service.ErrNotInList)
		return
	}

	if err := h.List.Remove(middleware.GetUserID(c), id); err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, gin.H{"movieId": id})
}
