package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/nextflix/internal/middleware"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/utils"
)

// ==================== 管理后台 ====================

// AdminStats 统计数据：用户按角色、影片按分类
func (h *Handler) AdminStats(c *gin.Context) {
	stats := model.Stats{}
	var err error

	if stats.UserStats.Total, err = h.Repos.User.Count(); err != nil {
		translateError(c, err)
		return
	}
	if stats.UserStats.Admin, err = h.Repos.User.CountByRole(model.RoleAdmin); err != nil {
		translateError(c, err)
		return
	}
	if stats.UserStats.Regular, err = h.Repos.User.CountByRole(model.RoleUser); err != nil {
		translateError(c, err)
		return
	}
	if stats.MovieStats.Total, err = h.Repos.Movie.Count(); err != nil {
		translateError(c, err)
		return
	}
	if stats.MovieStats.Trending, err = h.Repos.Movie.CountTrending(); err != nil {
		translateError(c, err)
		return
	}
	if stats.MovieStats.TopRated, err = h.Repos.Movie.CountTopRated(); err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, stats)
}

// AdminListUsers 用户列表
func (h *Handler) AdminListUsers(c *gin.Context) {
	users, err := h.Repos.User.ListAll()
	if err != nil {
		translateError(c, err)
		return
	}

	utils.SuccessWithCount(c, users, len(users))
}

// AdminGetUser 根据 ID 获取用户
func (h *Handler) AdminGetUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		translateError(c, err)
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	utils.Success(c, user)
}

// AdminUpdateUser 更新用户资料/角色
// 密码不允许通过此路径修改；管理员不能改掉自己的管理员角色
func (h *Handler) AdminUpdateUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	if id == middleware.GetUserID(c) && req.Role != nil && *req.Role != model.RoleAdmin {
		utils.BadRequest(c, "不能修改自己的管理员角色")
		return
	}

	user, err := h.Repos.User.Update(id, model.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Role:  req.Role,
	})
	if err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, user)
}

// AdminDeleteUser 删除用户，不允许删除自己
func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if id == middleware.GetUserID(c) {
		utils.BadRequest(c, "不能删除自己的账号")
		return
	}

	if err := h.Repos.User.Delete(id); err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, gin.H{})
}

// AdminPromoteUser 提升为管理员
func (h *Handler) AdminPromoteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		translateError(c, err)
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	if user.Role == model.RoleAdmin {
		utils.BadRequest(c, "该用户已经是管理员")
		return
	}

	role := model.RoleAdmin
	updated, err := h.Repos.User.Update(id, model.UserPatch{Role: &role})
	if err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, updated)
}

// AdminDemoteUser 降级为普通用户，不允许降级自己
func (h *Handler) AdminDemoteUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if id == middleware.GetUserID(c) {
		utils.BadRequest(c, "不能降级自己")
		return
	}

	user, err := h.Repos.User.FindByID(id)
	if err != nil {
		translateError(c, err)
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}
	if user.Role != model.RoleAdmin {
		utils.BadRequest(c, "该用户不是管理员")
		return
	}

	role := model.RoleUser
	updated, err := h.Repos.User.Update(id, model.UserPatch{Role: &role})
	if err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, updated)
}
