package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/nextflix/internal/middleware"
	"github.com/user/nextflix/internal/model"
	"github.com/user/nextflix/internal/repository"
	"github.com/user/nextflix/internal/utils"
)

// Register 注册新用户
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供有效的用户名、邮箱和密码（至少6位）")
		return
	}

	user, err := h.Repos.User.Create(req.Name, req.Email, req.Password, "")
	if err != nil {
		translateError(c, err)
		return
	}

	h.sendTokenResponse(c, user, true)
}

// Login 登录
// 邮箱不存在和密码错误返回同一个提示，避免泄露账号是否存在
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供邮箱和密码")
		return
	}

	user, err := h.Repos.User.FindByEmail(req.Email)
	if err != nil {
		translateError(c, err)
		return
	}
	if user == nil || !repository.VerifyPassword(user, req.Password) {
		utils.Unauthorized(c, "邮箱或密码错误")
		return
	}

	h.sendTokenResponse(c, user, false)
}

// Logout 登出（Token 无状态，仅作确认应答）
func (h *Handler) Logout(c *gin.Context) {
	utils.Success(c, gin.H{})
}

// Me 获取当前登录用户
func (h *Handler) Me(c *gin.Context) {
	user, err := h.Repos.User.FindByID(middleware.GetUserID(c))
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

// UpdateDetails 更新用户名/邮箱
func (h *Handler) UpdateDetails(c *gin.Context) {
	var req model.UpdateDetailsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请求参数有误")
		return
	}

	patch := model.UserPatch{}
	if req.Name != "" {
		patch.Name = &req.Name
	}
	if req.Email != "" {
		patch.Email = &req.Email
	}

	user, err := h.Repos.User.Update(middleware.GetUserID(c), patch)
	if err != nil {
		translateError(c, err)
		return
	}

	utils.Success(c, user)
}

// UpdatePassword 修改密码：必须先验证当前密码，成功后重新签发 Token
func (h *Handler) UpdatePassword(c *gin.Context) {
	var req model.UpdatePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "请提供当前密码和新密码（至少6位）")
		return
	}

	userID := middleware.GetUserID(c)
	user, err := h.Repos.User.FindByID(userID)
	if err != nil {
		translateError(c, err)
		return
	}
	if user == nil {
		utils.NotFound(c, "用户不存在")
		return
	}

	if !repository.VerifyPassword(user, req.CurrentPassword) {
		utils.Unauthorized(c, "当前密码不正确")
		return
	}

	if err := h.Repos.User.UpdatePassword(userID, req.NewPassword); err != nil {
		translateError(c, err)
		return
	}

	h.sendTokenResponse(c, user, false)
}

// sendTokenResponse 签发 Token 并连同用户信息一起返回
func (h *Handler) sendTokenResponse(c *gin.Context, user *model.User, created bool) {
	token, err := middleware.GenerateToken(user.ID, user.Email, user.Role, h.Config.AppSecret, h.Config.JWTExpiry)
	if err != nil {
		utils.InternalServerError(c, "")
		return
	}

	data := gin.H{"token": token, "user": user}
	if created {
		utils.Created(c, data)
		return
	}
	utils.Success(c, data)
}
