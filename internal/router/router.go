package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/user/nextflix/internal/handler"
	"github.com/user/nextflix/internal/middleware"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(r *gin.Engine, h *handler.Handler) {
	secret := h.Config.AppSecret

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// ==================== 认证 ====================
	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)

		auth.Use(middleware.RequireAuth(secret))
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
		auth.PUT("/updatedetails", h.UpdateDetails)
		auth.PUT("/updatepassword", h.UpdatePassword)
	}

	// ==================== 影片目录 ====================
	movies := api.Group("/movies")
	{
		movies.GET("", h.ListMovies)
		movies.GET("/trending", h.TrendingMovies)
		movies.GET("/top-rated", h.TopRatedMovies)
		movies.GET("/originals", h.OriginalMovies)
		movies.GET("/genre/:genre", h.MoviesByGenre)
		movies.GET("/search", h.SearchMovies)
		movies.GET("/:id", h.GetMovie)

		// 目录维护仅限管理员
		admin := movies.Group("")
		admin.Use(middleware.RequireAuth(secret), middleware.RequireAdmin())
		{
			admin.POST("", h.CreateMovie)
			admin.PUT("/:id", h.UpdateMovie)
			admin.DELETE("/:id", h.DeleteMovie)
		}
	}

	// ==================== 我的片单（需要登录）====================
	mylist := api.Group("/mylist")
	mylist.Use(middleware.RequireAuth(secret))
	{
		mylist.GET("", h.GetMyList)
		mylist.POST("", h.AddToMyList)
		mylist.DELETE("/:id", h.RemoveFromMyList)
	}

	// ==================== 管理后台 ====================
	admin := api.Group("/admin")
	admin.Use(middleware.RequireAuth(secret), middleware.RequireAdmin())
	{
		admin.GET("/stats", h.AdminStats)
		admin.GET("/users", h.AdminListUsers)
		admin.GET("/users/:id", h.AdminGetUser)
		admin.PUT("/users/:id", h.AdminUpdateUser)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.PUT("/users/:id/promote", h.AdminPromoteUser)
		admin.PUT("/users/:id/demote", h.AdminDemoteUser)
	}
}
