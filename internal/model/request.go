package model

// RegisterRequest 注册请求
type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateDetailsRequest 更新资料请求
type UpdateDetailsRequest struct {
	Name  string `json:"name" binding:"omitempty,min=2,max=50"`
	Email string `json:"email" binding:"omitempty,email"`
}

// UpdatePasswordRequest 修改密码请求（必须先验证当前密码）
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

// AddToListRequest 添加到片单请求
type AddToListRequest struct {
	MovieID int `json:"movieId" binding:"required"`
}

// CreateMovieRequest 创建影片请求
type CreateMovieRequest struct {
	Title          string   `json:"title" binding:"required,max=100"`
	Description    string   `json:"description" binding:"required,max=1000"`
	ReleaseYear    int      `json:"releaseYear" binding:"required"`
	Duration       int      `json:"duration" binding:"required,min=1"`
	Genres         []string `json:"genres" binding:"required,min=1,dive,genre"`
	Director       string   `json:"director" binding:"required"`
	Cast           []string `json:"cast" binding:"required,min=1"`
	PosterPath     string   `json:"poster_path" binding:"required"`
	BackdropPath   string   `json:"backdrop_path" binding:"required"`
	VideoURL       string   `json:"videoUrl" binding:"required"`
	TrailerURL     string   `json:"trailerUrl"`
	MaturityRating string   `json:"maturityRating" binding:"required,maturity"`
	VoteAverage    float64  `json:"vote_average" binding:"min=0,max=10"`
	VoteCount      int      `json:"vote_count" binding:"min=0"`
	IsTrending     bool     `json:"isTrending"`
	IsTopRated     bool     `json:"isTopRated"`
	IsOriginal     bool     `json:"isOriginal"`
}

// UpdateMovieRequest 更新影片请求，nil 字段不修改
type UpdateMovieRequest struct {
	Title          *string   `json:"title" binding:"omitempty,max=100"`
	Description    *string   `json:"description" binding:"omitempty,max=1000"`
	ReleaseYear    *int      `json:"releaseYear"`
	Duration       *int      `json:"duration" binding:"omitempty,min=1"`
	Genres         *[]string `json:"genres" binding:"omitempty,min=1,dive,genre"`
	Director       *string   `json:"director"`
	Cast           *[]string `json:"cast" binding:"omitempty,min=1"`
	PosterPath     *string   `json:"poster_path"`
	BackdropPath   *string   `json:"backdrop_path"`
	VideoURL       *string   `json:"videoUrl"`
	TrailerURL     *string   `json:"trailerUrl"`
	MaturityRating *string   `json:"maturityRating" binding:"omitempty,maturity"`
	VoteAverage    *float64  `json:"vote_average" binding:"omitempty,min=0,max=10"`
	VoteCount      *int      `json:"vote_count" binding:"omitempty,min=0"`
	IsTrending     *bool     `json:"isTrending"`
	IsTopRated     *bool     `json:"isTopRated"`
	IsOriginal     *bool     `json:"isOriginal"`
}

// Patch 转换为影片补丁
func (r *UpdateMovieRequest) Patch() MoviePatch {
	return MoviePatch{
		Title:          r.Title,
		Description:    r.Description,
		ReleaseYear:    r.ReleaseYear,
		Duration:       r.Duration,
		Genres:         r.Genres,
		Director:       r.Director,
		Cast:           r.Cast,
		PosterPath:     r.PosterPath,
		BackdropPath:   r.BackdropPath,
		VideoURL:       r.VideoURL,
		TrailerURL:     r.TrailerURL,
		MaturityRating: r.MaturityRating,
		VoteAverage:    r.VoteAverage,
		VoteCount:      r.VoteCount,
		IsTrending:     r.IsTrending,
		IsTopRated:     r.IsTopRated,
		IsOriginal:     r.IsOriginal,
	}
}

// UpdateUserRequest 管理员更新用户请求（不允许通过此路径改密码）
type UpdateUserRequest struct {
	Name  *string `json:"name" binding:"omitempty,min=2,max=50"`
	Email *string `json:"email" binding:"omitempty,email"`
	Role  *string `json:"role" binding:"omitempty,oneof=user admin"`
}
