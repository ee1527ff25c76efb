package model

import (
	"time"

	"github.com/lib/pq"
)

// 角色常量
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User 用户模型
type User struct {
	ID           int           `json:"id" gorm:"primaryKey"`
	Name         string        `json:"name" gorm:"size:50"`
	Email        string        `json:"email" gorm:"uniqueIndex;size:255"`
	PasswordHash string        `json:"-" gorm:"column:password_hash"`
	Role         string        `json:"role" gorm:"default:user"`
	MyList       pq.Int64Array `json:"myList" gorm:"column:my_list;type:integer[]"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// Movie 影片模型（目录条目）
type Movie struct {
	ID             int            `json:"id" gorm:"primaryKey"`
	Title          string         `json:"title" gorm:"size:100"`
	Description    string         `json:"description" gorm:"size:1000"`
	ReleaseYear    int            `json:"releaseYear"`
	Duration       int            `json:"duration"` // 时长（分钟）
	Genres         pq.StringArray `json:"genres" gorm:"type:text[]"`
	Director       string         `json:"director"`
	Cast           pq.StringArray `json:"cast" gorm:"column:cast_members;type:text[]"`
	PosterPath     string         `json:"poster_path"`
	BackdropPath   string         `json:"backdrop_path"`
	VideoURL       string         `json:"videoUrl"`
	TrailerURL     string         `json:"trailerUrl,omitempty"`
	MaturityRating string         `json:"maturityRating"`
	VoteAverage    float64        `json:"vote_average"`
	VoteCount      int            `json:"vote_count"`
	IsTrending     bool           `json:"isTrending"`
	IsTopRated     bool           `json:"isTopRated"`
	IsOriginal     bool           `json:"isOriginal"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// MovieFilter 影片列表过滤条件（零值表示不过滤）
type MovieFilter struct {
	Genre    string
	Trending bool
	TopRated bool
	Original bool
}

// UserPatch 用户资料更新补丁（密码不走通用更新路径）
type UserPatch struct {
	Name  *string
	Email *string
	Role  *string
}

// MoviePatch 影片更新补丁，nil 字段保持原值
type MoviePatch struct {
	Title          *string
	Description    *string
	ReleaseYear    *int
	Duration       *int
	Genres         *[]string
	Director       *string
	Cast           *[]string
	PosterPath     *string
	BackdropPath   *string
	VideoURL       *string
	TrailerURL     *string
	MaturityRating *string
	VoteAverage    *float64
	VoteCount      *int
	IsTrending     *bool
	IsTopRated     *bool
	IsOriginal     *bool
}

// Stats 后台统计数据
type Stats struct {
	UserStats  UserStats  `json:"userStats"`
	MovieStats MovieStats `json:"movieStats"`
}

// UserStats 按角色统计用户数
type UserStats struct {
	Total   int64 `json:"total"`
	Admin   int64 `json:"admin"`
	Regular int64 `json:"regular"`
}

// MovieStats 按分类统计影片数
type MovieStats struct {
	Total    int64 `json:"total"`
	Trending int64 `json:"trending"`
	TopRated int64 `json:"topRated"`
}
