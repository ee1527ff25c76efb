package repository

import (
	"fmt"

	"github.com/user/nextflix/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB 初始化数据库连接
func InitDB(databaseURL string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("无法连接数据库: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	// 测试连接
	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库 ping 失败: %w", err)
	}

	// 设置连接池
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	// 自动迁移表结构
	if err := db.AutoMigrate(&model.User{}, &model.Movie{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// UserRepository 用户存储契约，Postgres 实现与内存实现共用
type UserRepository interface {
	Create(name, email, password, role string) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByID(id int) (*model.User, error)
	Update(id int, patch model.UserPatch) (*model.User, error)
	UpdatePassword(id int, newPassword string) error
	UpdateWatchlist(id int, list []int64) error
	ListAll() ([]*model.User, error)
	Delete(id int) error
	Count() (int64, error)
	CountByRole(role string) (int64, error)
}

// MovieRepository 影片存储契约
type MovieRepository interface {
	List(filter model.MovieFilter) ([]*model.Movie, error)
	FindByID(id int) (*model.Movie, error)
	Search(keyword string) ([]*model.Movie, error)
	Create(movie *model.Movie) (*model.Movie, error)
	Update(id int, patch model.MoviePatch) (*model.Movie, error)
	Delete(id int) error
	Count() (int64, error)
	CountTrending() (int64, error)
	CountTopRated() (int64, error)
}

// Repositories 仓库集合
type Repositories struct {
	User  UserRepository
	Movie MovieRepository
}

// NewRepositories 创建 Postgres 仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:  NewUserRepository(db),
		Movie: NewMovieRepository(db),
	}
}

// NewMemoryRepositories 创建内存仓库集合（未配置数据库时使用，同时充当测试替身）
func NewMemoryRepositories() *Repositories {
	return &Repositories{
		User:  NewMemoryUserRepository(),
		Movie: NewMemoryMovieRepository(),
	}
}
