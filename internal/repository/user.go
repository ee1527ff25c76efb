package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/user/nextflix/internal/model"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建 Postgres 用户仓库
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create 创建用户，邮箱冲突返回 ErrDuplicateEmail
func (r *userRepository) Create(name, email, password, role string) (*model.User, error) {
	// 密码哈希
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleUser
	}

	now := time.Now()
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		MyList:       pq.Int64Array{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := r.db.Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, err
	}

	return user, nil
}

// FindByEmail 根据邮箱查找用户
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	var user model.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// FindByID 根据 ID 查找用户
func (r *userRepository) FindByID(id int) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// Update 合并补丁字段并刷新更新时间，密码不走此路径
func (r *userRepository) Update(id int, patch model.UserPatch) (*model.User, error) {
	updates := map[string]interface{}{"updated_at": time.Now()}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.Email != nil {
		updates["email"] = *patch.Email
	}
	if patch.Role != nil {
		updates["role"] = *patch.Role
	}

	result := r.db.Model(&model.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}

	return r.FindByID(id)
}

// UpdatePassword 更新密码哈希
func (r *userRepository) UpdatePassword(id int, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"password_hash": hash, "updated_at": time.Now()}).Error
}

// UpdateWatchlist 覆写用户片单
func (r *userRepository) UpdateWatchlist(id int, list []int64) error {
	return r.db.Model(&model.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{"my_list": pq.Int64Array(list), "updated_at": time.Now()}).Error
}

// ListAll 获取所有用户列表
func (r *userRepository) ListAll() ([]*model.User, error) {
	var users []*model.User
	err := r.db.Order("id ASC").Find(&users).Error
	return users, err
}

// Delete 删除用户
func (r *userRepository) Delete(id int) error {
	result := r.db.Delete(&model.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Count 获取用户总数
func (r *userRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Count(&count).Error
	return count, err
}

// CountByRole 按角色统计用户数
func (r *userRepository) CountByRole(role string) (int64, error) {
	var count int64
	err := r.db.Model(&model.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}
