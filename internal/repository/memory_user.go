package repository

import (
	"sync"
	"time"

	"github.com/lib/pq"
	"github.com/user/nextflix/internal/model"
)

// memoryUserRepository 内存用户仓库：切片保持插入顺序，map 按 ID / 邮箱建索引。
// 读写都返回副本，调用方拿不到仓库内部记录的引用。
type memoryUserRepository struct {
	mu      sync.RWMutex
	seq     int
	users   []*model.User
	byID    map[int]*model.User
	byEmail map[string]*model.User
}

// NewMemoryUserRepository 创建内存用户仓库
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[int]*model.User),
		byEmail: make(map[string]*model.User),
	}
}

func cloneUser(u *model.User) *model.User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.MyList = append(pq.Int64Array{}, u.MyList...)
	return &clone
}

// Create 创建用户，邮箱冲突返回 ErrDuplicateEmail
func (r *memoryUserRepository) Create(name, email, password, role string) (*model.User, error) {
	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	if role == "" {
		role = model.RoleUser
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, ErrDuplicateEmail
	}

	r.seq++
	now := time.Now()
	user := &model.User{
		ID:           r.seq,
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		MyList:       pq.Int64Array{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	r.users = append(r.users, user)
	r.byID[user.ID] = user
	r.byEmail[user.Email] = user

	return cloneUser(user), nil
}

// FindByEmail 根据邮箱查找用户，不存在返回 (nil, nil)
func (r *memoryUserRepository) FindByEmail(email string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.byEmail[email]), nil
}

// FindByID 根据 ID 查找用户，不存在返回 (nil, nil)
func (r *memoryUserRepository) FindByID(id int) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return cloneUser(r.byID[id]), nil
}

// Update 合并补丁字段并刷新更新时间，密码不走此路径
func (r *memoryUserRepository) Update(id int, patch model.UserPatch) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}

	// 邮箱唯一性在合并前检查，冲突时原记录保持不变
	if patch.Email != nil && *patch.Email != user.Email {
		if _, exists := r.byEmail[*patch.Email]; exists {
			return nil, ErrDuplicateEmail
		}
		delete(r.byEmail, user.Email)
		user.Email = *patch.Email
		r.byEmail[user.Email] = user
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	user.UpdatedAt = time.Now()

	return cloneUser(user), nil
}

// UpdatePassword 更新密码哈希
func (r *memoryUserRepository) UpdatePassword(id int, newPassword string) error {
	hash, err := HashPassword(newPassword)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}

	user.PasswordHash = hash
	user.UpdatedAt = time.Now()
	return nil
}

// UpdateWatchlist 覆写用户片单
func (r *memoryUserRepository) UpdateWatchlist(id int, list []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}

	user.MyList = append(pq.Int64Array{}, list...)
	user.UpdatedAt = time.Now()
	return nil
}

// ListAll 按插入顺序返回所有用户
func (r *memoryUserRepository) ListAll() ([]*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*model.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

// Delete 删除用户，不存在返回 ErrNotFound
func (r *memoryUserRepository) Delete(id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.byID[id]
	if !ok {
		return ErrNotFound
	}

	delete(r.byID, id)
	delete(r.byEmail, user.Email)
	for i, u := range r.users {
		if u.ID == id {
			r.users = append(r.users[:i], r.users[i+1:]...)
			break
		}
	}
	return nil
}

// Count 获取用户总数
func (r *memoryUserRepository) Count() (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.users)), nil
}

// CountByRole 按角色统计用户数
func (r *memoryUserRepository) CountByRole(role string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, u := range r.users {
		if u.Role == role {
			count++
		}
	}
	return count, nil
}
