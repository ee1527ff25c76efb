package repository

import "errors"

// 存储层哨兵错误，由 handler 统一翻译为响应状态码
var (
	// ErrNotFound 记录不存在
	ErrNotFound = errors.New("记录不存在")
	// ErrDuplicateEmail 邮箱已被注册（唯一约束冲突）
	ErrDuplicateEmail = errors.New("该邮箱已被注册")
)
