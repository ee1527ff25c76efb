package repository

import "log"

// SeedAdmin 在内存模式下预置一个管理员账号，方便本地直接体验后台功能。
// 邮箱已存在时不做任何事，幂等。
func SeedAdmin(users UserRepository, email, password string) {
	existing, err := users.FindByEmail(email)
	if err != nil || existing != nil {
		return
	}

	if _, err := users.Create("Admin User", email, password, "admin"); err != nil {
		log.Printf("预置管理员失败: %v", err)
		return
	}

	log.Printf("已预置默认管理员账号: %s", email)
}
