package user

import (
	"time"
)

// Role 用户角色
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole 未知角色按普通用户处理
func ParseRole(s string) Role {
	if Role(s) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// User 用户实体
// 设计说明：
// 1. PasswordHash是bcrypt哈希值，序列化时由DTO层剔除
// 2. 领域实体不依赖GORM tag，映射由persistence层完成
// 3. 权限判断只看Role，实体一旦加载就不再修改
type User struct {
	ID           uint
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// NewUser 创建新用户（工厂方法），hashedPassword必须是bcrypt哈希
func NewUser(username, email, hashedPassword string, role Role) *User {
	return &User{
		Username:     username,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
