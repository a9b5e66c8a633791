package dto

import (
	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
)

// LoginRequest 登录请求
type LoginRequest struct {
	Username string `json:"username" binding:"max=64" example:"admin"`
	Password string `json:"password" binding:"max=128" example:"admin123"`
}

// RegisterRequest 注册请求
// 字段缺失由应用层统一报错，这里只限制长度
type RegisterRequest struct {
	Username string `json:"username" binding:"max=64" example:"reader01"`
	Email    string `json:"email" binding:"max=120" example:"reader01@example.com"`
	Password string `json:"password" binding:"max=64" example:"Passw0rd1"`
}

// UserEnvelope {"user": {...}}
type UserEnvelope struct {
	User appuser.UserInfo `json:"user"`
}
