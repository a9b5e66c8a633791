package user

import (
	"context"

	"github.com/xiebiao/bookstore-api/internal/domain/user"
)

// RegisterUseCase 用户注册用例，只能注册user角色
type RegisterUseCase struct {
	userService user.Service
}

// NewRegisterUseCase 创建注册用例
func NewRegisterUseCase(userService user.Service) *RegisterUseCase {
	return &RegisterUseCase{
		userService: userService,
	}
}

// Execute 执行注册
func (uc *RegisterUseCase) Execute(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	u, err := uc.userService.Register(ctx, req.Username, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	return &RegisterResponse{
		Message: "User registered successfully",
		User:    ToUserInfo(u),
	}, nil
}

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string
	Email    string
	Password string
}

// RegisterResponse 注册响应
type RegisterResponse struct {
	Message string   `json:"message"`
	User    UserInfo `json:"user"`
}
