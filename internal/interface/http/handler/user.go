package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	appuser "github.com/xiebiao/bookstore-api/internal/application/user"
	"github.com/xiebiao/bookstore-api/internal/domain/query"
	"github.com/xiebiao/bookstore-api/internal/interface/http/dto"
	"github.com/xiebiao/bookstore-api/internal/interface/http/middleware"
	"github.com/xiebiao/bookstore-api/pkg/response"
)

// Authenticator 登录
type Authenticator interface {
	Execute(ctx context.Context, req appuser.LoginRequest) (*appuser.LoginResponse, error)
}

// Registrar 注册
type Registrar interface {
	Execute(ctx context.Context, req appuser.RegisterRequest) (*appuser.RegisterResponse, error)
}

// SessionCloser 登出
type SessionCloser interface {
	Execute(ctx context.Context, req appuser.LogoutRequest) error
}

// Profiles 用户信息查询
type Profiles interface {
	Me(ctx context.Context, userID uint) (*appuser.UserInfo, error)
	List(ctx context.Context, page query.Page) ([]appuser.UserInfo, int64, error)
}

// UserHandler 认证与用户HTTP处理器
// Handler只负责解析请求、调用应用层、返回响应
type UserHandler struct {
	login    Authenticator
	register Registrar
	logout   SessionCloser
	profiles Profiles
}

// NewUserHandler 创建用户处理器
func NewUserHandler(login *appuser.LoginUseCase, register *appuser.RegisterUseCase, logout *appuser.LogoutUseCase, profiles *appuser.ProfileQuery) *UserHandler {
	return newUserHandler(login, register, logout, profiles)
}

func newUserHandler(login Authenticator, register Registrar, logout SessionCloser, profiles Profiles) *UserHandler {
	return &UserHandler{login: login, register: register, logout: logout, profiles: profiles}
}

// Login 用户登录
// @Summary      用户登录
// @Description  校验用户名密码，返回JWT Token
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "登录信息"
// @Success      200 {object} appuser.LoginResponse
// @Failure      400 {object} response.ErrorBody "缺少用户名或密码"
// @Failure      401 {object} response.ErrorBody "用户名或密码错误"
// @Router       /api/v1/auth/login [post]
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.login.Execute(c.Request.Context(), appuser.LoginRequest{
		Username: req.Username,
		Password: req.Password,
		ClientIP: c.ClientIP(),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

// Register 用户注册
// @Summary      用户注册
// @Description  创建普通用户账号
// @Tags         认证
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "注册信息"
// @Success      201 {object} appuser.RegisterResponse
// @Failure      400 {object} response.ErrorBody "参数错误或用户名/邮箱已存在"
// @Router       /api/v1/auth/register [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.register.Execute(c.Request.Context(), appuser.RegisterRequest{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Logout 登出，当前Token加入黑名单直到过期
// @Summary      登出
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]string
// @Failure      401 {object} response.ErrorBody
// @Router       /api/v1/auth/logout [post]
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	req := appuser.LogoutRequest{UserID: claims.UserID, TokenID: claims.ID}
	if claims.ExpiresAt != nil {
		req.ExpiresAt = claims.ExpiresAt.Time
	} else {
		req.ExpiresAt = time.Now()
	}

	if err := h.logout.Execute(c.Request.Context(), req); err != nil {
		response.Error(c, err)
		return
	}
	response.Message(c, "Logout successful")
}

// Me 当前用户信息
// @Summary      当前用户
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserEnvelope
// @Failure      401 {object} response.ErrorBody
// @Failure      404 {object} response.ErrorBody "用户已不存在"
// @Router       /api/v1/auth/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	info, err := h.profiles.Me(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.UserEnvelope{User: *info})
}

// Users 用户列表（管理员）
// @Summary      用户列表
// @Tags         认证
// @Produce      json
// @Security     BearerAuth
// @Param        page     query int false "页码"
// @Param        per_page query int false "每页数量(5-100)"
// @Success      200 {object} map[string]interface{}
// @Failure      403 {object} response.ErrorBody
// @Router       /api/v1/auth/users [get]
func (h *UserHandler) Users(c *gin.Context) {
	page := pageParams(c)
	users, count, err := h.profiles.List(c.Request.Context(), page)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, "users", users, count, page.Number, page.PerPage)
}
