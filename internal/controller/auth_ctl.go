package controller

import (
	"errors"

	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Login 登录
// @Summary 管理员登录
// @Tags Auth
// @Param body body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	token, user, err := ctrl.authService.Login(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// 账号不存在、停用、密码错误统一提示
			c.JSON(401, gin.H{"code": 401, "message": "邮箱或密码错误"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "登录失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.LoginResponse{
			AccessToken: token,
			User:        toUserInfo(user),
		},
	})
}

// Profile 当前登录用户
// @Summary 当前登录用户信息
// @Tags Auth
// @Success 200 {object} dto.UserInfo
// @Router /api/auth/profile [get]
func (ctrl *AuthController) Profile(c *gin.Context) {
	ctx := c.Request.Context()
	user, err := ctrl.authService.Profile(ctx, middleware.GetUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "用户不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toUserInfo(user)})
}
