package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/internal/service"
)

type UserController struct {
	userService *service.UserService
}

func NewUserController(userService *service.UserService) *UserController {
	return &UserController{userService: userService}
}

func toUserInfo(user *model.User) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Role:      user.Role,
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// GetUsers 获取用户列表
// @Summary 用户列表
// @Tags User
// @Param search query string false "名称或邮箱搜索"
// @Param role query string false "角色筛选"
// @Success 200 {array} dto.UserInfo
// @Router /api/admin/users [get]
func (ctrl *UserController) GetUsers(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的查询参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	users, err := ctrl.userService.List(ctx, repository.UserFilter{
		Search:     req.Search,
		Role:       req.Role,
		Sort:       req.Sort,
		SortDir:    req.SortDir,
		LimitStart: req.LimitStart,
		LimitEnd:   req.LimitEnd,
	})
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]*dto.UserInfo, 0, len(users))
	for i := range users {
		respList = append(respList, toUserInfo(&users[i]))
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": respList})
}

// GetUser 获取用户详情
// @Summary 用户详情
// @Tags User
// @Param id path int true "用户ID"
// @Success 200 {object} dto.UserInfo
// @Router /api/admin/users/{id} [get]
func (ctrl *UserController) GetUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的用户ID"})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.userService.GetByID(ctx, id)
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

// CreateUser 创建用户
// @Summary 创建用户
// @Tags User
// @Param body body dto.CreateUserRequest true "用户信息"
// @Success 200 {object} dto.UserInfo
// @Router /api/admin/users [post]
func (ctrl *UserController) CreateUser(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.userService.Create(ctx, service.CreateUserInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            req.Role,
		IsActive:        req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(400, gin.H{"code": 400, "message": "邮箱不能为空"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(409, gin.H{"code": 409, "message": "邮箱已被占用"})
		case errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(400, gin.H{"code": 400, "message": "密码长度至少 6 位"})
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(400, gin.H{"code": 400, "message": "两次输入的密码不一致"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toUserInfo(user)})
}

// UpdateUser 更新用户
// @Summary 更新用户（不含密码）
// @Tags User
// @Param id path int true "用户ID"
// @Param body body dto.UpdateUserRequest true "用户信息"
// @Success 200 {object} dto.UserInfo
// @Router /api/admin/users/{id} [put]
func (ctrl *UserController) UpdateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的用户ID"})
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	user, err := ctrl.userService.Update(ctx, id, service.UpdateUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(404, gin.H{"code": 404, "message": "用户不存在"})
		case errors.Is(err, service.ErrEmailRequired):
			c.JSON(400, gin.H{"code": 400, "message": "邮箱不能为空"})
		case errors.Is(err, service.ErrEmailTaken):
			c.JSON(409, gin.H{"code": 409, "message": "邮箱已被占用"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toUserInfo(user)})
}

// ResetPassword 重置用户密码
// @Summary 重置用户密码
// @Tags User
// @Param id path int true "用户ID"
// @Param body body dto.ResetPasswordRequest true "新密码"
// @Router /api/admin/users/{id}/reset-password [put]
func (ctrl *UserController) ResetPassword(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的用户ID"})
		return
	}

	var req dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.userService.ResetPassword(ctx, id, req.Password, req.ConfirmPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(404, gin.H{"code": 404, "message": "用户不存在"})
		case errors.Is(err, service.ErrPasswordTooShort):
			c.JSON(400, gin.H{"code": 400, "message": "密码长度至少 6 位"})
		case errors.Is(err, service.ErrPasswordMismatch):
			c.JSON(400, gin.H{"code": 400, "message": "两次输入的密码不一致"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "重置失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// DeleteUser 删除用户
// @Summary 删除用户
// @Tags User
// @Param id path int true "用户ID"
// @Router /api/admin/users/{id} [delete]
func (ctrl *UserController) DeleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的用户ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.userService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "用户不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
