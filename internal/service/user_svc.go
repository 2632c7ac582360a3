package service

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
)

// ==================== UserService 用户服务 ====================

// 密码最短长度
const minPasswordLength = 6

// CreateUserInput 创建用户入参
type CreateUserInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
	IsActive        *bool
}

// UpdateUserInput 更新用户入参，nil 表示不修改
type UpdateUserInput struct {
	Name     *string
	Email    *string
	Role     *string
	IsActive *bool
}

// UserService 用户服务
type UserService struct {
	userRepo repository.UserRepository
}

// NewUserService 创建用户服务
func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

// List 用户列表
func (s *UserService) List(ctx context.Context, filter repository.UserFilter) ([]model.User, error) {
	return s.userRepo.List(ctx, filter)
}

// GetByID 用户详情
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create 创建用户
func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*model.User, error) {
	email := strings.TrimSpace(strings.ToLower(in.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if err := s.validatePassword(in.Password, in.ConfirmPassword); err != nil {
		return nil, err
	}

	// 邮箱唯一校验
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = model.RoleAdmin
	}
	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	user := &model.User{
		Name:     in.Name,
		Email:    email,
		Password: string(hashed),
		Role:     role,
		IsActive: isActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Update 更新用户（不含密码，密码走 ResetPassword）
func (s *UserService) Update(ctx context.Context, id int64, in UpdateUserInput) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil {
		user.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*in.Email))
		if email == "" {
			return nil, ErrEmailRequired
		}
		if email != user.Email {
			existing, err := s.userRepo.GetByEmail(ctx, email)
			if err != nil {
				return nil, err
			}
			if existing != nil && existing.ID != user.ID {
				return nil, ErrEmailTaken
			}
			user.Email = email
		}
	}
	if in.Role != nil {
		user.Role = *in.Role
	}
	if in.IsActive != nil {
		user.IsActive = *in.IsActive
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetPassword 重置密码
func (s *UserService) ResetPassword(ctx context.Context, id int64, password, confirm string) error {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}

	if err := s.validatePassword(password, confirm); err != nil {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashed)
	return s.userRepo.Update(ctx, user)
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, id int64) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *UserService) validatePassword(password, confirm string) error {
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if confirm != "" && confirm != password {
		return ErrPasswordMismatch
	}
	return nil
}
