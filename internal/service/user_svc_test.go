package service

import (
	"context"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
)

func newUserTestService(t *testing.T) (*UserService, *AuthService, *gorm.DB) {
	db := setupCatalogTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return NewUserService(userRepo), NewAuthService(userRepo), db
}

// ==================== 用户管理 ====================

func TestUserService_Create(t *testing.T) {
	svc, _, _ := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{
		Name:     "Admin Toko",
		Email:    "Admin@Toko.ID", // 邮箱归一化为小写
		Password: "rahasia123",
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	if user.Email != "admin@toko.id" {
		t.Fatalf("邮箱应归一化为小写: %s", user.Email)
	}
	if user.Role != model.RoleAdmin {
		t.Fatalf("默认角色应为 admin: %s", user.Role)
	}
	if !user.IsActive {
		t.Fatalf("新用户默认应启用")
	}
	// 密码必须以 bcrypt 哈希存储
	if user.Password == "rahasia123" {
		t.Fatalf("密码不应明文存储")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("rahasia123")); err != nil {
		t.Fatalf("密码哈希校验失败: %v", err)
	}
}

func TestUserService_Create_Validations(t *testing.T) {
	svc, _, _ := newUserTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Password: "rahasia123"}); err != ErrEmailRequired {
		t.Fatalf("期望 ErrEmailRequired, 实际: %v", err)
	}
	if _, err := svc.Create(ctx, CreateUserInput{Email: "a@b.id", Password: "12345"}); err != ErrPasswordTooShort {
		t.Fatalf("期望 ErrPasswordTooShort, 实际: %v", err)
	}
	if _, err := svc.Create(ctx, CreateUserInput{
		Email: "a@b.id", Password: "rahasia123", ConfirmPassword: "berbeda123",
	}); err != ErrPasswordMismatch {
		t.Fatalf("期望 ErrPasswordMismatch, 实际: %v", err)
	}

	if _, err := svc.Create(ctx, CreateUserInput{Email: "a@b.id", Password: "rahasia123"}); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	// 邮箱唯一，大小写不敏感
	if _, err := svc.Create(ctx, CreateUserInput{Email: "A@B.ID", Password: "rahasia123"}); err != ErrEmailTaken {
		t.Fatalf("期望 ErrEmailTaken, 实际: %v", err)
	}
}

func TestUserService_Update_EmailTaken(t *testing.T) {
	svc, _, _ := newUserTestService(t)
	ctx := context.Background()

	if _, err := svc.Create(ctx, CreateUserInput{Email: "a@b.id", Password: "rahasia123"}); err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	second, err := svc.Create(ctx, CreateUserInput{Email: "c@d.id", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	email := "a@b.id"
	if _, err := svc.Update(ctx, second.ID, UpdateUserInput{Email: &email}); err != ErrEmailTaken {
		t.Fatalf("期望 ErrEmailTaken, 实际: %v", err)
	}

	// 改回自己的邮箱不算冲突
	own := "c@d.id"
	if _, err := svc.Update(ctx, second.ID, UpdateUserInput{Email: &own}); err != nil {
		t.Fatalf("改回自己的邮箱不应报错: %v", err)
	}
}

func TestUserService_ResetPassword(t *testing.T) {
	svc, auth, _ := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Email: "a@b.id", Password: "lamabanget"})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	if err := svc.ResetPassword(ctx, user.ID, "12345", ""); err != ErrPasswordTooShort {
		t.Fatalf("期望 ErrPasswordTooShort, 实际: %v", err)
	}
	if err := svc.ResetPassword(ctx, user.ID, "barubanget", "barubanget"); err != nil {
		t.Fatalf("重置密码失败: %v", err)
	}

	// 旧密码失效，新密码可登录
	if _, _, err := auth.Login(ctx, "a@b.id", "lamabanget"); err != ErrInvalidCredentials {
		t.Fatalf("旧密码应失效, 实际: %v", err)
	}
	if _, _, err := auth.Login(ctx, "a@b.id", "barubanget"); err != nil {
		t.Fatalf("新密码登录失败: %v", err)
	}
}

// ==================== 登录 ====================

func TestAuthService_Login(t *testing.T) {
	svc, auth, _ := newUserTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateUserInput{
		Name: "Admin", Email: "admin@toko.id", Password: "rahasia123",
	})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	token, user, err := auth.Login(ctx, "admin@toko.id", "rahasia123")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if token == "" {
		t.Fatalf("登录应返回 token")
	}
	if user.ID != created.ID {
		t.Fatalf("返回的用户错误: %d", user.ID)
	}
}

// 账号不存在、密码错误、已停用统一返回同一个错误
func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc, auth, db := newUserTestService(t)
	ctx := context.Background()

	user, err := svc.Create(ctx, CreateUserInput{Email: "admin@toko.id", Password: "rahasia123"})
	if err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}

	if _, _, err := auth.Login(ctx, "tidakada@toko.id", "rahasia123"); err != ErrInvalidCredentials {
		t.Fatalf("不存在的账号: 期望 ErrInvalidCredentials, 实际: %v", err)
	}
	if _, _, err := auth.Login(ctx, "admin@toko.id", "salah"); err != ErrInvalidCredentials {
		t.Fatalf("错误密码: 期望 ErrInvalidCredentials, 实际: %v", err)
	}

	// 停用账号即使密码正确也拒绝
	db.Model(&model.User{}).Where("id = ?", user.ID).Update("is_active", false)
	if _, _, err := auth.Login(ctx, "admin@toko.id", "rahasia123"); err != ErrInvalidCredentials {
		t.Fatalf("停用账号: 期望 ErrInvalidCredentials, 实际: %v", err)
	}
}
