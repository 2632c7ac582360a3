package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"catalog_api_v1/internal/model"
)

// ==================== 接口定义 ====================

// UserFilter 用户列表过滤条件
type UserFilter struct {
	Search     string // 名称或邮箱模糊匹配
	Role       string
	Sort       string // 排序字段
	SortDir    string // asc / desc
	LimitStart int
	LimitEnd   int
}

// UserRepository 用户仓储接口
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, user *model.User) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter UserFilter) ([]model.User, error)
}

// ==================== 仓储实现 ====================

type userRepo struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail 按邮箱查找，不存在时返回 (nil, nil)
func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepo) Update(ctx context.Context, user *model.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *userRepo) List(ctx context.Context, filter UserFilter) ([]model.User, error) {
	var users []model.User

	query := r.db.WithContext(ctx).Model(&model.User{})

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ?", like, like)
	}
	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}

	if filter.Sort != "" {
		dir := "ASC"
		if filter.SortDir == "desc" {
			dir = "DESC"
		}
		// 排序字段白名单，防注入
		switch filter.Sort {
		case "name", "email", "role", "created_at":
			query = query.Order(filter.Sort + " " + dir)
		}
	}

	if filter.LimitStart > 0 {
		query = query.Offset(filter.LimitStart)
	}
	if filter.LimitEnd > filter.LimitStart {
		query = query.Limit(filter.LimitEnd - filter.LimitStart)
	}

	err := query.Find(&users).Error
	return users, err
}
