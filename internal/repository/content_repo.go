package repository

import (
	"context"

	"gorm.io/gorm"

	"catalog_api_v1/internal/model"
)

// ==================== 接口定义 ====================

// ContentRepository 内容仓储接口
type ContentRepository interface {
	Create(ctx context.Context, content *model.Content) error
	GetByID(ctx context.Context, id int64) (*model.Content, error)
	Update(ctx context.Context, content *model.Content) error
	Delete(ctx context.Context, id int64) error
	ListAll(ctx context.Context) ([]model.Content, error)
	// ListRange 按 id 升序取 [from, to] 区间（联系方式区块用）
	ListRange(ctx context.Context, from, to int64) ([]model.Content, error)

	WithTx(tx *gorm.DB) ContentRepository
	Transaction(ctx context.Context, fn func(txRepo ContentRepository) error) error
}

// ==================== 仓储实现 ====================

type contentRepo struct {
	db *gorm.DB
}

// NewContentRepository 创建内容仓储
func NewContentRepository(db *gorm.DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) Create(ctx context.Context, content *model.Content) error {
	return r.db.WithContext(ctx).Create(content).Error
}

func (r *contentRepo) GetByID(ctx context.Context, id int64) (*model.Content, error) {
	var content model.Content
	if err := r.db.WithContext(ctx).First(&content, id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

func (r *contentRepo) Update(ctx context.Context, content *model.Content) error {
	return r.db.WithContext(ctx).Save(content).Error
}

func (r *contentRepo) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&model.Content{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *contentRepo) ListAll(ctx context.Context) ([]model.Content, error) {
	var contents []model.Content
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&contents).Error
	return contents, err
}

func (r *contentRepo) ListRange(ctx context.Context, from, to int64) ([]model.Content, error) {
	var contents []model.Content
	err := r.db.WithContext(ctx).
		Where("id >= ? AND id <= ?", from, to).
		Order("id ASC").
		Find(&contents).Error
	return contents, err
}

func (r *contentRepo) WithTx(tx *gorm.DB) ContentRepository {
	return &contentRepo{db: tx}
}

func (r *contentRepo) Transaction(ctx context.Context, fn func(txRepo ContentRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(r.WithTx(tx))
	})
}
