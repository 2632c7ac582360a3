package service

import (
	"context"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/pkg/utils"
)

// ==================== CategoryService 分类服务 ====================

// CategoryService 分类服务
type CategoryService struct {
	categoryRepo repository.CategoryRepository
}

// NewCategoryService 创建分类服务
func NewCategoryService(categoryRepo repository.CategoryRepository) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

// ListActive 前台分类列表（附带在售商品数，按名称排序）
func (s *CategoryService) ListActive(ctx context.Context) ([]repository.CategoryWithCount, error) {
	categories, err := s.categoryRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]repository.CategoryWithCount, 0, len(categories))
	for _, c := range categories {
		count, err := s.categoryRepo.CountActiveProducts(ctx, c.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, repository.CategoryWithCount{Category: c, ProductCount: count})
	}
	return result, nil
}

// ListAll 后台分类列表（含停用分类）
func (s *CategoryService) ListAll(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.ListAll(ctx)
}

// GetBySlug 分类详情
func (s *CategoryService) GetBySlug(ctx context.Context, slug string) (*repository.CategoryWithCount, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	count, err := s.categoryRepo.CountActiveProducts(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &repository.CategoryWithCount{Category: *category, ProductCount: count}, nil
}

// Create 创建分类（slug 派生规则与商品一致）
func (s *CategoryService) Create(ctx context.Context, name string, isActive bool) (*model.Category, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	slug := utils.Slugify(name)
	exists, err := s.categoryRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	category := &model.Category{
		Name:     name,
		Slug:     slug,
		IsActive: isActive,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Update 更新分类，改名时重新派生 slug
func (s *CategoryService) Update(ctx context.Context, id int64, name *string, isActive *bool) (*model.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if name != nil && *name != "" {
		newSlug := utils.Slugify(*name)
		if newSlug != category.Slug {
			exists, err := s.categoryRepo.SlugExists(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrDuplicateSlug
			}
		}
		category.Name = *name
		category.Slug = newSlug
	}
	if isActive != nil {
		category.IsActive = *isActive
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

// Delete 删除分类
func (s *CategoryService) Delete(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
