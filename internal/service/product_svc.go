package service

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cast"
	"golang.org/x/sync/errgroup"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/pkg/utils"
)

// 商品图片在存储端的逻辑目录
const productImageDir = "products"

// ==================== 输入类型 ====================

// UploadedFile 一个待上传的文件（与 multipart 解耦，方便测试）
type UploadedFile struct {
	Name string
	Data []byte
}

// ImagePatch 更新请求中的 images 字段
// Present 区分「没传该字段」和「传了空列表」——前者保留原图，后者清空
type ImagePatch struct {
	Present  bool
	Retained []string
}

// CreateProductInput 创建商品的表单字段（multipart 里都是原始字符串）
type CreateProductInput struct {
	Name         string
	Description  *string
	Price        *string
	Discount     *string
	CategoryID   *string
	ShopeeURL    *string
	TokopediaURL *string
	IsActive     *string
}

// UpdateProductInput 更新商品的表单字段，nil 表示该字段未提交（部分更新）
type UpdateProductInput struct {
	Name         *string
	Description  *string
	Price        *string
	Discount     *string
	CategoryID   *string
	ShopeeURL    *string
	TokopediaURL *string
	IsActive     *string
	Images       ImagePatch
}

// DeletionScheduler 删除失败后的兜底重试队列
type DeletionScheduler interface {
	Schedule(url string)
}

// ==================== ProductService 商品服务 ====================

// ProductService 商品服务
type ProductService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storage      StorageProvider
	cleanup      DeletionScheduler
}

// NewProductService 创建商品服务
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	storage StorageProvider,
	cleanup DeletionScheduler,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
		cleanup:      cleanup,
	}
}

// ==================== 查询 ====================

// ListQuery 商品列表查询参数
type ListQuery struct {
	CategorySlug string
	Search       string
	Sort         string
	Page         int
	Limit        int
}

// ListMeta 分页信息
type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	Limit    int   `json:"limit"`
	LastPage int64 `json:"last_page"`
}

// ListProducts 前台商品列表（仅在售商品）
// 未知分类 slug 返回空页而不是错误
func (s *ProductService) ListProducts(ctx context.Context, q ListQuery) ([]model.Product, *ListMeta, error) {
	if q.Page <= 0 {
		q.Page = 1
	}
	if q.Limit <= 0 {
		q.Limit = 12
	}

	filter := repository.ProductFilter{
		Keyword:    q.Search,
		Sort:       q.Sort,
		ActiveOnly: true,
		Page:       q.Page,
		PageSize:   q.Limit,
	}

	if q.CategorySlug != "" {
		cat, err := s.categoryRepo.GetBySlug(ctx, q.CategorySlug)
		if err != nil {
			if repository.IsNotFound(err) {
				return []model.Product{}, &ListMeta{Total: 0, Page: q.Page, Limit: q.Limit, LastPage: 0}, nil
			}
			return nil, nil, err
		}
		filter.CategoryID = &cat.ID
	}

	products, total, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, nil, err
	}

	lastPage := total / int64(q.Limit)
	if total%int64(q.Limit) > 0 {
		lastPage++
	}

	return products, &ListMeta{
		Total:    total,
		Page:     q.Page,
		Limit:    q.Limit,
		LastPage: lastPage,
	}, nil
}

// GetBySlug 前台商品详情（仅在售商品）
func (s *ProductService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.productRepo.GetActiveBySlug(ctx, slug)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return product, nil
}

// ==================== 创建 ====================

// Create 创建商品
// slug 冲突在任何上传发生之前拒绝，避免为注定失败的请求产生孤儿文件
func (s *ProductService) Create(ctx context.Context, in CreateProductInput, files []UploadedFile, adminID int64) (*model.Product, error) {
	if in.Name == "" {
		return nil, ErrNameRequired
	}

	slug := utils.Slugify(in.Name)
	exists, err := s.productRepo.SlugExists(ctx, slug)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateSlug
	}

	// 新建商品没有旧图片集，上传的文件直接构成初始集合
	urls, err := s.uploadBatch(ctx, files)
	if err != nil {
		return nil, err
	}

	product := &model.Product{
		Name:        in.Name,
		Slug:        slug,
		Description: deref(in.Description),
		IsActive:    true,
	}
	product.Price = parseOptionalAmount(in.Price)
	product.Discount = parseOptionalAmount(in.Discount)
	product.CategoryID = parseOptionalID(in.CategoryID)
	product.ShopeeURL = in.ShopeeURL
	product.TokopediaURL = in.TokopediaURL
	if in.IsActive != nil {
		product.IsActive = utils.ParseBoolFlag(*in.IsActive)
	}
	product.SetImages(urls)
	product.CreatedBy = adminID

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}
	return product, nil
}

// ==================== 更新 ====================

// Update 更新商品（部分更新：只动提交了的字段）
func (s *ProductService) Update(ctx context.Context, id int64, in UpdateProductInput, files []UploadedFile, adminID int64) (*model.Product, error) {
	// 先取当前商品，不存在直接失败，不做任何上传
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.Name != nil && *in.Name != "" {
		newSlug := utils.Slugify(*in.Name)
		if newSlug != product.Slug {
			exists, err := s.productRepo.SlugExists(ctx, newSlug)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrDuplicateSlug
			}
		}
		product.Name = *in.Name
		product.Slug = newSlug
	}

	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Price != nil {
		product.Price = parseOptionalAmount(in.Price)
	}
	if in.Discount != nil {
		product.Discount = parseOptionalAmount(in.Discount)
	}
	if in.CategoryID != nil {
		product.CategoryID = parseOptionalID(in.CategoryID)
	}
	if in.ShopeeURL != nil {
		product.ShopeeURL = in.ShopeeURL
	}
	if in.TokopediaURL != nil {
		product.TokopediaURL = in.TokopediaURL
	}
	if in.IsActive != nil {
		product.IsActive = utils.ParseBoolFlag(*in.IsActive)
	}

	final, toDelete, err := s.reconcileImages(ctx, product.Images(), in.Images, files)
	if err != nil {
		return nil, err
	}
	product.SetImages(final)
	product.UpdatedBy = adminID

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	// 数据已落库，旧图清理只做 best-effort，失败进重试队列
	s.deleteBlobs(ctx, toDelete)

	return product, nil
}

// Delete 删除商品
func (s *ProductService) Delete(ctx context.Context, id int64) error {
	if err := s.productRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ==================== 图片集合调和 ====================

// reconcileImages 计算更新后的图片集合
// previous: 库里现存的序列；patch: 请求里声明保留的 URL；files: 新上传的文件
// 返回最终序列和需要从存储删除的 URL
func (s *ProductService) reconcileImages(ctx context.Context, previous []string, patch ImagePatch, files []UploadedFile) (final []string, toDelete []string, err error) {
	// 只改其它字段（既没传 images 也没传文件）时原图保持不动
	if !patch.Present && len(files) == 0 {
		return previous, nil, nil
	}

	// 保留集只认非空字符串，其余静默丢弃
	retained := make([]string, 0, len(patch.Retained))
	for _, u := range patch.Retained {
		if u != "" {
			retained = append(retained, u)
		}
	}

	uploaded, err := s.uploadBatch(ctx, files)
	if err != nil {
		return nil, nil, err
	}

	final = append(retained, uploaded...)

	keep := make(map[string]struct{}, len(final))
	for _, u := range final {
		keep[u] = struct{}{}
	}
	for _, u := range previous {
		if _, ok := keep[u]; !ok {
			toDelete = append(toDelete, u)
		}
	}

	return final, toDelete, nil
}

// uploadBatch 并发上传一批文件，任何一个失败整批失败
// 返回的 URL 顺序与提交顺序一致
func (s *ProductService) uploadBatch(ctx context.Context, files []UploadedFile) ([]string, error) {
	if len(files) == 0 {
		return nil, nil
	}
	if s.storage == nil {
		return nil, fmt.Errorf("图片存储未初始化")
	}

	urls := make([]string, len(files))
	g, gctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			url, err := s.storage.Upload(gctx, f.Data, productImageDir, f.Name, "")
			if err != nil {
				return fmt.Errorf("上传图片 %s 失败: %v", f.Name, err)
			}
			urls[i] = url
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		// 已完成的上传不回滚，但本次请求不会落库
		return nil, err
	}

	return urls, nil
}

// deleteBlobs 逐个删除存储端文件
// 失败只记日志并丢进重试队列，绝不影响已成功的主流程
func (s *ProductService) deleteBlobs(ctx context.Context, urls []string) {
	if s.storage == nil {
		// 存储不可用时全部进重试队列，等恢复后由定时任务补删
		for _, u := range urls {
			if s.cleanup != nil {
				s.cleanup.Schedule(u)
			}
		}
		return
	}
	for _, u := range urls {
		if err := s.storage.Delete(ctx, u); err != nil {
			log.Printf("[Storage] 删除图片失败（已入重试队列）: %s, err: %v", u, err)
			if s.cleanup != nil {
				s.cleanup.Schedule(u)
			}
		}
	}
}

// ==================== 响应转换 ====================

// ToProductResp 模型转响应（images 统一为解析后的数组）
func (s *ProductService) ToProductResp(p *model.Product) dto.ProductResp {
	resp := dto.ProductResp{
		ID:           p.ID,
		Name:         p.Name,
		Slug:         p.Slug,
		Description:  p.Description,
		Price:        p.Price,
		Discount:     p.Discount,
		CategoryID:   p.CategoryID,
		ShopeeURL:    p.ShopeeURL,
		TokopediaURL: p.TokopediaURL,
		IsActive:     p.IsActive,
		Images:       p.Images(),
		CreatedBy:    p.CreatedBy,
		UpdatedBy:    p.UpdatedBy,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
	if p.Category != nil {
		resp.Category = &dto.CategoryResp{
			ID:       p.Category.ID,
			Name:     p.Category.Name,
			Slug:     p.Category.Slug,
			IsActive: p.Category.IsActive,
		}
	}
	return resp
}

// ==================== 工具函数 ====================

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// parseOptionalAmount 空值和解析失败都按 null 处理（沿用既有行为）
func parseOptionalAmount(raw *string) *float64 {
	if raw == nil {
		return nil
	}
	return utils.ParseAmount(*raw)
}

func parseOptionalID(raw *string) *int64 {
	if raw == nil || *raw == "" {
		return nil
	}
	id, err := cast.ToInt64E(*raw)
	if err != nil || id <= 0 {
		return nil
	}
	return &id
}
