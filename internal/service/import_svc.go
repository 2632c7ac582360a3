package service

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"github.com/xuri/excelize/v2"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/pkg/utils"
)

// 表格第一行是表头，数据行 0 在表格里是第 2 行
const importHeaderOffset = 2

// ==================== 类型定义 ====================

// ImportRow 一行导入数据（已按表头映射，原始字符串）
type ImportRow struct {
	Name         string
	CategoryName string
	Price        string
	Discount     string
	ShopeeURL    string
	TokopediaURL string
	ImageURL     string
}

// ImportReport 导入结果汇总
type ImportReport struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}

// ==================== ImportService 批量导入服务 ====================

// ImportService 表格批量导入
// 行与行严格串行处理：后面的行依赖前面行新建分类的可见性
type ImportService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	storage      StorageProvider
}

// NewImportService 创建导入服务
func NewImportService(productRepo repository.ProductRepository, categoryRepo repository.CategoryRepository, storage StorageProvider) *ImportService {
	return &ImportService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		storage:      storage,
	}
}

// ImportFromFile 解析 xlsx 并导入
// 读第一个工作表，第一行为表头；无法识别的列忽略
func (s *ImportService) ImportFromFile(ctx context.Context, r io.Reader, adminID int64) (*ImportReport, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("无法打开表格文件: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("表格文件没有工作表")
	}

	rawRows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("读取工作表失败: %v", err)
	}
	if len(rawRows) == 0 {
		return &ImportReport{Errors: []string{}}, nil
	}

	cols := mapHeaderColumns(rawRows[0])

	rows := make([]ImportRow, 0, len(rawRows)-1)
	for _, raw := range rawRows[1:] {
		rows = append(rows, ImportRow{
			Name:         cellAt(raw, cols.name),
			CategoryName: cellAt(raw, cols.category),
			Price:        cellAt(raw, cols.price),
			Discount:     cellAt(raw, cols.discount),
			ShopeeURL:    cellAt(raw, cols.shopee),
			TokopediaURL: cellAt(raw, cols.tokopedia),
			ImageURL:     cellAt(raw, cols.image),
		})
	}

	return s.ImportRows(ctx, rows, adminID), nil
}

// ImportRows 按输入顺序逐行 upsert
// 单行失败只记入报告，绝不中断整个批次
func (s *ImportService) ImportRows(ctx context.Context, rows []ImportRow, adminID int64) *ImportReport {
	report := &ImportReport{Errors: []string{}}

	// 分类缓存仅限本次运行，大小写不敏感，按名称匹配
	categoryCache := s.preloadCategories(ctx)

	for i, row := range rows {
		rowNum := i + importHeaderOffset
		if err := s.importRow(ctx, row, categoryCache, adminID); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}
		report.Success++
	}

	return report
}

// importRow 处理单行：解析字段、分类解析、按 slug upsert
func (s *ImportService) importRow(ctx context.Context, row ImportRow, categoryCache map[string]int64, adminID int64) error {
	name := strings.TrimSpace(row.Name)
	if name == "" {
		return fmt.Errorf("product name is required")
	}

	// 容忍货币格式（Rp 前缀、千位分隔符），解析不了按 null 处理
	price := currencyToAmount(row.Price)
	discount := currencyToAmount(row.Discount)

	categoryID, err := s.resolveCategory(ctx, row.CategoryName, categoryCache)
	if err != nil {
		return err
	}

	slug := utils.Slugify(name)
	existing, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil && !repository.IsNotFound(err) {
		return err
	}

	if existing != nil {
		// 已存在：只更新导入涉及的字段，图片和上下架状态不动（表格里的图片列也忽略）
		return s.productRepo.UpdateFields(ctx, existing.ID, map[string]interface{}{
			"name":          name,
			"category_id":   categoryID,
			"price":         price,
			"discount":      discount,
			"shopee_url":    emptyToNil(row.ShopeeURL),
			"tokopedia_url": emptyToNil(row.TokopediaURL),
			"updated_by":    adminID,
		})
	}

	// 新商品带图片列时先转存到对象存储，下载失败算该行失败
	images, err := s.fetchRowImage(ctx, row.ImageURL)
	if err != nil {
		return err
	}

	product := &model.Product{
		Name:         name,
		Slug:         slug,
		Price:        price,
		Discount:     discount,
		CategoryID:   categoryID,
		ShopeeURL:    emptyToNil(row.ShopeeURL),
		TokopediaURL: emptyToNil(row.TokopediaURL),
		IsActive:     true,
	}
	product.SetImages(images)
	product.CreatedBy = adminID
	return s.productRepo.Create(ctx, product)
}

// fetchRowImage 把图片列的外链转存到自己的存储，返回初始图片集合
func (s *ImportService) fetchRowImage(ctx context.Context, sourceURL string) ([]string, error) {
	sourceURL = strings.TrimSpace(sourceURL)
	if sourceURL == "" {
		return nil, nil
	}
	if s.storage == nil {
		return nil, fmt.Errorf("image storage is not configured")
	}

	stored, err := s.storage.UploadFromURL(ctx, sourceURL, productImageDir, filenameFromURL(sourceURL))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image %s: %v", sourceURL, err)
	}
	return []string{stored}, nil
}

// filenameFromURL 取 URL 路径末段当原始文件名，解析不了就用占位名
func filenameFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "image.jpg"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" {
		return "image.jpg"
	}
	return name
}

// resolveCategory 分类名 -> 分类 ID
// 缓存没有就新建并写回缓存，让同一批次后面的行直接命中
func (s *ImportService) resolveCategory(ctx context.Context, name string, cache map[string]int64) (*int64, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, nil
	}

	key := strings.ToLower(name)
	if id, ok := cache[key]; ok {
		return &id, nil
	}

	category := &model.Category{
		Name:     name,
		Slug:     utils.Slugify(name),
		IsActive: true,
	}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category %q: %v", name, err)
	}

	cache[key] = category.ID
	return &category.ID, nil
}

// preloadCategories 预载所有分类到名称映射
func (s *ImportService) preloadCategories(ctx context.Context) map[string]int64 {
	cache := make(map[string]int64)
	categories, err := s.categoryRepo.ListAll(ctx)
	if err != nil {
		// 预载失败降级为空缓存，后续行会按需新建
		return cache
	}
	for _, c := range categories {
		cache[strings.ToLower(c.Name)] = c.ID
	}
	return cache
}

// ==================== 表头识别 ====================

type headerColumns struct {
	name, category, price, discount, shopee, tokopedia, image int
}

// mapHeaderColumns 按表头文字识别各列位置，未出现的列为 -1
func mapHeaderColumns(header []string) headerColumns {
	cols := headerColumns{name: -1, category: -1, price: -1, discount: -1, shopee: -1, tokopedia: -1, image: -1}

	for i, label := range header {
		switch normalizeHeader(label) {
		case "name", "product name", "nama", "nama produk":
			cols.name = i
		case "category", "kategori":
			cols.category = i
		case "price", "harga":
			cols.price = i
		case "discount", "diskon":
			cols.discount = i
		case "shopee", "shopee url", "link shopee":
			cols.shopee = i
		case "tokopedia", "tokopedia url", "link tokopedia":
			cols.tokopedia = i
		case "image", "image url", "gambar", "url gambar":
			cols.image = i
		}
	}

	return cols
}

func normalizeHeader(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.ReplaceAll(label, "_", " ")
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ==================== 工具函数 ====================

func currencyToAmount(raw string) *float64 {
	n := utils.ParseCurrency(raw)
	if n == nil {
		return nil
	}
	f := float64(*n)
	return &f
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
