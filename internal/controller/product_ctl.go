package controller

import (
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/service"
)

type ProductController struct {
	productService *service.ProductService
	importService  *service.ImportService
}

func NewProductController(productService *service.ProductService, importService *service.ImportService) *ProductController {
	return &ProductController{
		productService: productService,
		importService:  importService,
	}
}

// ==================== 前台接口 ====================

// GetProducts 获取商品列表
// @Summary 前台商品列表（仅在售）
// @Tags Product
// @Param category query string false "分类 slug"
// @Param search query string false "名称搜索"
// @Param sort query string false "latest / oldest / price_asc / price_desc"
// @Param page query int false "页码" default(1)
// @Param limit query int false "每页数量" default(12)
// @Success 200 {object} dto.ProductListResp
// @Router /api/products [get]
func (ctrl *ProductController) GetProducts(c *gin.Context) {
	var req dto.ProductListReq
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的查询参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	products, meta, err := ctrl.productService.ListProducts(ctx, service.ListQuery{
		CategorySlug: req.Category,
		Search:       req.Search,
		Sort:         req.Sort,
		Page:         req.Page,
		Limit:        req.Limit,
	})
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.ProductResp, 0, len(products))
	for i := range products {
		respList = append(respList, ctrl.productService.ToProductResp(&products[i]))
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ProductListResp{
			Data:     respList,
			Total:    meta.Total,
			Page:     meta.Page,
			Limit:    meta.Limit,
			LastPage: meta.LastPage,
		},
	})
}

// GetProductBySlug 获取商品详情
// @Summary 前台商品详情（仅在售）
// @Tags Product
// @Param slug path string true "商品 slug"
// @Success 200 {object} dto.ProductResp
// @Router /api/products/{slug} [get]
func (ctrl *ProductController) GetProductBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx := c.Request.Context()
	product, err := ctrl.productService.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    ctrl.productService.ToProductResp(product),
	})
}

// ==================== 后台接口 ====================

// CreateProduct 创建商品
// @Summary 创建商品（multipart，images 为文件字段）
// @Tags Product
// @Accept multipart/form-data
// @Success 200 {object} dto.ProductResp
// @Router /api/admin/products [post]
func (ctrl *ProductController) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的表单: " + err.Error()})
		return
	}

	files, err := readUploadedFiles(form)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "读取上传文件失败: " + err.Error()})
		return
	}

	in := service.CreateProductInput{
		Name:         formValue(form, "name"),
		Description:  formValuePtr(form, "description"),
		Price:        formValuePtr(form, "price"),
		Discount:     formValuePtr(form, "discount"),
		CategoryID:   formValuePtr(form, "category_id"),
		ShopeeURL:    formValuePtr(form, "shopee_url"),
		TokopediaURL: formValuePtr(form, "tokopedia_url"),
		IsActive:     formValuePtr(form, "is_active"),
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.Create(ctx, in, files, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(400, gin.H{"code": 400, "message": "商品名称不能为空"})
		case errors.Is(err, service.ErrDuplicateSlug):
			c.JSON(409, gin.H{"code": 409, "message": "同名商品已存在"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    ctrl.productService.ToProductResp(product),
	})
}

// UpdateProduct 更新商品
// @Summary 更新商品（部分更新，未提交的字段保持不变）
// @Tags Product
// @Accept multipart/form-data
// @Param id path int true "商品ID"
// @Success 200 {object} dto.ProductResp
// @Router /api/admin/products/{id} [put]
func (ctrl *ProductController) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的表单: " + err.Error()})
		return
	}

	files, err := readUploadedFiles(form)
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "读取上传文件失败: " + err.Error()})
		return
	}

	in := service.UpdateProductInput{
		Name:         formValuePtr(form, "name"),
		Description:  formValuePtr(form, "description"),
		Price:        formValuePtr(form, "price"),
		Discount:     formValuePtr(form, "discount"),
		CategoryID:   formValuePtr(form, "category_id"),
		ShopeeURL:    formValuePtr(form, "shopee_url"),
		TokopediaURL: formValuePtr(form, "tokopedia_url"),
		IsActive:     formValuePtr(form, "is_active"),
		Images:       parseImagePatch(form),
	}

	ctx := c.Request.Context()
	product, err := ctrl.productService.Update(ctx, id, in, files, middleware.GetUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
		case errors.Is(err, service.ErrDuplicateSlug):
			c.JSON(409, gin.H{"code": 409, "message": "同名商品已存在"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data":    ctrl.productService.ToProductResp(product),
	})
}

// DeleteProduct 删除商品
// @Summary 删除商品
// @Tags Product
// @Param id path int true "商品ID"
// @Router /api/admin/products/{id} [delete]
func (ctrl *ProductController) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的商品ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.productService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "商品不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// ImportProducts 批量导入商品
// @Summary 从 xlsx 文件批量导入商品
// @Tags Product
// @Accept multipart/form-data
// @Param file formData file true "xlsx 文件"
// @Success 200 {object} dto.ImportReportResp
// @Router /api/admin/products/import [post]
func (ctrl *ProductController) ImportProducts(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "未提供导入文件"})
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "打开文件失败: " + err.Error()})
		return
	}
	defer f.Close()

	ctx := c.Request.Context()
	report, err := ctrl.importService.ImportFromFile(ctx, f, middleware.GetUserID(c))
	if err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "解析文件失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.ImportReportResp{
			Success: report.Success,
			Failed:  report.Failed,
			Errors:  report.Errors,
		},
	})
}

// ==================== multipart 解析 ====================

// images[0]、images[1] 这类带下标的键
var indexedImagesKey = regexp.MustCompile(`^images\[(\d+)\]$`)

// parseImagePatch 解析 images 字段
// 支持三种提交方式：JSON 数组字符串、重复的 images 键、images[N] 下标键
// 完全没提交时 Present=false，原图保持不动
func parseImagePatch(form *multipart.Form) service.ImagePatch {
	patch := service.ImagePatch{}

	if values, ok := form.Value["images"]; ok {
		patch.Present = true
		for _, v := range values {
			v = strings.TrimSpace(v)
			if v == "" {
				continue
			}
			// JSON 数组字符串优先，解析失败按单个 URL 处理
			if strings.HasPrefix(v, "[") {
				var urls []string
				if err := json.Unmarshal([]byte(v), &urls); err == nil {
					patch.Retained = append(patch.Retained, urls...)
					continue
				}
			}
			patch.Retained = append(patch.Retained, v)
		}
	}

	// 带下标的键按数字序拼回数组
	type indexed struct {
		idx int
		url string
	}
	var extras []indexed
	for key, values := range form.Value {
		m := indexedImagesKey.FindStringSubmatch(key)
		if m == nil || len(values) == 0 {
			continue
		}
		patch.Present = true
		idx, _ := strconv.Atoi(m[1])
		extras = append(extras, indexed{idx: idx, url: values[0]})
	}
	sort.Slice(extras, func(i, j int) bool { return extras[i].idx < extras[j].idx })
	for _, e := range extras {
		patch.Retained = append(patch.Retained, e.url)
	}

	return patch
}

// readUploadedFiles 收集 images 相关文件字段并读入内存
func readUploadedFiles(form *multipart.Form) ([]service.UploadedFile, error) {
	// map 遍历无序，字段名排序保证上传顺序稳定
	// images[N] 按 N 的数字序排，字典序会把 images[10] 排到 images[2] 前面
	fields := make([]string, 0, len(form.File))
	for field := range form.File {
		if strings.HasPrefix(field, "images") {
			fields = append(fields, field)
		}
	}
	sort.Slice(fields, func(i, j int) bool {
		mi := indexedImagesKey.FindStringSubmatch(fields[i])
		mj := indexedImagesKey.FindStringSubmatch(fields[j])
		if mi != nil && mj != nil {
			a, _ := strconv.Atoi(mi[1])
			b, _ := strconv.Atoi(mj[1])
			return a < b
		}
		return fields[i] < fields[j]
	})

	var files []service.UploadedFile
	for _, field := range fields {
		for _, h := range form.File[field] {
			f, err := h.Open()
			if err != nil {
				return nil, err
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return nil, err
			}
			files = append(files, service.UploadedFile{Name: h.Filename, Data: data})
		}
	}
	return files, nil
}

// ==================== 表单取值 ====================

func formValue(form *multipart.Form, key string) string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return values[0]
	}
	return ""
}

// formValuePtr 字段未提交时返回 nil，提交空串返回空串指针
func formValuePtr(form *multipart.Form, key string) *string {
	if values, ok := form.Value[key]; ok && len(values) > 0 {
		return &values[0]
	}
	return nil
}
