package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/service"
)

type CategoryController struct {
	categoryService *service.CategoryService
}

func NewCategoryController(categoryService *service.CategoryService) *CategoryController {
	return &CategoryController{categoryService: categoryService}
}

// ==================== 前台接口 ====================

// GetCategories 获取分类列表
// @Summary 前台分类列表（启用中，附带在售商品数）
// @Tags Category
// @Success 200 {array} dto.CategoryResp
// @Router /api/categories [get]
func (ctrl *CategoryController) GetCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := ctrl.categoryService.ListActive(ctx)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.CategoryResp, 0, len(categories))
	for _, cat := range categories {
		count := cat.ProductCount
		respList = append(respList, dto.CategoryResp{
			ID:           cat.ID,
			Name:         cat.Name,
			Slug:         cat.Slug,
			IsActive:     cat.IsActive,
			ProductCount: &count,
		})
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": respList})
}

// GetCategoryBySlug 获取分类详情
// @Summary 前台分类详情
// @Tags Category
// @Param slug path string true "分类 slug"
// @Success 200 {object} dto.CategoryResp
// @Router /api/categories/{slug} [get]
func (ctrl *CategoryController) GetCategoryBySlug(c *gin.Context) {
	slug := c.Param("slug")

	ctx := c.Request.Context()
	cat, err := ctrl.categoryService.GetBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "分类不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	count := cat.ProductCount
	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.CategoryResp{
			ID:           cat.ID,
			Name:         cat.Name,
			Slug:         cat.Slug,
			IsActive:     cat.IsActive,
			ProductCount: &count,
		},
	})
}

// ==================== 后台接口 ====================

// GetAllCategories 后台分类列表
// @Summary 后台分类列表（含停用）
// @Tags Category
// @Success 200 {array} dto.CategoryResp
// @Router /api/admin/categories [get]
func (ctrl *CategoryController) GetAllCategories(c *gin.Context) {
	ctx := c.Request.Context()
	categories, err := ctrl.categoryService.ListAll(ctx)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.CategoryResp, 0, len(categories))
	for _, cat := range categories {
		respList = append(respList, dto.CategoryResp{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			IsActive: cat.IsActive,
		})
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": respList})
}

// CreateCategory 创建分类
// @Summary 创建分类
// @Tags Category
// @Param body body dto.CreateCategoryReq true "分类信息"
// @Success 200 {object} dto.CategoryResp
// @Router /api/admin/categories [post]
func (ctrl *CategoryController) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	ctx := c.Request.Context()
	cat, err := ctrl.categoryService.Create(ctx, req.Name, isActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNameRequired):
			c.JSON(400, gin.H{"code": 400, "message": "分类名称不能为空"})
		case errors.Is(err, service.ErrDuplicateSlug):
			c.JSON(409, gin.H{"code": 409, "message": "同名分类已存在"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.CategoryResp{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			IsActive: cat.IsActive,
		},
	})
}

// UpdateCategory 更新分类
// @Summary 更新分类
// @Tags Category
// @Param id path int true "分类ID"
// @Param body body dto.UpdateCategoryReq true "分类信息"
// @Success 200 {object} dto.CategoryResp
// @Router /api/admin/categories/{id} [put]
func (ctrl *CategoryController) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的分类ID"})
		return
	}

	var req dto.UpdateCategoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	ctx := c.Request.Context()
	cat, err := ctrl.categoryService.Update(ctx, id, req.Name, req.IsActive)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(404, gin.H{"code": 404, "message": "分类不存在"})
		case errors.Is(err, service.ErrDuplicateSlug):
			c.JSON(409, gin.H{"code": 409, "message": "同名分类已存在"})
		default:
			c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		}
		return
	}

	c.JSON(200, gin.H{
		"code":    0,
		"message": "success",
		"data": dto.CategoryResp{
			ID:       cat.ID,
			Name:     cat.Name,
			Slug:     cat.Slug,
			IsActive: cat.IsActive,
		},
	})
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Tags Category
// @Param id path int true "分类ID"
// @Router /api/admin/categories/{id} [delete]
func (ctrl *CategoryController) DeleteCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的分类ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.categoryService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "分类不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}
