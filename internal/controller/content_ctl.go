package controller

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/api/dto"
	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/service"
)

type ContentController struct {
	contentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{contentService: contentService}
}

func toContentResp(content *model.Content) dto.ContentResp {
	return dto.ContentResp{
		ID:        content.ID,
		Title:     content.Title,
		Content:   content.Content,
		Image:     content.Image,
		CreatedBy: content.CreatedBy,
		UpdatedBy: content.UpdatedBy,
		CreatedAt: content.CreatedAt,
		UpdatedAt: content.UpdatedAt,
	}
}

// ==================== 前台接口 ====================

// GetContents 获取内容列表
// @Summary 站点内容列表
// @Tags Content
// @Success 200 {array} dto.ContentResp
// @Router /api/contents [get]
func (ctrl *ContentController) GetContents(c *gin.Context) {
	ctx := c.Request.Context()
	contents, err := ctrl.contentService.ListAll(ctx)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	respList := make([]dto.ContentResp, 0, len(contents))
	for i := range contents {
		respList = append(respList, toContentResp(&contents[i]))
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": respList})
}

// GetContent 获取内容详情
// @Summary 站点内容详情
// @Tags Content
// @Param id path int true "内容ID"
// @Success 200 {object} dto.ContentResp
// @Router /api/contents/{id} [get]
func (ctrl *ContentController) GetContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的内容ID"})
		return
	}

	ctx := c.Request.Context()
	content, err := ctrl.contentService.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "内容不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toContentResp(content)})
}

// GetContacts 获取联系方式
// @Summary 联系方式区块
// @Tags Content
// @Success 200 {object} service.Contacts
// @Router /api/contents/contacts [get]
func (ctrl *ContentController) GetContacts(c *gin.Context) {
	ctx := c.Request.Context()
	contacts, err := ctrl.contentService.GetContacts(ctx)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": contacts})
}

// ==================== 后台接口 ====================

// CreateContent 创建内容
// @Summary 创建站点内容
// @Tags Content
// @Param body body dto.CreateContentReq true "内容"
// @Success 200 {object} dto.ContentResp
// @Router /api/admin/contents [post]
func (ctrl *ContentController) CreateContent(c *gin.Context) {
	var req dto.CreateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	adminEmail := middleware.GetUserEmail(c)

	ctx := c.Request.Context()
	content, err := ctrl.contentService.Create(ctx, req.Title, req.Content, req.Image, &adminEmail)
	if err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			c.JSON(400, gin.H{"code": 400, "message": "标题不能为空"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "创建失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toContentResp(content)})
}

// UpdateContent 更新内容
// @Summary 更新站点内容
// @Tags Content
// @Param id path int true "内容ID"
// @Param body body dto.UpdateContentReq true "内容"
// @Success 200 {object} dto.ContentResp
// @Router /api/admin/contents/{id} [put]
func (ctrl *ContentController) UpdateContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的内容ID"})
		return
	}

	var req dto.UpdateContentReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	adminEmail := middleware.GetUserEmail(c)

	ctx := c.Request.Context()
	content, err := ctrl.contentService.Update(ctx, id, req.Title, req.Content, req.Image, &adminEmail)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "内容不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": toContentResp(content)})
}

// DeleteContent 删除内容
// @Summary 删除站点内容
// @Tags Content
// @Param id path int true "内容ID"
// @Router /api/admin/contents/{id} [delete]
func (ctrl *ContentController) DeleteContent(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(400, gin.H{"code": 400, "message": "无效的内容ID"})
		return
	}

	ctx := c.Request.Context()
	if err := ctrl.contentService.Delete(ctx, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(404, gin.H{"code": 404, "message": "内容不存在"})
			return
		}
		c.JSON(500, gin.H{"code": 500, "message": "删除失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success"})
}

// UpdateContacts 更新联系方式
// @Summary 更新联系方式区块（十行同一事务）
// @Tags Content
// @Param body body dto.UpdateContactsReq true "联系方式"
// @Success 200 {object} service.Contacts
// @Router /api/admin/contents/contacts [put]
func (ctrl *ContentController) UpdateContacts(c *gin.Context) {
	var req dto.UpdateContactsReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(400, gin.H{"code": 400, "message": "无效的请求参数: " + err.Error()})
		return
	}

	in := service.Contacts{
		Name:        req.Name,
		Address:     req.Address,
		Email:       req.Email,
		Phone:       req.Phone,
		Whatsapp:    req.Whatsapp,
		Map:         req.Map,
		Operational: req.Operational,
		Instagram:   req.Instagram,
		Facebook:    req.Facebook,
		Tiktok:      req.Tiktok,
	}

	ctx := c.Request.Context()
	if err := ctrl.contentService.UpdateContacts(ctx, in, middleware.GetUserEmail(c)); err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "更新失败: " + err.Error()})
		return
	}

	contacts, err := ctrl.contentService.GetContacts(ctx)
	if err != nil {
		c.JSON(500, gin.H{"code": 500, "message": "查询失败: " + err.Error()})
		return
	}

	c.JSON(200, gin.H{"code": 0, "message": "success", "data": contacts})
}
