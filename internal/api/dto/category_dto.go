package dto

// ==================== 请求 DTO ====================

// CreateCategoryReq 创建分类请求
type CreateCategoryReq struct {
	Name     string `json:"name" binding:"required,max=255"`
	IsActive *bool  `json:"is_active"`
}

// UpdateCategoryReq 更新分类请求
type UpdateCategoryReq struct {
	Name     *string `json:"name,omitempty" binding:"omitempty,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ==================== 响应 DTO ====================

// CategoryResp 分类响应
type CategoryResp struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Slug     string `json:"slug"`
	IsActive bool   `json:"is_active"`

	// ProductCount 该分类下在售商品数（前台列表用）
	ProductCount *int64 `json:"product_count,omitempty"`
}
