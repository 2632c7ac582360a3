package dto

import "time"

// ==================== 请求 DTO ====================

// ProductListReq 商品列表请求
type ProductListReq struct {
	Category string `form:"category"` // 分类 slug
	Search   string `form:"search"`
	Sort     string `form:"sort"` // latest / oldest / price_asc / price_desc
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=12"`
}

// ==================== 响应 DTO ====================

// ProductResp 商品详情响应
type ProductResp struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`

	// 价格（印尼盾，可空）
	Price    *float64 `json:"price"`
	Discount *float64 `json:"discount"`

	// 分类
	CategoryID *int64        `json:"category_id"`
	Category   *CategoryResp `json:"category,omitempty"`

	// 电商平台外链
	ShopeeURL    *string `json:"shopee_url"`
	TokopediaURL *string `json:"tokopedia_url"`

	IsActive bool     `json:"is_active"`
	Images   []string `json:"images"`

	// 审计
	CreatedBy int64     `json:"created_by"`
	UpdatedBy int64     `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProductListResp 商品列表响应
type ProductListResp struct {
	Data     []ProductResp `json:"data"`
	Total    int64         `json:"total"`
	Page     int           `json:"page"`
	Limit    int           `json:"limit"`
	LastPage int64         `json:"last_page"`
}

// ImportReportResp 批量导入结果响应
type ImportReportResp struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors"`
}
