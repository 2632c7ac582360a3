package dto

import "time"

// ==================== 请求 DTO ====================

// CreateContentReq 创建内容请求
type CreateContentReq struct {
	Title   string  `json:"title" binding:"required,max=255"`
	Content *string `json:"content"`
	Image   *string `json:"image"`
}

// UpdateContentReq 更新内容请求
type UpdateContentReq struct {
	Title   *string `json:"title,omitempty" binding:"omitempty,max=255"`
	Content *string `json:"content,omitempty"`
	Image   *string `json:"image,omitempty"`
}

// UpdateContactsReq 更新联系方式请求
type UpdateContactsReq struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Email       *string `json:"email" binding:"omitempty,email"`
	Phone       *string `json:"phone"`
	Whatsapp    *string `json:"whatsapp"`
	Map         *string `json:"map"`
	Operational *string `json:"operational"`
	Instagram   *string `json:"instagram"`
	Facebook    *string `json:"facebook"`
	Tiktok      *string `json:"tiktok"`
}

// ==================== 响应 DTO ====================

// ContentResp 内容响应
type ContentResp struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	Image     *string   `json:"image"`
	CreatedBy *string   `json:"created_by"`
	UpdatedBy *string   `json:"updated_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
