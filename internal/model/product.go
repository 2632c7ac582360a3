package model

import "encoding/json"

type Product struct {
	BaseModel
	AuditMixin

	// --- 基本信息 ---
	Name        string `gorm:"size:255;not null;index" json:"name"`
	Slug        string `gorm:"size:255;uniqueIndex;not null" json:"slug"` // 由 Name 派生，全局唯一
	Description string `gorm:"type:text" json:"description"`

	// --- 价格（印尼盾，可空） ---
	Price    *float64 `gorm:"type:numeric" json:"price"`
	Discount *float64 `gorm:"type:numeric" json:"discount"`

	// --- 分类 ---
	CategoryID *int64    `gorm:"index" json:"category_id"`
	Category   *Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	// --- 电商平台外链 ---
	ShopeeURL    *string `gorm:"size:512" json:"shopee_url"`
	TokopediaURL *string `gorm:"size:512" json:"tokopedia_url"`

	// 上下架标记，默认值在服务层设置
	IsActive bool `gorm:"index" json:"is_active"`

	// Image 存 JSON 序列化后的图片 URL 数组（text 列）
	// 读取统一走 Images()，内容损坏时按空数组处理
	Image string `gorm:"type:text" json:"-"`
}

func (Product) TableName() string {
	return "products"
}

// Images 解析存储的图片序列
// 为空或反序列化失败时返回空切片，绝不向上抛错
func (p *Product) Images() []string {
	if p.Image == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.Image), &urls); err != nil {
		return []string{}
	}
	if urls == nil {
		return []string{}
	}
	return urls
}

// SetImages 写入图片序列（序列化为 JSON 数组）
func (p *Product) SetImages(urls []string) {
	if urls == nil {
		urls = []string{}
	}
	data, _ := json.Marshal(urls)
	p.Image = string(data)
}
