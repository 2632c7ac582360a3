package model

type Category struct {
	BaseModel

	Name string `gorm:"size:255;not null" json:"name"`
	Slug string `gorm:"size:255;uniqueIndex;not null" json:"slug"` // 派生规则与商品一致

	IsActive bool `gorm:"index" json:"is_active"`

	Products []Product `gorm:"foreignKey:CategoryID" json:"-"`
}

func (Category) TableName() string {
	return "categories"
}
