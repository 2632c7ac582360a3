package model

// Content 站点内容块
// id 1..10 固定为联系方式（contacts）区块，顺序：
// name, address, email, phone, whatsapp, map, operational, instagram, facebook, tiktok
type Content struct {
	BaseModel

	Title   string  `gorm:"size:255;not null" json:"title"`
	Content *string `gorm:"type:text" json:"content"`
	Image   *string `gorm:"size:512" json:"image"`

	// 内容块的操作人记邮箱（沿用既有数据格式）
	CreatedBy *string `gorm:"size:255" json:"created_by"`
	UpdatedBy *string `gorm:"size:255" json:"updated_by"`
}

func (Content) TableName() string {
	return "contents"
}

// ContactsRowCount 联系方式区块占用的固定行数
const ContactsRowCount = 10
