package model

// 系统角色
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	BaseModel

	Name     string `gorm:"size:255" json:"name"`
	Email    string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password string `gorm:"size:255;not null" json:"-"` // bcrypt 哈希

	Role     string `gorm:"size:20;default:'user';index" json:"role"`
	IsActive bool   `json:"is_active"`
}

func (User) TableName() string {
	return "users"
}
