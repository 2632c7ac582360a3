package service

import (
	"context"
	"strings"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
)

// ==================== ContentService 内容服务 ====================

// ContentService 站点内容服务
type ContentService struct {
	contentRepo repository.ContentRepository
}

// NewContentService 创建内容服务
func NewContentService(contentRepo repository.ContentRepository) *ContentService {
	return &ContentService{contentRepo: contentRepo}
}

// ListAll 全部内容（按创建时间倒序）
func (s *ContentService) ListAll(ctx context.Context) ([]model.Content, error) {
	return s.contentRepo.ListAll(ctx)
}

// GetByID 内容详情
func (s *ContentService) GetByID(ctx context.Context, id int64) (*model.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return content, nil
}

// Create 创建内容块
func (s *ContentService) Create(ctx context.Context, title string, body, image, createdBy *string) (*model.Content, error) {
	if title == "" {
		return nil, ErrTitleRequired
	}

	content := &model.Content{
		Title:     title,
		Content:   body,
		Image:     image,
		CreatedBy: createdBy,
	}
	if err := s.contentRepo.Create(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Update 更新内容块（部分更新）
func (s *ContentService) Update(ctx context.Context, id int64, title, body, image, updatedBy *string) (*model.Content, error) {
	content, err := s.contentRepo.GetByID(ctx, id)
	if err != nil {
		if repository.IsNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if title != nil && *title != "" {
		content.Title = *title
	}
	if body != nil {
		content.Content = body
	}
	if image != nil {
		content.Image = image
	}
	if updatedBy != nil {
		content.UpdatedBy = updatedBy
	}

	if err := s.contentRepo.Update(ctx, content); err != nil {
		return nil, err
	}
	return content, nil
}

// Delete 删除内容块
func (s *ContentService) Delete(ctx context.Context, id int64) error {
	if err := s.contentRepo.Delete(ctx, id); err != nil {
		if repository.IsNotFound(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// ==================== 联系方式区块 ====================

// Contacts 联系方式（contents 表 id 1..10 固定行）
type Contacts struct {
	Name        *string `json:"name"`
	Address     *string `json:"address"`
	Email       *string `json:"email"`
	Phone       *string `json:"phone"`
	Whatsapp    *string `json:"whatsapp"`
	Map         *string `json:"map"`
	Operational *string `json:"operational"`
	Instagram   *string `json:"instagram"`
	Facebook    *string `json:"facebook"`
	Tiktok      *string `json:"tiktok"`
}

// GetContacts 读取联系方式区块
func (s *ContentService) GetContacts(ctx context.Context) (*Contacts, error) {
	rows, err := s.contentRepo.ListRange(ctx, 1, model.ContactsRowCount)
	if err != nil {
		return nil, err
	}

	// 行缺失时对应字段为 nil
	byID := make(map[int64]*model.Content, len(rows))
	for i := range rows {
		byID[rows[i].ID] = &rows[i]
	}

	contentAt := func(id int64) *string {
		if c, ok := byID[id]; ok {
			return c.Content
		}
		return nil
	}

	contacts := &Contacts{
		Name:        contentAt(1),
		Address:     contentAt(2),
		Email:       contentAt(3),
		Phone:       contentAt(4),
		Whatsapp:    contentAt(5),
		Map:         contentAt(6),
		Operational: contentAt(7),
		Instagram:   contentAt(8),
		Facebook:    contentAt(9),
		Tiktok:      contentAt(10),
	}
	// whatsapp 号码展示时去掉 + 前缀
	if contacts.Whatsapp != nil {
		trimmed := strings.TrimPrefix(*contacts.Whatsapp, "+")
		contacts.Whatsapp = &trimmed
	}

	return contacts, nil
}

// UpdateContacts 更新联系方式区块
// 十行在同一个事务里更新，要么全部生效要么全部回滚
func (s *ContentService) UpdateContacts(ctx context.Context, in Contacts, adminEmail string) error {
	updates := []struct {
		id    int64
		value *string
	}{
		{1, in.Name},
		{2, in.Address},
		{3, in.Email},
		{4, in.Phone},
		{5, in.Whatsapp},
		{6, in.Map},
		{7, in.Operational},
		{8, in.Instagram},
		{9, in.Facebook},
		{10, in.Tiktok},
	}

	return s.contentRepo.Transaction(ctx, func(txRepo repository.ContentRepository) error {
		for _, u := range updates {
			content, err := txRepo.GetByID(ctx, u.id)
			if err != nil {
				return err
			}
			content.Content = normalizeOptional(u.value)
			content.UpdatedBy = &adminEmail
			if err := txRepo.Update(ctx, content); err != nil {
				return err
			}
		}
		return nil
	})
}

// normalizeOptional 空字符串与 nil 统一落库为 NULL
func normalizeOptional(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
