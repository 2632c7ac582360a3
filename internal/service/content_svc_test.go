package service

import (
	"context"
	"testing"

	"gorm.io/gorm"

	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
)

var contactTitles = []string{
	"name", "address", "email", "phone", "whatsapp",
	"map", "operational", "instagram", "facebook", "tiktok",
}

// seedContactRows 预置联系方式固定行（id 1..10）
func seedContactRows(t *testing.T, db *gorm.DB) {
	for i, title := range contactTitles {
		row := &model.Content{Title: title}
		row.ID = int64(i + 1)
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("预置联系方式行失败: %v", err)
		}
	}
}

func newContentTestService(t *testing.T) (*ContentService, *gorm.DB) {
	db := setupCatalogTestDB(t)
	return NewContentService(repository.NewContentRepository(db)), db
}

// ==================== 内容 CRUD ====================

func TestContentService_CRUD(t *testing.T) {
	svc, _ := newContentTestService(t)
	ctx := context.Background()

	body := "Tentang kami"
	admin := "admin@toko.id"
	content, err := svc.Create(ctx, "about", &body, nil, &admin)
	if err != nil {
		t.Fatalf("创建内容失败: %v", err)
	}
	if content.CreatedBy == nil || *content.CreatedBy != admin {
		t.Fatalf("created_by 应记录管理员邮箱: %v", content.CreatedBy)
	}

	newBody := "Tentang kami (baru)"
	updated, err := svc.Update(ctx, content.ID, nil, &newBody, nil, &admin)
	if err != nil {
		t.Fatalf("更新内容失败: %v", err)
	}
	if updated.Content == nil || *updated.Content != newBody {
		t.Fatalf("内容未更新: %v", updated.Content)
	}
	if updated.Title != "about" {
		t.Fatalf("未提交的标题被修改: %s", updated.Title)
	}

	if err := svc.Delete(ctx, content.ID); err != nil {
		t.Fatalf("删除内容失败: %v", err)
	}
	if _, err := svc.GetByID(ctx, content.ID); err != ErrNotFound {
		t.Fatalf("删除后应查不到, 实际: %v", err)
	}
}

func TestContentService_Create_TitleRequired(t *testing.T) {
	svc, _ := newContentTestService(t)

	_, err := svc.Create(context.Background(), "", nil, nil, nil)
	if err != ErrTitleRequired {
		t.Fatalf("期望 ErrTitleRequired, 实际: %v", err)
	}
}

// ==================== 联系方式区块 ====================

func TestContentService_Contacts(t *testing.T) {
	svc, db := newContentTestService(t)
	seedContactRows(t, db)
	ctx := context.Background()

	name := "Toko Mebel Jaya"
	wa := "+6281234567890"
	err := svc.UpdateContacts(ctx, Contacts{
		Name:     &name,
		Whatsapp: &wa,
	}, "admin@toko.id")
	if err != nil {
		t.Fatalf("更新联系方式失败: %v", err)
	}

	contacts, err := svc.GetContacts(ctx)
	if err != nil {
		t.Fatalf("读取联系方式失败: %v", err)
	}
	if contacts.Name == nil || *contacts.Name != name {
		t.Fatalf("店铺名错误: %v", contacts.Name)
	}
	// whatsapp 展示去掉 + 前缀
	if contacts.Whatsapp == nil || *contacts.Whatsapp != "6281234567890" {
		t.Fatalf("whatsapp 应去掉 + 前缀: %v", contacts.Whatsapp)
	}
	// 未提交的字段落库为 null
	if contacts.Address != nil {
		t.Fatalf("未设置的字段应为 nil: %v", *contacts.Address)
	}

	// 每行都记录操作人邮箱
	var row model.Content
	db.First(&row, 1)
	if row.UpdatedBy == nil || *row.UpdatedBy != "admin@toko.id" {
		t.Fatalf("updated_by 应记录管理员邮箱: %v", row.UpdatedBy)
	}
}

// 任何一行更新失败整批回滚
func TestContentService_UpdateContacts_Transactional(t *testing.T) {
	svc, db := newContentTestService(t)
	// 只预置前 9 行，第 10 行缺失会让事务中途失败
	for i := 0; i < 9; i++ {
		row := &model.Content{Title: contactTitles[i]}
		row.ID = int64(i + 1)
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("预置联系方式行失败: %v", err)
		}
	}

	name := "Toko Baru"
	err := svc.UpdateContacts(context.Background(), Contacts{Name: &name}, "admin@toko.id")
	if err == nil {
		t.Fatalf("缺行时更新应失败")
	}

	// 第 1 行的修改必须被回滚
	var row model.Content
	db.First(&row, 1)
	if row.Content != nil {
		t.Fatalf("失败的事务应整体回滚, 实际: %v", *row.Content)
	}
}

func TestContentService_GetContacts_MissingRows(t *testing.T) {
	svc, db := newContentTestService(t)
	// 只有第 1 行存在
	name := "Toko"
	row := &model.Content{Title: "name", Content: &name}
	row.ID = 1
	if err := db.Create(row).Error; err != nil {
		t.Fatalf("预置行失败: %v", err)
	}

	contacts, err := svc.GetContacts(context.Background())
	if err != nil {
		t.Fatalf("行缺失不应报错: %v", err)
	}
	if contacts.Name == nil || *contacts.Name != "Toko" {
		t.Fatalf("已有行应正常返回: %v", contacts.Name)
	}
	if contacts.Email != nil || contacts.Tiktok != nil {
		t.Fatalf("缺失行对应字段应为 nil")
	}
}

// 确保固定行序号与标题约定一致
func TestContactRowOrder(t *testing.T) {
	if len(contactTitles) != model.ContactsRowCount {
		t.Fatalf("联系方式固定行数应为 %d, 实际 %d", model.ContactsRowCount, len(contactTitles))
	}
	for i, title := range contactTitles {
		if title == "" {
			t.Fatalf("第 %d 行标题为空", i+1)
		}
	}
}
