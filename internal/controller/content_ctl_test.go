package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/internal/service"
)

func setupContentRouter(t *testing.T, db *gorm.DB) *gin.Engine {
	gin.SetMode(gin.TestMode)

	ctrl := NewContentController(service.NewContentService(repository.NewContentRepository(db)))

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	contents := api.Group("/contents")
	{
		contents.GET("/contacts", ctrl.GetContacts)
		contents.GET("", ctrl.GetContents)
		contents.GET("/:id", ctrl.GetContent)
	}

	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
	admin.PUT("/contents/contacts", ctrl.UpdateContacts)

	return r
}

func seedContactContent(t *testing.T, db *gorm.DB) {
	titles := []string{
		"name", "address", "email", "phone", "whatsapp",
		"map", "operational", "instagram", "facebook", "tiktok",
	}
	for i, title := range titles {
		row := &model.Content{Title: title}
		row.ID = int64(i + 1)
		if err := db.Create(row).Error; err != nil {
			t.Fatalf("预置联系方式行失败: %v", err)
		}
	}
}

// /contents/contacts 必须先于 /contents/:id 命中
func TestContentController_ContactsRoute(t *testing.T) {
	db := setupCtlTestDB(t)
	seedContactContent(t, db)
	r := setupContentRouter(t, db)

	req := httptest.NewRequest(http.MethodGet, "/api/contents/contacts", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("contacts 路由命中失败: %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Code int `json:"code"`
		Data struct {
			Name *string `json:"name"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Code != 0 {
		t.Fatalf("响应码错误: %s", w.Body.String())
	}

	// 数字 id 仍走详情路由
	req = httptest.NewRequest(http.MethodGet, "/api/contents/1", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("详情路由命中失败: %d", w.Code)
	}
}

func TestContentController_UpdateContacts(t *testing.T) {
	db := setupCtlTestDB(t)
	seedContactContent(t, db)
	r := setupContentRouter(t, db)

	token, err := middleware.GenerateAccessToken(1, "admin@toko.id", model.RoleAdmin)
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}

	w := doJSON(r, http.MethodPut, "/api/admin/contents/contacts", token, gin.H{
		"name":     "Toko Mebel Jaya",
		"whatsapp": "+628123456789",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("更新联系方式失败: %d, body: %s", w.Code, w.Body.String())
	}

	var resp struct {
		Data struct {
			Name     *string `json:"name"`
			Whatsapp *string `json:"whatsapp"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Name == nil || *resp.Data.Name != "Toko Mebel Jaya" {
		t.Fatalf("店铺名未更新: %s", w.Body.String())
	}
	if resp.Data.Whatsapp == nil || *resp.Data.Whatsapp != "628123456789" {
		t.Fatalf("whatsapp 应去掉 + 前缀: %s", w.Body.String())
	}

	// 操作人邮箱来自 token
	var row model.Content
	db.First(&row, 1)
	if row.UpdatedBy == nil || *row.UpdatedBy != "admin@toko.id" {
		t.Fatalf("updated_by 应记录 token 里的邮箱: %v", row.UpdatedBy)
	}
}
