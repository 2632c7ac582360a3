package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/internal/service"
)

// ==================== 测试辅助 ====================

// ctlFakeStorage 内存存储，URL 按文件名生成
type ctlFakeStorage struct {
	mu      sync.Mutex
	deleted []string
}

func (f *ctlFakeStorage) Upload(ctx context.Context, data []byte, directory, filename, contentType string) (string, error) {
	return "https://cdn.test/" + directory + "/" + filename, nil
}

func (f *ctlFakeStorage) UploadFromURL(ctx context.Context, sourceURL, directory, filename string) (string, error) {
	return "https://cdn.test/" + directory + "/" + filename, nil
}

func (f *ctlFakeStorage) Delete(ctx context.Context, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, url)
	return nil
}

func setupProductRouter(t *testing.T, db *gorm.DB) (*gin.Engine, *ctlFakeStorage) {
	gin.SetMode(gin.TestMode)

	storage := &ctlFakeStorage{}
	productRepo := repository.NewProductRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)
	productSvc := service.NewProductService(productRepo, categoryRepo, storage, nil)
	importSvc := service.NewImportService(productRepo, categoryRepo, storage)
	ctrl := NewProductController(productSvc, importSvc)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api")
	api.GET("/products", ctrl.GetProducts)
	api.GET("/products/:slug", ctrl.GetProductBySlug)

	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
	admin.POST("/products", ctrl.CreateProduct)
	admin.PUT("/products/:id", ctrl.UpdateProduct)
	admin.DELETE("/products/:id", ctrl.DeleteProduct)

	return r, storage
}

func adminToken(t *testing.T) string {
	token, err := middleware.GenerateAccessToken(1, "admin@toko.id", model.RoleAdmin)
	if err != nil {
		t.Fatalf("生成 token 失败: %v", err)
	}
	return token
}

// buildMultipart 组装 multipart 请求体
func buildMultipart(t *testing.T, fields map[string]string, files map[string][]byte) (*bytes.Buffer, string) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("写表单字段失败: %v", err)
		}
	}
	for name, data := range files {
		fw, err := w.CreateFormFile("images", name)
		if err != nil {
			t.Fatalf("写文件字段失败: %v", err)
		}
		fw.Write(data)
	}
	w.Close()
	return &buf, w.FormDataContentType()
}

func doMultipart(r *gin.Engine, method, path, token string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ==================== multipart 解析 ====================

// images[N] 文件字段按下标的数字序拼回，字典序会把 images[10] 排到 images[2] 前面
func TestReadUploadedFiles_IndexedOrder(t *testing.T) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	// 故意乱序写入，顺序只能靠字段名里的下标还原
	for _, idx := range []int{10, 2, 0, 11, 1} {
		fw, err := w.CreateFormFile(fmt.Sprintf("images[%d]", idx), fmt.Sprintf("f%d.jpg", idx))
		if err != nil {
			t.Fatalf("写文件字段失败: %v", err)
		}
		fmt.Fprintf(fw, "%d", idx)
	}
	w.Close()

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(32 << 20)
	if err != nil {
		t.Fatalf("解析表单失败: %v", err)
	}
	defer form.RemoveAll()

	files, err := readUploadedFiles(form)
	if err != nil {
		t.Fatalf("读取上传文件失败: %v", err)
	}

	want := []string{"f0.jpg", "f1.jpg", "f2.jpg", "f10.jpg", "f11.jpg"}
	if len(files) != len(want) {
		t.Fatalf("文件数量错误: %d", len(files))
	}
	for i, f := range files {
		if f.Name != want[i] {
			t.Fatalf("第 %d 个文件应为 %s, 实际: %s", i, want[i], f.Name)
		}
	}
}

// ==================== 后台创建 / 更新 ====================

func TestProductController_Create(t *testing.T) {
	db := setupCtlTestDB(t)
	r, _ := setupProductRouter(t, db)

	body, contentType := buildMultipart(t, map[string]string{
		"name":  "Kursi Kayu Jati",
		"price": "250000",
	}, map[string][]byte{
		"a.jpg": []byte("aaa"),
	})

	w := doMultipart(r, http.MethodPost, "/api/admin/products", adminToken(t), body, contentType)
	if w.Code != http.StatusOK {
		t.Fatalf("创建商品失败: %d, body: %s", w.Code, w.Body.String())
	}

	var product model.Product
	if err := db.Where("slug = ?", "kursi-kayu-jati").First(&product).Error; err != nil {
		t.Fatalf("商品未落库: %v", err)
	}
	if product.CreatedBy != 1 {
		t.Fatalf("created_by 应来自 token: %d", product.CreatedBy)
	}
	if len(product.Images()) != 1 {
		t.Fatalf("图片数量错误: %v", product.Images())
	}
}

func TestProductController_Create_DuplicateSlug(t *testing.T) {
	db := setupCtlTestDB(t)
	r, _ := setupProductRouter(t, db)
	token := adminToken(t)

	body, contentType := buildMultipart(t, map[string]string{"name": "Meja Makan"}, nil)
	if w := doMultipart(r, http.MethodPost, "/api/admin/products", token, body, contentType); w.Code != http.StatusOK {
		t.Fatalf("创建商品失败: %d", w.Code)
	}

	body, contentType = buildMultipart(t, map[string]string{"name": "Meja Makan"}, nil)
	w := doMultipart(r, http.MethodPost, "/api/admin/products", token, body, contentType)
	if w.Code != http.StatusConflict {
		t.Fatalf("重名应返回 409, 实际: %d", w.Code)
	}
}

// images 以 JSON 数组字符串提交时的保留语义
func TestProductController_Update_ImagesJSONArray(t *testing.T) {
	db := setupCtlTestDB(t)
	r, storage := setupProductRouter(t, db)
	token := adminToken(t)

	body, contentType := buildMultipart(t, map[string]string{"name": "Sofa Set"}, map[string][]byte{
		"a.jpg": []byte("a"),
		"b.jpg": []byte("b"),
	})
	if w := doMultipart(r, http.MethodPost, "/api/admin/products", token, body, contentType); w.Code != http.StatusOK {
		t.Fatalf("创建商品失败: %d", w.Code)
	}

	var product model.Product
	db.Where("slug = ?", "sofa-set").First(&product)
	images := product.Images()
	if len(images) != 2 {
		t.Fatalf("初始图片数量错误: %v", images)
	}

	// 只保留第一张
	retained, _ := json.Marshal(images[:1])
	body, contentType = buildMultipart(t, map[string]string{"images": string(retained)}, nil)
	w := doMultipart(r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", product.ID), token, body, contentType)
	if w.Code != http.StatusOK {
		t.Fatalf("更新商品失败: %d, body: %s", w.Code, w.Body.String())
	}

	db.First(&product, product.ID)
	if len(product.Images()) != 1 || product.Images()[0] != images[0] {
		t.Fatalf("保留集错误: %v", product.Images())
	}
	if len(storage.deleted) != 1 || storage.deleted[0] != images[1] {
		t.Fatalf("弃用图片应从存储删除: %v", storage.deleted)
	}
}

// 不提交 images 字段时原图保持不动
func TestProductController_Update_ImagesAbsent(t *testing.T) {
	db := setupCtlTestDB(t)
	r, storage := setupProductRouter(t, db)
	token := adminToken(t)

	body, contentType := buildMultipart(t, map[string]string{"name": "Rak Buku"}, map[string][]byte{
		"a.jpg": []byte("a"),
	})
	if w := doMultipart(r, http.MethodPost, "/api/admin/products", token, body, contentType); w.Code != http.StatusOK {
		t.Fatalf("创建商品失败: %d", w.Code)
	}

	var product model.Product
	db.Where("slug = ?", "rak-buku").First(&product)

	body, contentType = buildMultipart(t, map[string]string{"price": "175000"}, nil)
	w := doMultipart(r, http.MethodPut, fmt.Sprintf("/api/admin/products/%d", product.ID), token, body, contentType)
	if w.Code != http.StatusOK {
		t.Fatalf("更新商品失败: %d, body: %s", w.Code, w.Body.String())
	}

	db.First(&product, product.ID)
	if len(product.Images()) != 1 {
		t.Fatalf("未提交 images 时原图应保留: %v", product.Images())
	}
	if product.Price == nil || *product.Price != 175000 {
		t.Fatalf("价格未更新: %v", product.Price)
	}
	if len(storage.deleted) != 0 {
		t.Fatalf("不应删除任何图片: %v", storage.deleted)
	}
}

// ==================== 前台查询 ====================

func TestProductController_PublicList(t *testing.T) {
	db := setupCtlTestDB(t)
	r, _ := setupProductRouter(t, db)

	active := &model.Product{Name: "Aktif", Slug: "aktif", IsActive: true}
	active.SetImages([]string{"https://cdn.test/products/a.jpg"})
	inactive := &model.Product{Name: "Nonaktif", Slug: "nonaktif", IsActive: false}
	inactive.SetImages(nil)
	if err := db.Create(active).Error; err != nil {
		t.Fatalf("预置商品失败: %v", err)
	}
	if err := db.Create(inactive).Error; err != nil {
		t.Fatalf("预置商品失败: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/products", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("列表查询失败: %d", w.Code)
	}

	var resp struct {
		Data struct {
			Data []struct {
				Slug   string   `json:"slug"`
				Images []string `json:"images"`
			} `json:"data"`
			Total int64 `json:"total"`
		} `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("解析响应失败: %v", err)
	}
	if resp.Data.Total != 1 || len(resp.Data.Data) != 1 || resp.Data.Data[0].Slug != "aktif" {
		t.Fatalf("前台应只见在售商品: %s", w.Body.String())
	}
	// images 必须是解析后的数组
	if len(resp.Data.Data[0].Images) != 1 {
		t.Fatalf("images 应为数组: %s", w.Body.String())
	}

	// 下架商品详情 404
	req = httptest.NewRequest(http.MethodGet, "/api/products/nonaktif", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("下架商品应 404, 实际: %d", w.Code)
	}
}
