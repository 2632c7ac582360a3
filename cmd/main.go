package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"catalog_api_v1/internal/controller"
	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/model"
	"catalog_api_v1/internal/repository"
	"catalog_api_v1/internal/router"
	"catalog_api_v1/internal/service"
	"catalog_api_v1/internal/task"
	"catalog_api_v1/pkg/database"
)

func main() {
	// 1. 加载环境变量（.env 不存在时静默跳过，容器里直接用环境变量）
	if err := godotenv.Load(); err != nil {
		log.Println("未找到 .env 文件，使用系统环境变量")
	}

	// 2. JWT 配置
	initJWT()

	// 3. 初始化数据库
	db := initDatabase()

	// 4. 初始化依赖
	deps := initDependencies(db)

	// 5. 启动定时任务
	initTasks(deps)

	// 6. 初始化路由
	r := gin.Default()
	router.InitRoutes(r,
		deps.Controllers.Auth,
		deps.Controllers.Product,
		deps.Controllers.Category,
		deps.Controllers.Content,
		deps.Controllers.User,
	)

	// 7. 启动服务
	startServer(r, deps)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *Controllers
	CleanupTask *task.BlobCleanupTask
}

// Repositories 仓库集合
type Repositories struct {
	Product  repository.ProductRepository
	Category repository.CategoryRepository
	Content  repository.ContentRepository
	User     repository.UserRepository
}

// Services 服务集合
type Services struct {
	Auth     *service.AuthService
	Product  *service.ProductService
	Import   *service.ImportService
	Category *service.CategoryService
	Content  *service.ContentService
	User     *service.UserService
	Storage  service.StorageProvider
}

// Controllers 控制器集合
type Controllers struct {
	Auth     *controller.AuthController
	Product  *controller.ProductController
	Category *controller.CategoryController
	Content  *controller.ContentController
	User     *controller.UserController
}

// ==================== 初始化函数 ====================

// initJWT 初始化 JWT 配置
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg.SecretKey = secret
	}
	if ttl := getEnv("JWT_TTL_HOURS", ""); ttl != "" {
		if hours, err := time.ParseDuration(ttl + "h"); err == nil {
			cfg.AccessTokenTTL = hours
		}
	}
	middleware.SetJWTConfig(cfg)
}

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_URL", "")
	if dsn == "" {
		dsn = fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_USER", "postgres"),
			getEnv("DB_PASSWORD", "postgres"),
			getEnv("DB_NAME", "catalog"),
			getEnv("DB_PORT", "5432"),
		)
	}

	return database.InitDB(dsn,
		// Catalog
		&model.Category{}, &model.Product{},
		// Site
		&model.Content{},
		// Manager
		&model.User{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Product:  repository.NewProductRepository(db),
		Category: repository.NewCategoryRepository(db),
		Content:  repository.NewContentRepository(db),
		User:     repository.NewUserRepository(db),
	}

	// -------- 存储服务 --------
	provider := initStorageProvider()

	// -------- 清理任务（商品服务依赖它的重试队列） --------
	cleanupTask := task.NewBlobCleanupTask(provider)

	// -------- 业务服务 --------
	services := &Services{
		Storage:  provider,
		Auth:     service.NewAuthService(repos.User),
		Product:  service.NewProductService(repos.Product, repos.Category, provider, cleanupTask),
		Import:   service.NewImportService(repos.Product, repos.Category, provider),
		Category: service.NewCategoryService(repos.Category),
		Content:  service.NewContentService(repos.Content),
		User:     service.NewUserService(repos.User),
	}

	// -------- Controller 层 --------
	controllers := &Controllers{
		Auth:     controller.NewAuthController(services.Auth),
		Product:  controller.NewProductController(services.Product, services.Import),
		Category: controller.NewCategoryController(services.Category),
		Content:  controller.NewContentController(services.Content),
		User:     controller.NewUserController(services.User),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		CleanupTask: cleanupTask,
	}
}

// initStorageProvider 初始化对象存储
// 图片上传和清理都依赖它，初始化失败直接退出而不是带病运行
func initStorageProvider() service.StorageProvider {
	provider, err := service.NewStorageProvider(&service.StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "s3"),
		Bucket:    getEnv("AWS_BUCKET", ""),
		Region:    getEnv("AWS_REGION", "ap-southeast-1"),
		AccessKey: getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		Endpoint:  getEnv("AWS_ENDPOINT", ""),
		CDNDomain: getEnv("AWS_CDN_DOMAIN", ""),
		BasePath:  getEnv("STORAGE_BASE_PATH", "catalog"),
	})
	if err != nil {
		log.Fatalf("存储服务初始化失败: %v", err)
	}
	return provider
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	deps.CleanupTask.Start()
	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, deps *Dependencies) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	deps.CleanupTask.Stop()

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
