package router

import (
	"github.com/gin-gonic/gin"

	"catalog_api_v1/internal/controller"
	"catalog_api_v1/internal/middleware"
	"catalog_api_v1/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	productCtrl *controller.ProductController,
	categoryCtrl *controller.CategoryController,
	contentCtrl *controller.ContentController,
	userCtrl *controller.UserController) {

	// 1. 前台公开路由
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			// POST /api/auth/login
			auth.POST("/login", authCtrl.Login)
			// GET /api/auth/profile（需登录）
			auth.GET("/profile", middleware.JWTAuth(), authCtrl.Profile)
		}

		// product 商品组（仅在售）
		products := api.Group("/products")
		{
			products.GET("", productCtrl.GetProducts)
			products.GET("/:slug", productCtrl.GetProductBySlug)
		}

		// category 分类组
		categories := api.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetCategories)
			categories.GET("/:slug", categoryCtrl.GetCategoryBySlug)
		}

		// content 内容组
		contents := api.Group("/contents")
		{
			// 固定路径先于 :id 注册
			contents.GET("/contacts", contentCtrl.GetContacts)
			contents.GET("", contentCtrl.GetContents)
			contents.GET("/:id", contentCtrl.GetContent)
		}
	}

	// 2. 后台路由（登录 + admin 角色）
	admin := r.Group("/api/admin", middleware.JWTAuth(), middleware.RequireRole(model.RoleAdmin))
	{
		products := admin.Group("/products")
		{
			products.POST("", productCtrl.CreateProduct)
			products.POST("/import", productCtrl.ImportProducts)
			products.PUT("/:id", productCtrl.UpdateProduct)
			products.DELETE("/:id", productCtrl.DeleteProduct)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", categoryCtrl.GetAllCategories)
			categories.POST("", categoryCtrl.CreateCategory)
			categories.PUT("/:id", categoryCtrl.UpdateCategory)
			categories.DELETE("/:id", categoryCtrl.DeleteCategory)
		}

		contents := admin.Group("/contents")
		{
			contents.PUT("/contacts", contentCtrl.UpdateContacts)
			contents.POST("", contentCtrl.CreateContent)
			contents.PUT("/:id", contentCtrl.UpdateContent)
			contents.DELETE("/:id", contentCtrl.DeleteContent)
		}

		users := admin.Group("/users")
		{
			users.GET("", userCtrl.GetUsers)
			users.GET("/:id", userCtrl.GetUser)
			users.POST("", userCtrl.CreateUser)
			users.PUT("/:id", userCtrl.UpdateUser)
			users.PUT("/:id/reset-password", userCtrl.ResetPassword)
			users.DELETE("/:id", userCtrl.DeleteUser)
		}
	}
}
