package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminController "github.com/PelusheLD/FV-Bodegon/controllers/admin"
	orderControllers "github.com/PelusheLD/FV-Bodegon/controllers/order"
	productcontroller "github.com/PelusheLD/FV-Bodegon/controllers/product"
	settingsController "github.com/PelusheLD/FV-Bodegon/controllers/settings"
	uploadController "github.com/PelusheLD/FV-Bodegon/controllers/upload"
	"github.com/PelusheLD/FV-Bodegon/middleware"
)

// SetupAdminRoutes registers everything that mutates the catalog or
// touches orders. All of it sits behind the admin session; account
// management additionally requires the superadmin role.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	api.Use(middleware.RequireAdmin)
	{
		api.POST("/categories", productcontroller.CreateCategory(db))
		api.PUT("/categories/:id", productcontroller.UpdateCategory(db))
		api.DELETE("/categories/:id", productcontroller.DeleteCategory(db))

		api.POST("/products", productcontroller.CreateProduct(db))
		api.PUT("/products/:id", productcontroller.UpdateProduct(db))
		api.DELETE("/products/:id", productcontroller.DeleteProduct(db))
		api.POST("/products/import-excel", productcontroller.ImportProductsFromExcel(db))

		api.PUT("/settings", settingsController.UpdateSettings(db))
		api.POST("/upload", uploadController.UploadImage())

		api.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		api.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
		api.GET("/orders/:id", orderControllers.GetOrderByIDHandler(db))
		api.GET("/orders/:id/items", orderControllers.GetOrderItemsHandler(db))
		api.PATCH("/orders/:id/status", orderControllers.UpdateOrderStatusHandler(db))

		adminGroup := api.Group("/admin")
		{
			adminGroup.GET("/products/category/:categoryId", productcontroller.AdminListProductsByCategory(db))
			adminGroup.GET("/products/export-excel", productcontroller.ExportProductsToExcel(db))

			userMgmt := adminGroup.Group("/users")
			userMgmt.Use(middleware.RequireSuperAdmin)
			{
				userMgmt.GET("", adminController.GetAdminUsers(db))
				userMgmt.POST("", adminController.CreateAdminUser(db))
				userMgmt.PUT("/:id", adminController.UpdateAdminUser(db))
				userMgmt.DELETE("/:id", adminController.DeleteAdminUser(db))
			}
		}
	}
}
