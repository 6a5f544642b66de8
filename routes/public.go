package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	authController "github.com/PelusheLD/FV-Bodegon/controllers/auth"
	cartControllers "github.com/PelusheLD/FV-Bodegon/controllers/cart"
	orderControllers "github.com/PelusheLD/FV-Bodegon/controllers/order"
	productcontroller "github.com/PelusheLD/FV-Bodegon/controllers/product"
	ratesController "github.com/PelusheLD/FV-Bodegon/controllers/rates"
	settingsController "github.com/PelusheLD/FV-Bodegon/controllers/settings"
)

// SetupPublicRoutes registers the storefront endpoints. No auth: the
// catalog, cart and checkout are open to shoppers.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	api := r.Group("/api")
	{
		// catalog
		api.GET("/categories", productcontroller.GetAllCategories(db))
		api.GET("/categories/:id", productcontroller.GetCategoryByID(db))
		api.GET("/products", productcontroller.GetProducts(db))
		api.GET("/products/featured", productcontroller.GetFeaturedProducts(db))
		api.GET("/products/category/:categoryId", productcontroller.ListProductsByCategory(db))
		api.GET("/products/:id", productcontroller.GetProductByID(db))

		// session cart
		api.GET("/cart", cartControllers.GetCart())
		api.POST("/cart", cartControllers.AddToCart(db))
		api.PUT("/cart/:productId", cartControllers.UpdateCartItem())
		api.DELETE("/cart/:productId", cartControllers.RemoveCartItem())
		api.DELETE("/cart", cartControllers.ClearCart())
		api.POST("/cart/checkout", cartControllers.CheckoutCart(db))

		// checkout with an explicit item list
		api.POST("/orders", orderControllers.PlaceOrderHandler(db))

		// site chrome
		api.GET("/settings", settingsController.GetSettings(db))
		api.GET("/dollar-rate", ratesController.GetDollarRate())

		// admin session lifecycle
		api.POST("/auth/login", authController.Login(db))
		api.POST("/auth/logout", authController.Logout())
		api.GET("/auth/session", authController.Session(db))
	}
}
